package commands

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/battlesnakeio/snake/version"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ownsTerminal marks commands that draw with termbox. Their logs must not
// reach the terminal.
const ownsTerminal = "owns-terminal"

var rootCmd = &cobra.Command{
	Use:               "snake",
	Short:             "snake is the classic snake game for the terminal",
	Version:           version.Version,
	Annotations:       map[string]string{ownsTerminal: "true"},
	PersistentPreRunE: setupLogging,
	PreRun:            func(c *cobra.Command, args []string) { prometheus() },
	RunE:              play,
}

var (
	logFile    string
	logLevel   = "info"
	promListen string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logFile, "file to write logs to")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "log level (debug, info, warn, error)")

	addPlayFlags(playCmd.Flags())
	addPlayFlags(rootCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogging(c *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	log.SetLevel(level)

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, "unable to open log file")
		}
		log.SetOutput(f)
		return nil
	}
	if c.Annotations[ownsTerminal] == "true" {
		log.SetOutput(ioutil.Discard)
	}
	return nil
}

func prometheus() {
	if promListen == "" {
		log.Debug("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
