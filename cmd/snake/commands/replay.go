package commands

import (
	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/render"
	"github.com/battlesnakeio/snake/store/filestore"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:         "replay FILE",
	Short:       "replays a recorded session",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{ownsTerminal: "true"},
	RunE: func(c *cobra.Command, args []string) error {
		return replay(args[0])
	},
}

func replay(path string) error {
	rec, err := filestore.ReadFile(path)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"session": rec.Session.ID,
		"frames":  len(rec.Frames),
	}).Info("replaying session")

	frames := newFrameHolder()
	for _, f := range rec.Frames {
		frames.append(f)
	}
	frames.finish()

	term, err := render.Open("Snake replay")
	if err != nil {
		return err
	}
	defer term.Close()

	return playback(term, frames, config.TickInterval(), render.Message)
}
