package commands

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var apiAddr = "http://localhost:3005"

func init() {
	statusCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the spectator api")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a running session from its spectator api",
	RunE: func(*cobra.Command, []string) error {
		sr, err := getStatus(apiAddr)
		if err != nil {
			return err
		}
		spew.Dump(sr)
		return nil
	},
}

func getStatus(addr string) (*pb.StatusResponse, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(strings.TrimSuffix(addr, "/") + "/status")
	if err != nil {
		return nil, errors.Wrap(err, "error while getting status")
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("status request failed: %s", strings.TrimSpace(string(data)))
	}

	sr := &pb.StatusResponse{}
	if err := json.Unmarshal(data, sr); err != nil {
		log.WithFields(log.Fields{
			"resp": string(data),
			"addr": addr,
		}).Info("unable to unmarshal status response")
		return nil, errors.Wrap(err, "unable to unmarshal status response")
	}

	return sr, nil
}
