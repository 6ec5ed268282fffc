// Package e2e drives whole sessions through the game loop, the stores and
// the spectator api.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/battlesnakeio/snake/pb"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) getJSON(path string, v interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *client) sessionStatus() (*pb.StatusResponse, *pb.ListFramesResponse, error) {
	st := &pb.StatusResponse{}
	if err := c.getJSON("/status", st); err != nil {
		return nil, nil, err
	}

	frames := &pb.ListFramesResponse{}
	if err := c.getJSON("/frames?limit=1000", frames); err != nil {
		return nil, nil, err
	}
	return st, frames, nil
}
