package commands

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/render"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	watchCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the spectator api")
}

var watchCmd = &cobra.Command{
	Use:         "watch",
	Short:       "follows a running session from its spectator api",
	Annotations: map[string]string{ownsTerminal: "true"},
	RunE: func(*cobra.Command, []string) error {
		return watch(apiAddr)
	},
}

func socketURL(addr string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", errors.Wrap(err, "invalid api address")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	default:
		return "", errors.Errorf("unsupported api scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/socket"
	return u.String(), nil
}

func watch(addr string) error {
	sr, err := getStatus(addr)
	if err != nil {
		return err
	}

	u, err := socketURL(addr)
	if err != nil {
		return err
	}
	log.WithField("url", u).Info("connecting to session")

	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return errors.Wrap(err, "unable to connect to session")
	}
	defer c.Close()

	frames := newFrameHolder()
	go readFrames(c, frames, sr.Session.ID)

	term, err := render.Open("Snake " + sr.Session.ID)
	if err != nil {
		return err
	}
	defer term.Close()

	return playback(term, frames, config.TickInterval(), render.Message)
}

// readFrames appends every frame from the socket until it closes.
func readFrames(c *websocket.Conn, frames *frameHolder, sessionID string) {
	logger := log.WithField("session", sessionID)
	defer frames.finish()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.WithError(err).Warn("socket read failed")
			}
			return
		}

		switch mt {
		case websocket.TextMessage:
			frame := &pb.Frame{}
			if err := json.Unmarshal(message, frame); err != nil {
				logger.WithError(err).Warn("unable to unmarshal frame")
				return
			}
			frames.append(frame)
		default:
			logger.WithField("type", mt).Debug("unhandled message type")
		}
	}
}
