// Package api serves a running session to spectators over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/store"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the spectator api for a single session.
type Server struct {
	hs        *http.Server
	store     store.Store
	sessionID string

	// PollInterval is how often the socket checks the store for new frames.
	PollInterval time.Duration
}

// New creates a server for the session. It does not start listening.
func New(addr string, s store.Store, sessionID string) *Server {
	srv := &Server{
		store:        s,
		sessionID:    sessionID,
		PollInterval: 50 * time.Millisecond,
	}

	router := httprouter.New()
	router.GET("/status", srv.status)
	router.GET("/frames", srv.frames)
	router.GET("/socket", srv.socket)

	srv.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return srv
}

// Handler returns the root handler, mostly useful for tests.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// WaitForExit listens until the server is shut down.
func (s *Server) WaitForExit() error {
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for open requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, err := s.store.GetSession(r.Context(), s.sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	last, err := s.store.LatestFrame(r.Context(), s.sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, &pb.StatusResponse{Session: session, LastFrame: last})
}

func (s *Server) frames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil {
		http.Error(w, "invalid offset", http.StatusBadRequest)
		return
	}
	limit, err := intParam(q.Get("limit"), defaultLimit)
	if err != nil || limit < 0 {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	frames, err := s.store.ListFrames(r.Context(), s.sessionID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, &pb.ListFramesResponse{Frames: frames, Count: int32(len(frames))})
}

// socket streams every frame of the session, oldest first, and closes the
// connection once the session is complete and nothing is left to send.
func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	logger := log.WithField("session", s.sessionID)

	if _, err := s.store.GetSession(ctx, s.sessionID); err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	offset := 0
	for {
		frames, err := s.store.ListFrames(ctx, s.sessionID, maxLimit, offset)
		if err != nil {
			logger.WithError(err).Error("unable to list frames")
			return
		}
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				logger.WithError(err).Debug("spectator went away")
				return
			}
		}
		if len(frames) > 0 {
			// Frames dropped by the store before they were read are skipped.
			offset = int(frames[len(frames)-1].Seq) + 1
		}
		if len(frames) == maxLimit {
			continue
		}

		done, err := s.complete(ctx, offset)
		if err != nil {
			logger.WithError(err).Error("unable to get session")
			return
		}
		if done {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
				logger.WithError(err).Debug("unable to close socket")
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.PollInterval):
		}
	}
}

// complete reports whether the session has ended and every frame before
// offset has been sent.
func (s *Server) complete(ctx context.Context, offset int) (bool, error) {
	session, err := s.store.GetSession(ctx, s.sessionID)
	if err != nil {
		return false, err
	}
	if session.Running() {
		return false, nil
	}
	// Frames pushed between the last list and the status change.
	rest, err := s.store.ListFrames(ctx, s.sessionID, 1, offset)
	if err != nil {
		return false, err
	}
	return len(rest) == 0, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number %q", v)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("unable to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Cause(err) == store.ErrNotFound {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.WithError(err).Error("store request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
