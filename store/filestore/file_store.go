// Package filestore records sessions to disk so they can be replayed later.
// Each session is one file: a length delimited pb.Session header followed by
// one pb.Frame per tick.
package filestore

import (
	"context"
	"os/user"
	"path/filepath"
	"sync"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Extension is the file extension of recordings.
const Extension = ".snake"

// DefaultDir is where recordings go when no directory is configured.
func DefaultDir() string {
	return filepath.Join(homeDir(), ".snake", "recordings")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// Path returns the recording file for a session.
func Path(directory, id string) string {
	return filepath.Join(directory, id+Extension)
}

// NewFileStore returns a file based store implementation (1 file per
// session). Frames are also kept in memory, bounded by maxFrames, so the
// store can serve spectators while recording.
func NewFileStore(directory string, maxFrames int) store.Store {
	if directory == "" {
		directory = DefaultDir()
	}

	return &fileStore{
		mem:       store.InMemStore(maxFrames),
		writers:   map[string]writer{},
		directory: directory,
	}
}

type fileStore struct {
	mem       store.Store
	writers   map[string]writer
	lock      sync.Mutex
	directory string
}

// closeSession closes the handle to the session file. Should be called when
// the session is complete.
func (fs *fileStore) closeSession(id string) {
	if w, ok := fs.writers[id]; ok {
		if err := w.Close(); err != nil {
			log.WithError(err).WithField("session", id).Error("Error while closing file writer")
		}
	}
	delete(fs.writers, id)
}

func (fs *fileStore) CreateSession(ctx context.Context, s *pb.Session) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, ok := fs.writers[s.ID]; ok {
		return store.ErrSessionExists
	}
	if _, err := fs.mem.GetSession(ctx, s.ID); err == nil {
		return store.ErrSessionExists
	}

	w, err := openFileWriter(fs.directory, s.ID)
	if err != nil {
		return errors.Wrap(err, "unable to open recording")
	}
	if err := writeSession(w, s); err != nil {
		w.Close()
		return errors.Wrap(err, "unable to write session header")
	}
	if err := fs.mem.CreateSession(ctx, s); err != nil {
		w.Close()
		return err
	}

	fs.writers[s.ID] = w
	log.WithField("session", s.ID).
		WithField("path", Path(fs.directory, s.ID)).
		Info("recording session")
	return nil
}

func (fs *fileStore) GetSession(ctx context.Context, id string) (*pb.Session, error) {
	return fs.mem.GetSession(ctx, id)
}

func (fs *fileStore) SetSessionStatus(ctx context.Context, id string, status rules.SessionStatus) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := fs.mem.SetSessionStatus(ctx, id, status); err != nil {
		return err
	}
	if status != rules.SessionStatusRunning {
		fs.closeSession(id)
	}
	return nil
}

func (fs *fileStore) PushFrame(ctx context.Context, id string, f *pb.Frame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := fs.mem.PushFrame(ctx, id, f); err != nil {
		return err
	}

	w, ok := fs.writers[id]
	if !ok {
		// Session is complete, nothing more is recorded.
		return nil
	}
	return errors.Wrap(writeFrame(w, f), "unable to record frame")
}

func (fs *fileStore) ListFrames(ctx context.Context, id string, limit, offset int) ([]*pb.Frame, error) {
	return fs.mem.ListFrames(ctx, id, limit, offset)
}

func (fs *fileStore) LatestFrame(ctx context.Context, id string) (*pb.Frame, error) {
	return fs.mem.LatestFrame(ctx, id)
}
