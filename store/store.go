// Package store keeps sessions and their frames so that spectators and
// recordings can read what the game loop produced.
package store

import (
	"context"
	"sync"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a session is not found.
	ErrNotFound = errors.New("store: session not found")
	// ErrSessionExists is returned when creating a session twice.
	ErrSessionExists = errors.New("store: session already exists")
)

// Store is the interface to the backend store.
type Store interface {
	CreateSession(ctx context.Context, s *pb.Session) error
	GetSession(ctx context.Context, id string) (*pb.Session, error)
	SetSessionStatus(ctx context.Context, id string, status rules.SessionStatus) error
	// PushFrame appends a frame and assigns its Seq.
	PushFrame(ctx context.Context, id string, f *pb.Frame) error
	// ListFrames returns up to limit frames starting at the frame whose Seq
	// is offset, or the oldest kept frame if that one was dropped. A
	// negative offset counts back from the newest frame.
	ListFrames(ctx context.Context, id string, limit, offset int) ([]*pb.Frame, error)
	LatestFrame(ctx context.Context, id string) (*pb.Frame, error)
}

// InMemStore returns an in memory implementation of the Store interface that
// keeps at most maxFrames frames per session. A maxFrames of zero or less
// keeps everything.
func InMemStore(maxFrames int) Store {
	return &inmem{
		sessions:  map[string]*pb.Session{},
		frames:    map[string][]*pb.Frame{},
		pushed:    map[string]int{},
		maxFrames: maxFrames,
	}
}

type inmem struct {
	sessions  map[string]*pb.Session
	frames    map[string][]*pb.Frame
	pushed    map[string]int
	maxFrames int
	lock      sync.RWMutex
}

func (in *inmem) CreateSession(ctx context.Context, s *pb.Session) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.sessions[s.ID]; ok {
		return ErrSessionExists
	}
	in.sessions[s.ID] = proto.Clone(s).(*pb.Session)
	in.frames[s.ID] = []*pb.Frame{}
	return nil
}

func (in *inmem) GetSession(ctx context.Context, id string) (*pb.Session, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	s, ok := in.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return proto.Clone(s).(*pb.Session), nil
}

func (in *inmem) SetSessionStatus(ctx context.Context, id string, status rules.SessionStatus) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, ok := in.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.Status = string(status)
	return nil
}

func (in *inmem) PushFrame(ctx context.Context, id string, f *pb.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	frames, ok := in.frames[id]
	if !ok {
		return ErrNotFound
	}
	c := proto.Clone(f).(*pb.Frame)
	c.Seq = int64(in.pushed[id])
	in.pushed[id]++
	frames = append(frames, c)
	if in.maxFrames > 0 && len(frames) > in.maxFrames {
		frames = append([]*pb.Frame{}, frames[len(frames)-in.maxFrames:]...)
	}
	in.frames[id] = frames
	return nil
}

func (in *inmem) ListFrames(ctx context.Context, id string, limit, offset int) ([]*pb.Frame, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	frames, ok := in.frames[id]
	if !ok {
		return nil, ErrNotFound
	}
	return Window(frames, in.pushed[id]-len(frames), limit, offset), nil
}

func (in *inmem) LatestFrame(ctx context.Context, id string) (*pb.Frame, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	frames, ok := in.frames[id]
	if !ok {
		return nil, ErrNotFound
	}
	if len(frames) == 0 {
		return nil, nil
	}
	return frames[len(frames)-1], nil
}

// Window applies limit/offset paging to frames, where first is the Seq of
// frames[0]. Negative offsets count from the end.
func Window(frames []*pb.Frame, first, limit, offset int) []*pb.Frame {
	if offset < 0 {
		offset = len(frames) + offset
	} else {
		offset -= first
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(frames) || limit <= 0 {
		return []*pb.Frame{}
	}
	end := offset + limit
	if end > len(frames) || end < 0 {
		end = len(frames)
	}
	out := make([]*pb.Frame, end-offset)
	copy(out, frames[offset:end])
	return out
}
