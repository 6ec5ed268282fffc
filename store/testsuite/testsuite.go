// Package testsuite runs the same behaviour checks against every Store
// implementation.
package testsuite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/store"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func newSession() *pb.Session {
	return pb.NewSession(uuid.NewV4().String(), rules.Grid{Width: 40, Height: 30}, time.Unix(1500, 0))
}

func frame(turn int) *pb.Frame {
	return &pb.Frame{
		Turn:   int64(turn),
		Width:  40,
		Height: 30,
		Snake:  []*pb.Point{{X: int32(turn % 40), Y: 15}},
		Food:   &pb.Point{X: 3, Y: 7},
		Score:  int32(turn * 10),
		Status: string(rules.GameStatusPlaying),
		Seq:    int64(turn),
	}
}

func testStoreSessions(t *testing.T, s store.Store) {
	ctx := context.Background()
	session := newSession()

	// Create and fetch a session.
	err := s.CreateSession(ctx, session)
	require.Nil(t, err)
	got, err := s.GetSession(ctx, session.ID)
	require.Nil(t, err)
	require.Equal(t, session, got)

	// Creating it twice fails.
	err = s.CreateSession(ctx, session)
	require.Equal(t, store.ErrSessionExists, err)

	// NotFound error thrown.
	_, err = s.GetSession(ctx, session.ID+"-missing")
	require.Equal(t, store.ErrNotFound, err)
}

func testStoreSessionStatus(t *testing.T, s store.Store) {
	ctx := context.Background()
	session := newSession()

	err := s.CreateSession(ctx, session)
	require.Nil(t, err)

	err = s.SetSessionStatus(ctx, session.ID, rules.SessionStatusComplete)
	require.Nil(t, err)

	got, err := s.GetSession(ctx, session.ID)
	require.Nil(t, err)
	require.False(t, got.Running())

	err = s.SetSessionStatus(ctx, session.ID+"-missing", rules.SessionStatusComplete)
	require.Equal(t, store.ErrNotFound, err)
}

func testStoreFrames(t *testing.T, s store.Store) {
	ctx := context.Background()
	session := newSession()

	err := s.CreateSession(ctx, session)
	require.Nil(t, err)

	// Read frames, too high offset.
	frames, err := s.ListFrames(ctx, session.ID, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// No latest frame yet.
	latest, err := s.LatestFrame(ctx, session.ID)
	require.Nil(t, err)
	require.Nil(t, latest)

	for i := 0; i < 5; i++ {
		err = s.PushFrame(ctx, session.ID, frame(i))
		require.Nil(t, err)
	}

	// Read all frames.
	frames, err = s.ListFrames(ctx, session.ID, 10, 0)
	require.Nil(t, err)
	require.Len(t, frames, 5)
	for i, f := range frames {
		require.Equal(t, frame(i), f)
	}

	// Paged read.
	frames, err = s.ListFrames(ctx, session.ID, 2, 1)
	require.Nil(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)

	// Offsets are frame sequence numbers.
	frames, err = s.ListFrames(ctx, session.ID, 10, 4)
	require.Nil(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, int64(4), frames[0].Seq)

	// Negative offset reads from the end.
	frames, err = s.ListFrames(ctx, session.ID, 10, -2)
	require.Nil(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, int64(3), frames[0].Turn)

	latest, err = s.LatestFrame(ctx, session.ID)
	require.Nil(t, err)
	require.Equal(t, frame(4), latest)

	// Frames of a missing session.
	frames, err = s.ListFrames(ctx, session.ID+"-missing", 1, 0)
	require.Equal(t, store.ErrNotFound, err)
	require.Equal(t, 0, len(frames))

	err = s.PushFrame(ctx, session.ID+"-missing", frame(0))
	require.Equal(t, store.ErrNotFound, err)
}

func testStoreConcurrentReaders(t *testing.T, s store.Store) {
	ctx := context.Background()
	session := newSession()
	require.Nil(t, s.CreateSession(ctx, session))

	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := s.ListFrames(ctx, session.ID, 5, -5)
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		require.Nil(t, s.PushFrame(ctx, session.ID, frame(i)))
	}
	wg.Wait()

	frames, err := s.ListFrames(ctx, session.ID, 100, 0)
	require.Nil(t, err)
	require.Len(t, frames, 20)
}

// Suite will execute the store testsuite.
func Suite(t *testing.T, s store.Store, pretest func()) {
	s = store.InstrumentStore(s)
	t.Run("Sessions", func(t *testing.T) { pretest(); testStoreSessions(t, s) })
	t.Run("SessionStatus", func(t *testing.T) { pretest(); testStoreSessionStatus(t, s) })
	t.Run("Frames", func(t *testing.T) { pretest(); testStoreFrames(t, s) })
	t.Run("ConcurrentReaders", func(t *testing.T) { pretest(); testStoreConcurrentReaders(t, s) })
}
