package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/store"
	"github.com/battlesnakeio/snake/store/testsuite"
	"github.com/stretchr/testify/require"
)

func TestInMemStore(t *testing.T) {
	testsuite.Suite(t, store.InMemStore(0), func() {})
}

func TestInMemStoreMaxFrames(t *testing.T) {
	ctx := context.Background()
	s := store.InMemStore(3)
	session := pb.NewSession("abc", rules.Grid{Width: 40, Height: 30}, time.Unix(1500, 0))
	require.NoError(t, s.CreateSession(ctx, session))

	for i := 0; i < 10; i++ {
		require.NoError(t, s.PushFrame(ctx, "abc", &pb.Frame{Turn: int64(i)}))
	}

	frames, err := s.ListFrames(ctx, "abc", 10, 0)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	require.Equal(t, int64(7), frames[0].Turn)
	require.Equal(t, int64(9), frames[2].Turn)
	require.Equal(t, int64(7), frames[0].Seq)

	// Reading past the kept frames keeps following new ones.
	frames, err = s.ListFrames(ctx, "abc", 10, 9)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, int64(9), frames[0].Turn)

	frames, err = s.ListFrames(ctx, "abc", 10, 10)
	require.NoError(t, err)
	require.Empty(t, frames)

	require.NoError(t, s.PushFrame(ctx, "abc", &pb.Frame{Turn: 10}))
	frames, err = s.ListFrames(ctx, "abc", 10, 10)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, int64(10), frames[0].Seq)
}

func TestInMemStoreCopiesFrames(t *testing.T) {
	ctx := context.Background()
	s := store.InMemStore(0)
	session := pb.NewSession("abc", rules.Grid{Width: 40, Height: 30}, time.Unix(1500, 0))
	require.NoError(t, s.CreateSession(ctx, session))

	f := &pb.Frame{Turn: 1, Score: 10}
	require.NoError(t, s.PushFrame(ctx, "abc", f))
	f.Score = 20

	latest, err := s.LatestFrame(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, int32(10), latest.Score)
}

func TestWindow(t *testing.T) {
	frames := []*pb.Frame{{Turn: 0}, {Turn: 1}, {Turn: 2}, {Turn: 3}}
	tests := []struct {
		First    int
		Limit    int
		Offset   int
		Expected []int64
	}{
		{Limit: 10, Offset: 0, Expected: []int64{0, 1, 2, 3}},
		{Limit: 2, Offset: 0, Expected: []int64{0, 1}},
		{Limit: 2, Offset: 3, Expected: []int64{3}},
		{Limit: 2, Offset: 4, Expected: []int64{}},
		{Limit: 10, Offset: -1, Expected: []int64{3}},
		{Limit: 10, Offset: -10, Expected: []int64{0, 1, 2, 3}},
		{Limit: 0, Offset: 0, Expected: []int64{}},
		{First: 6, Limit: 10, Offset: 0, Expected: []int64{0, 1, 2, 3}},
		{First: 6, Limit: 2, Offset: 7, Expected: []int64{1, 2}},
		{First: 6, Limit: 10, Offset: 10, Expected: []int64{}},
		{First: 6, Limit: 10, Offset: -1, Expected: []int64{3}},
	}

	for _, test := range tests {
		got := store.Window(frames, test.First, test.Limit, test.Offset)
		turns := []int64{}
		for _, f := range got {
			turns = append(turns, f.Turn)
		}
		require.Equal(t, test.Expected, turns, "%+v", test)
	}
}
