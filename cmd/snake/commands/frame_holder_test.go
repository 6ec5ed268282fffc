package commands

import (
	"testing"

	"github.com/battlesnakeio/snake/pb"
	"github.com/stretchr/testify/require"
)

func holderWith(n int) *frameHolder {
	fh := newFrameHolder()
	for i := 0; i < n; i++ {
		fh.append(&pb.Frame{Turn: int64(i)})
	}
	return fh
}

func TestFrameHolder(t *testing.T) {
	fh := holderWith(3)

	require.Equal(t, 3, fh.count())
	require.Equal(t, int64(1), fh.get(1).Turn)
	require.Nil(t, fh.get(-1))
	require.Nil(t, fh.get(3))

	initial := <-fh.initialFrame()
	require.Equal(t, int64(0), initial.Turn)

	require.False(t, fh.finished())
	fh.finish()
	require.True(t, fh.finished())
}

func TestFrameHolderInitialFrameBeforeAppend(t *testing.T) {
	fh := newFrameHolder()
	got := make(chan *pb.Frame)
	go func() { got <- <-fh.initialFrame() }()

	fh.append(&pb.Frame{Turn: 7})
	fh.append(&pb.Frame{Turn: 8})
	require.Equal(t, int64(7), (<-got).Turn)
}

func TestMoveFrameForwards(t *testing.T) {
	fh := holderWith(3)

	idx, f, done := moveFrameForwards(0, fh)
	require.Equal(t, 1, idx)
	require.Equal(t, int64(1), f.Turn)
	require.False(t, done)

	// A live session waits on its last frame.
	idx, f, done = moveFrameForwards(2, fh)
	require.Equal(t, 2, idx)
	require.Equal(t, int64(2), f.Turn)
	require.False(t, done)

	fh.finish()
	idx, _, done = moveFrameForwards(2, fh)
	require.Equal(t, 2, idx)
	require.True(t, done)
}

func TestMoveFrameBackwards(t *testing.T) {
	fh := holderWith(3)

	idx, f := moveFrameBackwards(2, fh)
	require.Equal(t, 1, idx)
	require.Equal(t, int64(1), f.Turn)

	idx, f = moveFrameBackwards(0, fh)
	require.Equal(t, 0, idx)
	require.Equal(t, int64(0), f.Turn)
}
