package pb

import (
	"bufio"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/rules"
	"github.com/stretchr/testify/require"
)

var basicFrame = &rules.Frame{
	Turn:   12,
	Width:  40,
	Height: 30,
	Snake: []rules.Point{
		{X: 5, Y: 5},
		{X: 4, Y: 5},
	},
	Food:         rules.Point{X: 0, Y: 29},
	Score:        10,
	Status:       rules.GameStatusPlaying,
	ShowControls: true,
}

func TestNewFrame(t *testing.T) {
	f := NewFrame(basicFrame)
	require.Equal(t, int64(12), f.Turn)
	require.Len(t, f.Snake, 2)
	require.Equal(t, &Point{X: 5, Y: 5}, f.Head())
	require.Equal(t, &Point{X: 0, Y: 29}, f.Food)
	require.Equal(t, "playing", f.Status)

	require.Equal(t, basicFrame, f.Rules())
}

func TestFrameHeadEmpty(t *testing.T) {
	require.Nil(t, (&Frame{}).Head())
}

func TestPointEqual(t *testing.T) {
	require.True(t, (&Point{X: 1, Y: 2}).Equal(&Point{X: 1, Y: 2}))
	require.False(t, (&Point{X: 1, Y: 2}).Equal(&Point{X: 2, Y: 1}))
	require.False(t, (&Point{X: 1, Y: 2}).Equal(nil))
}

func TestNewSession(t *testing.T) {
	started := time.Unix(1500, 0)
	s := NewSession("abc", rules.Grid{Width: 40, Height: 30}, started)
	require.True(t, s.Running())
	require.Equal(t, int32(40), s.Width)
	require.True(t, started.Equal(s.StartedAt()))

	s.Status = string(rules.SessionStatusComplete)
	require.False(t, s.Running())
}

func TestDelimitedRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewSession("abc", rules.Grid{Width: 40, Height: 30}, time.Unix(1500, 0))
	frame := NewFrame(basicFrame)

	require.NoError(t, WriteDelimited(buf, session))
	require.NoError(t, WriteDelimited(buf, frame))

	r := bufio.NewReader(buf)
	gotSession := &Session{}
	require.NoError(t, ReadDelimited(r, gotSession))
	require.Equal(t, session, gotSession)

	gotFrame := &Frame{}
	require.NoError(t, ReadDelimited(r, gotFrame))
	require.Equal(t, basicFrame, gotFrame.Rules())

	require.Equal(t, io.EOF, ReadDelimited(r, &Frame{}))
}

func TestReadDelimitedTruncated(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteDelimited(buf, NewFrame(basicFrame)))
	data := buf.Bytes()[:buf.Len()-2]

	err := ReadDelimited(bufio.NewReader(bytes.NewReader(data)), &Frame{})
	require.Error(t, err)
	require.NotEqual(t, io.EOF, err)
}
