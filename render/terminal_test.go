package render

import (
	"errors"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/rules"
	termbox "github.com/nsf/termbox-go"
	"github.com/stretchr/testify/require"
)

// fakeInput mimics termbox: Interrupt is an unbuffered send that only a
// running poll receives.
type fakeInput struct {
	in   chan termbox.Event
	shut chan struct{}
}

func newFakeInput() *fakeInput {
	return &fakeInput{in: make(chan termbox.Event), shut: make(chan struct{})}
}

func (f *fakeInput) poll() termbox.Event { return <-f.in }

func (f *fakeInput) interrupt() { f.in <- termbox.Event{Type: termbox.EventInterrupt} }

func (f *fakeInput) shutdown() { close(f.shut) }

func (f *fakeInput) terminal() *Terminal {
	return newTerminal("Snake", f.poll, f.interrupt, f.shutdown)
}

func closeWithin(t *testing.T, term *Terminal, f *fakeInput) {
	closed := make(chan struct{})
	go func() {
		term.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
	select {
	case <-f.shut:
	default:
		t.Fatal("terminal was not shut down")
	}
}

func TestTerminalEvents(t *testing.T) {
	f := newFakeInput()
	term := f.terminal()

	f.in <- termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowUp}
	f.in <- termbox.Event{Type: termbox.EventResize}
	f.in <- termbox.Event{Type: termbox.EventKey, Ch: 'q'}

	require.Equal(t, rules.KeyPress(rules.KeyUp), <-term.Events())
	require.Equal(t, rules.KeyPress(rules.KeyQ), <-term.Events())

	closeWithin(t, term, f)
	_, ok := <-term.Events()
	require.False(t, ok)
}

func TestTerminalCloseAfterInputError(t *testing.T) {
	f := newFakeInput()
	term := f.terminal()

	f.in <- termbox.Event{Type: termbox.EventError, Err: errors.New("hangup")}
	_, ok := <-term.Events()
	require.False(t, ok)

	closeWithin(t, term, f)
}

func TestTerminalCloseTwice(t *testing.T) {
	f := newFakeInput()
	term := f.terminal()

	closeWithin(t, term, f)
	term.Close()
}
