package commands

import (
	"sync"

	"github.com/battlesnakeio/snake/pb"
)

// frameHolder collects frames as they arrive, from a file or a socket, so
// playback can move back and forth through them.
type frameHolder struct {
	sync.RWMutex
	frames []*pb.Frame
	ffc    chan *pb.Frame
	done   bool
}

func newFrameHolder() *frameHolder {
	return &frameHolder{ffc: make(chan *pb.Frame, 1)}
}

func (fh *frameHolder) append(frame *pb.Frame) {
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		fh.ffc <- frame
		close(fh.ffc)
	}

	fh.frames = append(fh.frames, frame)
}

func (fh *frameHolder) get(index int) *pb.Frame {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}

	return fh.frames[index]
}

func (fh *frameHolder) initialFrame() <-chan *pb.Frame {
	return fh.ffc
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}

// finish marks that no more frames will arrive.
func (fh *frameHolder) finish() {
	fh.Lock()
	defer fh.Unlock()

	fh.done = true
}

func (fh *frameHolder) finished() bool {
	fh.RLock()
	defer fh.RUnlock()

	return fh.done
}
