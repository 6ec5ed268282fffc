package commands

import (
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/worker"
	"github.com/pkg/errors"
)

var initialFrameTimeout = 5 * time.Second

func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *pb.Frame, bool) {
	if frameIndex+1 >= frames.count() {
		// Live sessions wait on the last frame until more arrive.
		return frameIndex, frames.get(frameIndex), frames.finished()
	}
	frameIndex++
	return frameIndex, frames.get(frameIndex), false
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *pb.Frame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

// playback draws frames at the given interval. Space pauses, the left and
// right arrows step, Esc and q stop. Once the last frame of a finished
// session is shown, prompt is called and any key exits.
func playback(surface worker.Surface, frames *frameHolder, interval time.Duration, prompt func(string) error) error {
	var currentFrame *pb.Frame
	select {
	case currentFrame = <-frames.initialFrame():
	case <-time.After(initialFrameTimeout):
		return errors.New("unable to find initial frame for session")
	}

	draw := func(f *pb.Frame) error {
		return surface.Draw(f.Rules())
	}

	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	cycle := time.NewTicker(interval)
	defer cycle.Stop()

	events := surface.Events()
	frameIndex := 0
	paused := false
	done := false

	for !done {
		select {
		case ev, ok := <-events:
			if !ok || ev.Type == rules.EventQuit {
				return nil
			}
			switch ev.Key {
			case rules.KeyQ:
				return nil
			case rules.KeySpace:
				paused = !paused
			case rules.KeyLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
				if err := draw(currentFrame); err != nil {
					return err
				}
			case rules.KeyRight:
				paused = true
				frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
				if err := draw(currentFrame); err != nil {
					return err
				}
			}
		case <-cycle.C:
			if paused {
				continue
			}
			if err := draw(currentFrame); err != nil {
				return err
			}
			frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
		}
	}

	if err := prompt("Press any key to exit..."); err != nil {
		return err
	}
	<-events
	return nil
}
