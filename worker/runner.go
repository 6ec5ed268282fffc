// Package worker runs the game loop: it polls input from a surface, steps
// the game at a fixed tick rate, draws every frame and pushes it to a store.
package worker

import (
	"context"
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Surface is where input comes from and frames are drawn to.
type Surface interface {
	// Events delivers input. A closed channel is treated as a quit.
	Events() <-chan rules.Event
	Draw(f *rules.Frame) error
}

// Runner owns a single game for the lifetime of a session.
type Runner struct {
	SessionID string
	Game      *rules.Game
	Surface   Surface
	Store     store.Store
	Limiter   *rate.Limiter
}

// Run plays the session until the player quits or ctx is cancelled. Quitting
// is not an error.
func (r *Runner) Run(ctx context.Context) error {
	logger := log.WithField("session", r.SessionID)

	session := pb.NewSession(r.SessionID, r.Game.Grid(), time.Now())
	if err := r.Store.CreateSession(ctx, session); err != nil {
		return errors.Wrap(err, "unable to create session")
	}
	defer func() {
		// The session is over even if ctx is already cancelled.
		err := r.Store.SetSessionStatus(context.Background(), r.SessionID, rules.SessionStatusComplete)
		if err != nil {
			logger.WithError(err).Error("unable to complete session")
		}
	}()

	logger.WithFields(log.Fields{
		"width":  session.Width,
		"height": session.Height,
	}).Info("session started")

	if err := r.publish(ctx, r.Game.Frame()); err != nil {
		return err
	}

	for {
		if err := r.Limiter.Wait(ctx); err != nil {
			if ctx.Err() == nil {
				if _, ok := ctx.Deadline(); !ok {
					return errors.Wrap(err, "tick limiter")
				}
				// Wait gives up early when the deadline would pass before
				// the next tick.
				<-ctx.Done()
			}
			logger.Info("session cancelled")
			return ctx.Err()
		}

		if quit := r.handleEvents(logger); quit {
			logger.WithFields(log.Fields{
				"turn":  r.Game.Turn(),
				"score": r.Game.Score(),
			}).Info("player quit")
			return nil
		}

		if err := r.tick(ctx, logger); err != nil {
			return err
		}
	}
}

// handleEvents drains every pending input event without blocking. It
// reports whether the player asked to quit.
func (r *Runner) handleEvents(logger *log.Entry) bool {
	events := r.Surface.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return true
			}
			switch r.Game.Handle(ev) {
			case rules.ActionQuit:
				return true
			case rules.ActionRestart:
				restarts.Inc()
				score.Set(0)
				logger.WithField("restarts", r.Game.Restarts()).Info("game restarted")
			case rules.ActionTurn:
				logger.WithField("direction", r.Game.Snake().Pending()).Debug("turn queued")
			}
		default:
			return false
		}
	}
}

func (r *Runner) tick(ctx context.Context, logger *log.Entry) error {
	start := time.Now()
	defer func() { tickDuration.Observe(time.Since(start).Seconds()) }()

	res := r.Game.Step()
	if res.Moved {
		ticks.Inc()
	}
	if res.Ate {
		foodEaten.Inc()
		score.Set(float64(r.Game.Score()))
		logger.WithFields(log.Fields{
			"turn":  r.Game.Turn(),
			"score": r.Game.Score(),
		}).Debug("food eaten")
	}
	if res.Died {
		gameOvers.Inc()
		logger.WithFields(log.Fields{
			"turn":   r.Game.Turn(),
			"score":  r.Game.Score(),
			"length": r.Game.Snake().Length(),
		}).Info("game over")
	}

	return r.publish(ctx, r.Game.Frame())
}

// publish draws the frame and hands it to the store. A store failure is
// logged but never stops the game.
func (r *Runner) publish(ctx context.Context, frame *rules.Frame) error {
	if err := r.Surface.Draw(frame); err != nil {
		return errors.Wrap(err, "unable to draw frame")
	}
	if err := r.Store.PushFrame(ctx, r.SessionID, pb.NewFrame(frame)); err != nil {
		log.WithError(err).
			WithField("session", r.SessionID).
			WithField("turn", frame.Turn).
			Warn("unable to store frame")
	}
	return nil
}
