package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/battlesnakeio/snake/api"
	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/render"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/store"
	"github.com/battlesnakeio/snake/store/filestore"
	"github.com/battlesnakeio/snake/store/redisstore"
	"github.com/battlesnakeio/snake/worker"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"
)

var (
	windowWidth      = config.WindowWidth
	windowHeight     = config.WindowHeight
	cellSize         = config.CellSize
	tickRate         = float64(config.TickRate)
	tickBurst        = config.TickBurst
	foodScore        = config.FoodScore
	controlsDuration = config.ControlsDuration
	maxFrames        = config.MaxFrames
	sessionTTL       = config.SessionTTL
	recordDir        = config.RecordDir
	redisURL         string
	apiListen        string
	foodAvoidSnake   bool
)

// addPlayFlags registers the game options on f. Both play and the bare root
// command take them.
func addPlayFlags(f *pflag.FlagSet) {
	f.IntVar(&windowWidth, "width", windowWidth, "window width, divided by the cell size to get the board width")
	f.IntVar(&windowHeight, "height", windowHeight, "window height, divided by the cell size to get the board height")
	f.IntVar(&cellSize, "cell-size", cellSize, "size of a single board cell")
	f.Float64Var(&tickRate, "tick-rate", tickRate, "ticks per second")
	f.IntVar(&tickBurst, "tick-burst", tickBurst, "ticks allowed to run back to back after a stall")
	f.IntVar(&foodScore, "food-score", foodScore, "points for every food eaten")
	f.DurationVar(&controlsDuration, "controls-duration", controlsDuration, "how long the controls are shown at start")
	f.IntVar(&maxFrames, "max-frames", maxFrames, "frames kept per session for spectators, 0 keeps all")
	f.DurationVar(&sessionTTL, "session-ttl", sessionTTL, "expiry of sessions kept in redis")
	f.StringVar(&recordDir, "record", recordDir, "directory to record the session to")
	f.StringVar(&redisURL, "redis-url", redisURL, "share frames through redis instead of memory")
	f.StringVar(&apiListen, "api-listen", apiListen, "serve the spectator api on this address")
	f.StringVar(&promListen, "prometheus-listen", promListen, "serve prometheus metrics on this address")
	f.BoolVar(&foodAvoidSnake, "food-avoid-snake", foodAvoidSnake, "never spawn food on the snake")
}

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "plays a game of snake in the terminal",
	Annotations: map[string]string{ownsTerminal: "true"},
	PreRun:      func(c *cobra.Command, args []string) { prometheus() },
	RunE:        play,
}

func play(c *cobra.Command, args []string) error {
	grid := rules.NewGrid(windowWidth, windowHeight, cellSize)
	if grid.Width < 1 || grid.Height < 1 {
		return errors.Errorf("a %dx%d window holds no %d sized cells", windowWidth, windowHeight, cellSize)
	}
	if tickRate <= 0 {
		return errors.New("tick rate must be positive")
	}
	if tickBurst < 1 {
		tickBurst = 1
	}

	sessionID := uuid.NewV4().String()
	logger := log.WithField("session", sessionID)

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	s = store.InstrumentStore(s)
	if recordDir != "" {
		logger.WithField("file", filestore.Path(recordDir, sessionID)).Info("recording session")
	}

	if apiListen != "" {
		srv := api.New(apiListen, s, sessionID)
		logger.WithField("listen", apiListen).Info("spectator api serving")
		go func() {
			if err := srv.WaitForExit(); err != nil {
				logger.WithError(err).
					WithField("listen", apiListen).
					Error("api server failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.WithError(err).Warn("api server did not shut down cleanly")
			}
		}()
	}

	term, err := render.Open("Snake")
	if err != nil {
		return err
	}
	defer term.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnSignal(ctx, cancel)

	runner := &worker.Runner{
		SessionID: sessionID,
		Game: rules.NewGame(rules.Options{
			Grid:             grid,
			FoodScore:        foodScore,
			ControlsDuration: controlsDuration,
			FoodAvoidSnake:   foodAvoidSnake,
		}),
		Surface: term,
		Store:   s,
		Limiter: rate.NewLimiter(rate.Limit(tickRate), tickBurst),
	}

	err = runner.Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

// openStore picks where frames go: redis, a recording on disk or memory.
func openStore() (store.Store, func(), error) {
	switch {
	case redisURL != "" && recordDir != "":
		return nil, nil, errors.New("--redis-url and --record cannot be combined")
	case redisURL != "":
		rs, err := redisstore.NewStore(redisURL, sessionTTL, maxFrames)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() {
			if err := rs.Close(); err != nil {
				log.WithError(err).Warn("unable to close redis store")
			}
		}, nil
	case recordDir != "":
		return filestore.NewFileStore(recordDir, maxFrames), func() {}, nil
	}
	return store.InMemStore(maxFrames), func() {}, nil
}

func cancelOnSignal(ctx context.Context, cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		log.WithField("signal", sig.String()).Info("shutting down")
		cancel()
	case <-ctx.Done():
	}
}
