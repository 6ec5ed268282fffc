package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of the game. Command flags default to them.
var (
	WindowWidth      = getEnvInt("SNAKE_WINDOW_WIDTH", 800)
	WindowHeight     = getEnvInt("SNAKE_WINDOW_HEIGHT", 600)
	CellSize         = getEnvInt("SNAKE_CELL_SIZE", 20)
	TickRate         = rate.Limit(getEnvInt("SNAKE_TICK_RATE", 10))
	TickBurst        = getEnvInt("SNAKE_TICK_BURST", 1)
	FoodScore        = getEnvInt("SNAKE_FOOD_SCORE", 10)
	ControlsDuration = time.Duration(getEnvInt("SNAKE_CONTROLS_SECONDS", 5)) * time.Second
	MaxFrames        = getEnvInt("SNAKE_MAX_FRAMES", 3000)
	SessionTTL       = time.Duration(getEnvInt("SNAKE_SESSION_TTL_SECONDS", 3600)) * time.Second
	RecordDir        = getEnvString("SNAKE_RECORD_DIR", "")
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvString(varName string, defaults string) string {
	if val, ok := os.LookupEnv(varName); ok {
		return val
	}
	return defaults
}

// TickInterval is the time between two ticks at the configured rate.
func TickInterval() time.Duration {
	if TickRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(TickRate))
}
