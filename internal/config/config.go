package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Default values for configuration
const (
	DefaultFPS        = 60
	MinFPS            = 10
	MaxFPS            = 240
	DefaultScoresFile = ".pixcatch_highscore"
)

// Config holds the application configuration
type Config struct {
	TuningPath string
	ScoresPath string
	LogPath    string
	Seed       int64
	FPS        int
	Mute       bool
	Tuning     Tuning
}

// ParseArgs parses command line arguments and returns a Config
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("pixcatch", flag.ContinueOnError)

	tuning := fs.String("tuning", "", "YAML tuning file")
	scores := fs.String("scores", defaultScoresPath(), "high score file (empty disables saving)")
	logPath := fs.String("log", "", "diagnostic log file")
	seed := fs.Int64("seed", 0, "random seed (0 = time based)")
	fps := fs.Int("fps", DefaultFPS, "simulation ticks per second")
	mute := fs.Bool("mute", false, "disable sound")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if *fps < MinFPS || *fps > MaxFPS {
		return nil, fmt.Errorf("fps must be between %d and %d, got %d", MinFPS, MaxFPS, *fps)
	}

	t := DefaultTuning()
	if *tuning != "" {
		loaded, err := LoadTuning(*tuning)
		if err != nil {
			return nil, err
		}
		t = loaded
	}

	cfg := &Config{
		TuningPath: *tuning,
		ScoresPath: *scores,
		LogPath:    *logPath,
		Seed:       *seed,
		FPS:        *fps,
		Mute:       *mute,
		Tuning:     t,
	}

	return cfg, nil
}

// defaultScoresPath puts the high score file in the user's home directory,
// falling back to the working directory when there is none.
func defaultScoresPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultScoresFile
	}
	return filepath.Join(home, DefaultScoresFile)
}
