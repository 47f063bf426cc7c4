package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/diegok/pixcatch/internal/app"
	"github.com/diegok/pixcatch/internal/config"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printUsage()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	application := app.NewApp(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  pixcatch [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --tuning <file>     YAML difficulty overrides")
	fmt.Fprintln(os.Stderr, "  --scores <file>     High score file (default: ~/.pixcatch_highscore, empty disables)")
	fmt.Fprintln(os.Stderr, "  --seed <n>          Random seed for a repeatable run (default: time based)")
	fmt.Fprintln(os.Stderr, "  --fps <n>           Ticks per second, 10 to 240 (default: 60)")
	fmt.Fprintln(os.Stderr, "  --mute              Disable sound")
	fmt.Fprintln(os.Stderr, "  --log <file>        Write diagnostics to a file")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Controls:")
	fmt.Fprintln(os.Stderr, "  mouse or arrows/a,d/h,l move the basket, ENTER or click starts,")
	fmt.Fprintln(os.Stderr, "  p pauses, r returns to the menu after a game, q quits")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  pixcatch")
	fmt.Fprintln(os.Stderr, "  pixcatch --seed 42 --mute")
	fmt.Fprintln(os.Stderr, "  pixcatch --tuning hard.yaml --scores \"\"")
}
