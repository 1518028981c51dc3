// Redwood is a terminal dashboard that tracks the aircraft nearest to you.
//
// It resolves your position (IP geolocation or a configured coordinate),
// polls the OpenSky Network on an interval, and renders a live nearest-first
// view. Run it with no arguments; a default config.json is written on first
// run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nihcosnosaj/redwood-tui/internal/app"
	"github.com/nihcosnosaj/redwood-tui/pkg/config"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the configuration file")
	manual := flag.Bool("manual", false, "use the configured manual coordinate, skipping IP geolocation")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.Run(ctx, app.Options{
		ConfigPath:  *configPath,
		ForceManual: *manual,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "redwood: %v\n", err)
		os.Exit(1)
	}
}
