// Package app wires the Redwood components together and owns the process
// lifecycle: config, logging, location resolution, the background
// acquisition loop, the render loop, and terminal restoration.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nihcosnosaj/redwood-tui/internal/logging"
	"github.com/nihcosnosaj/redwood-tui/internal/poller"
	"github.com/nihcosnosaj/redwood-tui/internal/state"
	"github.com/nihcosnosaj/redwood-tui/internal/term"
	"github.com/nihcosnosaj/redwood-tui/internal/ui"
	"github.com/nihcosnosaj/redwood-tui/pkg/config"
	"github.com/nihcosnosaj/redwood-tui/pkg/geoip"
	"github.com/nihcosnosaj/redwood-tui/pkg/opensky"
)

// Options configure a Redwood run.
type Options struct {
	// ConfigPath is the configuration file location.
	ConfigPath string

	// ForceManual disables IP geolocation for this run regardless of the
	// configured auto_locate setting.
	ForceManual bool
}

// Run boots Redwood and blocks until the user quits or ctx is cancelled.
//
// Startup order matters: everything that can fail fatally (config, location
// resolution) happens before the terminal mode switch, so those errors print
// normally. Once the TUI is up, terminal restoration is guaranteed on every
// exit path, panics included.
func Run(ctx context.Context, opts Options) error {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.ForceManual {
		cfg.Location.AutoLocate = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(cfg.Logging)
	log.Info("redwood starting up",
		"config", opts.ConfigPath,
		"radius_km", cfg.Location.DetectionRadiusKM,
		"poll_interval_s", cfg.API.PollIntervalSeconds)

	ref, err := ResolveLocation(ctx, cfg, geoip.NewClient(""), log)
	if err != nil {
		log.Error("startup failed", "error", err)
		return err
	}

	store := state.NewStore()

	provider := opensky.NewClient(opensky.Config{
		BaseURL:            cfg.API.BaseURL,
		Center:             ref,
		RadiusKM:           cfg.Location.DetectionRadiusKM,
		Timeout:            time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		MinRequestInterval: time.Second,
	})

	interval := time.Duration(cfg.API.PollIntervalSeconds) * time.Second
	acq := poller.New(provider, store, ref, cfg.Location.DetectionRadiusKM, interval, log)

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		acq.Run(pollCtx)
	}()

	model := ui.NewModel(ui.Options{
		Store:       store,
		Ref:         ref,
		RadiusKM:    cfg.Location.DetectionRadiusKM,
		DefaultView: cfg.UI.DefaultView,
	})

	// WithoutCatchPanics so a panic unwinds through Run and hits our
	// guard; the guard restores the terminal before the panic escapes.
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutCatchPanics())
	guard := term.NewGuard(func() error {
		return program.ReleaseTerminal()
	})

	// External cancellation (SIGINT/SIGTERM) quits the program gracefully.
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	runErr := guard.Protect(func() error {
		_, err := program.Run()
		return err
	})

	cancel()
	wg.Wait()

	if runErr != nil {
		log.Error("render loop failed", "error", runErr)
		return fmt.Errorf("render loop: %w", runErr)
	}

	log.Info("redwood shut down")
	return nil
}
