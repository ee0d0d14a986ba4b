package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/custodia-labs/seek/internal/adapters/driven/cargo"
	"github.com/custodia-labs/seek/internal/adapters/driven/config/file"
	"github.com/custodia-labs/seek/internal/adapters/driven/github"
	"github.com/custodia-labs/seek/internal/adapters/driven/registry/cratesio"
	"github.com/custodia-labs/seek/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/seek/internal/adapters/driving/cli"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/core/services"
	"github.com/custodia-labs/seek/internal/logger"
)

// bootstrap wires the adapters into the core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	var closers []func()
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if opts.Interactive {
		if closer := openLogFile(); closer != nil {
			closers = append(closers, func() { _ = closer.Close() })
		}
	}

	configStore, err := newConfigStore(opts.NoConfig)
	if err != nil {
		release()
		return nil, err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		release()
		return nil, fmt.Errorf("load settings: %w", err)
	}

	client, err := cratesio.NewClient(cratesio.ConfigFromSettings(settings.Registry))
	if err != nil {
		release()
		return nil, fmt.Errorf("create registry client: %w", err)
	}
	registry, err := cratesio.NewCachedClient(client, settings.Registry.CacheSize)
	if err != nil {
		release()
		return nil, fmt.Errorf("create registry cache: %w", err)
	}

	reader := cargo.NewReader(cargo.Config{ProjectDir: opts.ProjectDir})
	environmentService := services.NewEnvironmentService(reader)
	if _, err := environmentService.Refresh(ctx); err != nil {
		logger.Warn("Failed to read the Cargo environment: %v", err)
	}

	orchestrator := services.NewSearchOrchestrator(environmentService,
		services.NewProjectSource(),
		services.NewInstalledSource(),
		services.NewRegistrySource(registry),
	)
	orchestrator.SetPageSize(settings.Search.PageSize)
	closers = append(closers, orchestrator.Close)
	environmentService.OnRefresh(orchestrator.ApplyEnvironment)

	hydrationService := services.NewHydrationService(registry, orchestrator, settings.Hydration.Delay)
	closers = append(closers, hydrationService.Close)

	fetchers := []driven.ReadmeFetcher{}
	if gh, err := github.NewClient(ctx, github.ConfigFromSettings(settings.GitHub)); err != nil {
		logger.Warn("README lookups disabled: %v", err)
	} else {
		fetchers = append(fetchers, gh)
	}
	readmeService := services.NewReadmeService(registry, fetchers...)

	if opts.Watch {
		stop := watchEnvironment(ctx, reader, environmentService)
		closers = append(closers, stop)
	}

	return &cli.Services{
		Search:      orchestrator,
		Hydration:   hydrationService,
		Environment: environmentService,
		Readme:      readmeService,
		Settings:    settingsService,
		Close:       release,
	}, nil
}

func newConfigStore(noConfig bool) (driven.ConfigStore, error) {
	if noConfig {
		return memory.NewConfigStore(), nil
	}
	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	return store, nil
}

// openLogFile moves log output to ~/.seek/logs/seek.log while the TUI owns
// the terminal. It returns nil if the file cannot be opened.
func openLogFile() io.Closer {
	dir, err := file.DefaultDir()
	if err != nil {
		logger.Warn("Logging to stderr: %v", err)
		return nil
	}
	closer, err := logger.OpenFile(filepath.Join(dir, "logs", "seek.log"))
	if err != nil {
		logger.Warn("Logging to stderr: %v", err)
		return nil
	}
	return closer
}

// watchEnvironment refreshes the environment whenever a manifest or the
// install list changes. The returned function stops the watcher.
func watchEnvironment(ctx context.Context, reader *cargo.Reader, env *services.EnvironmentService) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	watcher := cargo.NewWatcher(reader.WatchPaths, cargo.DefaultWatchDebounce)
	go func() {
		defer close(done)
		err := watcher.Watch(ctx, func() {
			if _, err := env.Refresh(ctx); err != nil {
				logger.Warn("Failed to refresh the Cargo environment: %v", err)
			}
		})
		if err != nil {
			logger.Warn("Environment watcher stopped: %v", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
