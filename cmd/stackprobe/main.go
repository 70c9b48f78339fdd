// stackprobe detects the technologies behind websites from crawled pages.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/stackprobe/internal/adapters/driven/config/file"
	"github.com/custodia-labs/stackprobe/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/cli"
	"github.com/custodia-labs/stackprobe/internal/connectors"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
	"github.com/custodia-labs/stackprobe/internal/core/services"
	"github.com/custodia-labs/stackprobe/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	settings := services.NewSettingsService(configStore)

	// Archiving is optional; scans still work without the database.
	var archive driven.PageArchive
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("archive unavailable: %v", err)
	} else {
		defer store.Close()
		archive = store.PageArchive()
	}

	detector := services.NewDetectorService(nil)
	factory := connectors.NewFactory(settings, archive, os.Stdin)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Detector: detector,
		Scan:     services.NewScanOrchestrator(detector, factory, archive, settings),
		Settings: settings,
		Archive:  services.NewArchiveService(archive),
		NewSession: func() driving.DetectorService {
			return services.NewDetectorService(nil)
		},
	})

	return cli.Execute()
}
