// Package cli implements the stackprobe command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
	"github.com/custodia-labs/stackprobe/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	detectorService driving.DetectorService
	scanService     driving.ScanService
	settingsService driving.SettingsService
	archiveService  driving.ArchiveService

	// newSession builds the isolated detector behind the MCP detect tool.
	newSession func() driving.DetectorService
)

var rootCmd = &cobra.Command{
	Use:   "stackprobe",
	Short: "Detect the technologies behind websites",
	Long: `stackprobe classifies crawled pages against a catalog of technology
signatures and reports which frameworks, CMSs, analytics tools and
services a site uses, with the share of pages each was seen on.

Pages can come from the crawl API, an NDJSON file or stdin, an SQS queue
or a previously archived scan.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Services holds the driving ports used by the commands.
type Services struct {
	Detector driving.DetectorService
	Scan     driving.ScanService
	Settings driving.SettingsService
	Archive  driving.ArchiveService

	// NewSession creates a detector independent of Detector.
	NewSession func() driving.DetectorService
}

// SetServices wires the services used by all commands.
func SetServices(s Services) {
	detectorService = s.Detector
	scanService = s.Scan
	settingsService = s.Settings
	archiveService = s.Archive
	newSession = s.NewSession
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
