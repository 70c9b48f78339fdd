package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/logger"
)

var (
	tuiFile    string
	tuiArchive string
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [url...]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive dashboard. Pages stream into the view as they
are crawled or read.

Controls:
  1-4        - Sort by name, category, pages, confidence (again to reverse)
  tab        - Next category filter (shift+tab for previous)
  ↑/k, ↓/j   - Move the selection
  J / C / M  - Export tech-stack.json / .csv / .md
  q          - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiFile, "file", "", "read pages from an NDJSON file (- for stdin)")
	tuiCmd.Flags().StringVar(&tuiArchive, "archive", "", "replay an archived crawl")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	req, err := tuiRequest(args)
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		Detector: detectorService,
		Scan:     scanService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports, req)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd))

	// Log lines would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func tuiRequest(args []string) (domain.ScanRequest, error) {
	switch {
	case tuiFile != "" && (tuiArchive != "" || len(args) > 0),
		tuiArchive != "" && len(args) > 0:
		return domain.ScanRequest{}, errors.New("specify urls, --file or --archive, not several")
	case tuiFile != "":
		return domain.ScanRequest{Kind: domain.SourceFile, Path: tuiFile}, nil
	case tuiArchive != "":
		return domain.ScanRequest{Kind: domain.SourceArchive, ArchiveID: tuiArchive}, nil
	case len(args) > 0:
		crawl := domain.DefaultSettings().Crawl
		if settingsService != nil {
			if s, err := settingsService.Get(); err == nil {
				crawl = s.Crawl
			}
		}
		targets := domain.ParseTargets(strings.Join(args, ","))
		return domain.ScanRequest{Kind: domain.SourceCrawl, Crawl: crawl.Options(targets)}, nil
	default:
		return domain.ScanRequest{}, errors.New("specify urls to crawl, --file or --archive")
	}
}
