package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
)

// progressInterval is how often scan progress is redrawn.
const progressInterval = 500 * time.Millisecond

var (
	scanFollow   bool
	scanQueue    string
	scanRegion   string
	scanMaxEmpty int
	scanArchive  string
	scanView     viewFlags
)

var scanCmd = &cobra.Command{
	Use:   "scan [file|-]",
	Short: "Detect technologies in pages from a file, queue or archive",
	Long: `Reads crawled pages and reports the technologies found in them.

Pages are newline delimited JSON records with "url" and "content" fields.
Exactly one source is used:

  stackprobe scan pages.ndjson          read a file
  stackprobe scan -                     read standard input
  stackprobe scan pages.ndjson --follow keep reading as the file grows
  stackprobe scan --sqs-queue URL       receive pages from an SQS queue
  stackprobe scan --archive ID          replay an archived crawl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	scanCmd.Flags().BoolVar(&scanFollow, "follow", false, "keep reading the file as it grows until interrupted")
	scanCmd.Flags().StringVar(&scanQueue, "sqs-queue", "", "SQS queue URL to receive pages from")
	scanCmd.Flags().StringVar(&scanRegion, "sqs-region", "", "AWS region of the queue")
	scanCmd.Flags().IntVar(&scanMaxEmpty, "max-empty", 0, "stop after this many empty queue polls (0 uses the configured value)")
	scanCmd.Flags().StringVar(&scanArchive, "archive", "", "replay the archived session with this ID")
	scanView.register(scanCmd)
	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	req, err := scanRequest(args)
	if err != nil {
		return err
	}
	if err := runScan(cmd, req); err != nil {
		return err
	}
	return writeReport(cmd, &scanView)
}

// scanRequest picks the source from the positional argument and flags.
func scanRequest(args []string) (domain.ScanRequest, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if scanQueue != "" {
		sources++
	}
	if scanArchive != "" {
		sources++
	}
	if sources != 1 {
		return domain.ScanRequest{}, errors.New("specify exactly one of a file, --sqs-queue or --archive")
	}

	switch {
	case scanQueue != "":
		queue := domain.DefaultSettings().Queue
		if settingsService != nil {
			if s, err := settingsService.Get(); err == nil {
				queue = s.Queue
			}
		}
		queue.URL = scanQueue
		if scanRegion != "" {
			queue.Region = scanRegion
		}
		if scanMaxEmpty > 0 {
			queue.MaxEmptyPolls = scanMaxEmpty
		}
		return domain.ScanRequest{Kind: domain.SourceQueue, Queue: queue}, nil

	case scanArchive != "":
		return domain.ScanRequest{Kind: domain.SourceArchive, ArchiveID: scanArchive}, nil

	default:
		return domain.ScanRequest{Kind: domain.SourceFile, Path: args[0], Follow: scanFollow}, nil
	}
}

// runScan feeds the session from req until the source ends or the user
// interrupts, then prints the completion line.
func runScan(cmd *cobra.Command, req domain.ScanRequest, opts ...driving.ScanOption) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	result, err := scanWithProgress(ctx, cmd, scanService, req, opts...)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			cmd.PrintErrln("No crawl API key configured. Run 'stackprobe settings api-key' or set STACKPROBE_API_KEY.")
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	msg := result.Message
	if result.Cancelled {
		msg += " (interrupted)"
	}
	cmd.PrintErrln(msg)
	if result.Partial {
		cmd.PrintErrf("Warning: %s; showing the pages received\n", result.Warning)
	}
	if result.Archived {
		cmd.PrintErrf("Pages archived as %s\n", result.SessionID)
	}
	return nil
}

// scanWithProgress runs the scan while redrawing the page count on stderr.
func scanWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	scanner driving.ScanService,
	req domain.ScanRequest,
	opts ...driving.ScanOption,
) (*domain.ScanResult, error) {
	type outcome struct {
		result *domain.ScanResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := scanner.Scan(ctx, req, opts...)
		done <- outcome{result, err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case out := <-done:
			if lastCount > 0 {
				cmd.PrintErrln()
			}
			return out.result, out.err
		case <-ticker.C:
			status := scanner.Status()
			if status.Running && status.PagesReceived > lastCount {
				cmd.PrintErrf("\rScanning... %d pages, %d technologies", status.PagesReceived, status.Technologies)
				lastCount = status.PagesReceived
			}
		}
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
