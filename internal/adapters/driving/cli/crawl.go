package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
)

var (
	crawlLimit         int
	crawlReturnFormat  string
	crawlRequest       string
	crawlFullResources bool
	crawlArchive       bool
	crawlView          viewFlags
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url[,url...]>...",
	Short: "Crawl websites and detect their technologies",
	Long: `Crawls one or more websites through the crawl API and reports the
technologies found on their pages.

URLs may be given as separate arguments or comma separated. A missing
scheme defaults to https://. Crawled pages are archived so the crawl can be
replayed later with 'stackprobe scan --archive ID'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().IntVarP(&crawlLimit, "limit", "n", 0, "maximum pages per site (0 uses the configured limit)")
	crawlCmd.Flags().StringVar(&crawlReturnFormat, "return-format", "", "page format requested from the API: raw, markdown or text")
	crawlCmd.Flags().StringVar(&crawlRequest, "request", "", "request mode: http, chrome or smart")
	crawlCmd.Flags().BoolVar(&crawlFullResources, "full-resources", false, "fetch linked scripts and stylesheets")
	crawlCmd.Flags().BoolVar(&crawlArchive, "archive", true, "save crawled pages to the archive")
	crawlView.register(crawlCmd)
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	targets := domain.ParseTargets(strings.Join(args, ","))

	crawl := domain.DefaultSettings().Crawl
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			crawl = s.Crawl
		}
	}
	opts := crawl.Options(targets)
	if crawlLimit > 0 {
		opts.Limit = crawlLimit
	}
	if crawlReturnFormat != "" {
		opts.ReturnFormat = domain.ReturnFormat(crawlReturnFormat)
	}
	if crawlRequest != "" {
		opts.Request = domain.RequestMode(crawlRequest)
	}
	if cmd.Flags().Changed("full-resources") {
		opts.FullResources = crawlFullResources
	}

	var scanOpts []driving.ScanOption
	if cmd.Flags().Changed("archive") {
		scanOpts = append(scanOpts, driving.WithArchive(crawlArchive))
	}

	req := domain.ScanRequest{Kind: domain.SourceCrawl, Crawl: opts}
	if err := runScan(cmd, req, scanOpts...); err != nil {
		return err
	}
	return writeReport(cmd, &crawlView)
}
