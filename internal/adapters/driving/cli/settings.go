package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the crawl API, default report ordering, the SQS
queue and the page archive.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by its config key.

Keys:
  crawl.api_url          crawl API base URL
  crawl.api_key          crawl API key
  crawl.limit            pages per site (0 uses the default)
  crawl.return_format    raw, markdown or text
  crawl.request          http, chrome or smart
  crawl.full_resources   true or false
  view.sort              name, category, pages or confidence
  view.direction         asc or desc
  sqs.queue_url          default queue for 'scan --sqs-queue'
  sqs.region             AWS region of the queue
  sqs.max_empty_polls    empty polls before a queue scan ends
  archive.enabled        save crawled pages (true or false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "api-key",
	Short: "Store the crawl API key",
	Long:  `Prompt for the crawl API key without echoing it and store it in the config file.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsAPIKey,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the crawl API step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Crawl]")
	cmd.Printf("  API URL: %s\n", settings.Crawl.APIURL)
	if settings.Crawl.HasAPIKey() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Crawl.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Limit: %d\n", settings.Crawl.Limit)
	cmd.Printf("  Return format: %s\n", settings.Crawl.ReturnFormat)
	cmd.Printf("  Request: %s\n", settings.Crawl.Request)
	cmd.Printf("  Full resources: %s\n", yesNo(settings.Crawl.FullResources))
	cmd.Println()

	cmd.Println("[View]")
	cmd.Printf("  Sort: %s %s\n", settings.View.SortKey, settings.View.Direction)
	cmd.Println()

	cmd.Println("[SQS]")
	if settings.Queue.URL != "" {
		cmd.Printf("  Queue URL: %s\n", settings.Queue.URL)
	} else {
		cmd.Printf("  Queue URL: (not set)\n")
	}
	if settings.Queue.Region != "" {
		cmd.Printf("  Region: %s\n", settings.Queue.Region)
	}
	cmd.Printf("  Max empty polls: %d\n", settings.Queue.MaxEmptyPolls)
	cmd.Println()

	cmd.Println("[Archive]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.Archive.Enabled))
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if strings.HasSuffix(key, "api_key") {
		value = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Crawl API key: ")
	key := readPassword(cmd.InOrStdin())
	cmd.Println()

	if err := settingsService.SetAPIKey(key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	cmd.Printf("API key saved (%s)\n", maskAPIKey(key))
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("stackprobe Settings Wizard")
	cmd.Println("==========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: request mode
	cmd.Println("Step 1: Select Request Mode")
	cmd.Println("---------------------------")
	modes := []domain.RequestMode{domain.RequestSmart, domain.RequestHTTP, domain.RequestChrome}
	for i, m := range modes {
		cmd.Printf("  %d. %s\n", i+1, m)
	}
	cmd.Print("\nEnter choice [1]: ")
	settings.Crawl.Request = modes[parseChoice(readLine(reader), len(modes), 1)-1]
	cmd.Println()

	// Step 2: return format
	cmd.Println("Step 2: Select Return Format")
	cmd.Println("----------------------------")
	formats := []domain.ReturnFormat{domain.ReturnRaw, domain.ReturnMarkdown, domain.ReturnText}
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f)
	}
	cmd.Print("\nEnter choice [1]: ")
	settings.Crawl.ReturnFormat = formats[parseChoice(readLine(reader), len(formats), 1)-1]
	cmd.Println()

	// Step 3: page limit
	cmd.Printf("Step 3: Pages per site [%d]: ", settings.Crawl.Limit)
	if n := parseChoice(readLine(reader), 1<<20, 0); n > 0 {
		settings.Crawl.Limit = n
	}
	cmd.Println()

	// Step 4: API key, kept when left blank
	cmd.Print("Step 4: Crawl API key (leave blank to keep current): ")
	settings.Crawl.APIKey = readLine(reader)
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Printf("Saved to %s\n", settingsService.Path())
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n') //nolint:errcheck // EOF yields the partial line
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is the terminal, otherwise a line.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(bufio.NewReader(in))
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
