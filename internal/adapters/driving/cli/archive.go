package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var archiveJSON bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage archived crawls",
	Long: `Crawled pages are archived so a crawl can be re-analysed without
crawling again. Replay a session with 'stackprobe scan --archive ID'.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived crawls",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived crawl",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveDelete,
}

func init() {
	archiveListCmd.Flags().BoolVar(&archiveJSON, "json", false, "output as JSON")
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	rootCmd.AddCommand(archiveCmd)
}

type archiveEntry struct {
	ID        string   `json:"id"`
	Source    string   `json:"source"`
	Targets   []string `json:"targets,omitempty"`
	PageCount int      `json:"pageCount"`
	CreatedAt string   `json:"createdAt"`
}

func runArchiveList(cmd *cobra.Command, _ []string) error {
	if archiveService == nil || !archiveService.Available() {
		return errors.New("archive not configured")
	}

	sessions, err := archiveService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list archive: %w", err)
	}

	if archiveJSON {
		entries := make([]archiveEntry, len(sessions))
		for i, s := range sessions {
			entries[i] = archiveEntry{
				ID:        s.ID,
				Source:    s.Source,
				Targets:   s.Targets,
				PageCount: s.PageCount,
				CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			}
		}
		return printJSON(cmd, entries)
	}

	if len(sessions) == 0 {
		cmd.Println("No archived crawls.")
		return nil
	}

	for _, s := range sessions {
		label := s.Source
		if len(s.Targets) > 0 {
			label = strings.Join(s.Targets, ", ")
		}
		cmd.Printf("%s  %5d pages  %-14s %s\n", s.ID, s.PageCount, humanize.Time(s.CreatedAt), label)
	}
	return nil
}

func runArchiveDelete(cmd *cobra.Command, args []string) error {
	if archiveService == nil || !archiveService.Available() {
		return errors.New("archive not configured")
	}

	if err := archiveService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete %s: %w", args[0], err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
