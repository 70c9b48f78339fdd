package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/export"
)

// formatTable is the default human readable output.
const formatTable = "table"

// viewFlags are the filter, sort and output flags shared by scanning commands.
type viewFlags struct {
	filter string
	sort   string
	asc    bool
	desc   bool
	format string
	output string
	json   bool
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&v.filter, "filter", "", "only show this category")
	cmd.Flags().StringVar(&v.sort, "sort", "", "sort by name, category, pages or confidence")
	cmd.Flags().BoolVar(&v.asc, "asc", false, "sort ascending")
	cmd.Flags().BoolVar(&v.desc, "desc", false, "sort descending")
	cmd.Flags().StringVarP(&v.format, "format", "f", formatTable, "output format: table, json, csv or markdown")
	cmd.Flags().StringVarP(&v.output, "output", "o", "", "write the report to a file or directory")
	cmd.Flags().BoolVar(&v.json, "json", false, "shorthand for --format json")
	cmd.MarkFlagsMutuallyExclusive("asc", "desc")
}

// params builds view parameters from the flags over the configured defaults.
func (v *viewFlags) params() (domain.ViewParams, error) {
	p := domain.DefaultViewParams()
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			p = s.View.Params()
		}
	}

	if v.filter != "" {
		p.Filter = v.filter
	}
	if v.sort != "" {
		key, err := domain.ParseSortKey(v.sort)
		if err != nil {
			return p, err
		}
		p.SortKey = key
	}
	switch {
	case v.asc:
		p.Direction = domain.Ascending
	case v.desc:
		p.Direction = domain.Descending
	}
	return p.Normalise(), nil
}

// exportFormat returns the selected format, or "" for the table.
func (v *viewFlags) exportFormat() (domain.ExportFormat, error) {
	if v.json {
		return domain.FormatJSON, nil
	}
	if v.format == "" || v.format == formatTable {
		return "", nil
	}
	return domain.ParseExportFormat(v.format)
}

// writeReport prints or saves the current session.
func writeReport(cmd *cobra.Command, v *viewFlags) error {
	if detectorService == nil {
		return errors.New("detector service not configured")
	}

	params, err := v.params()
	if err != nil {
		return err
	}
	format, err := v.exportFormat()
	if err != nil {
		return err
	}

	snapshot := detectorService.Snapshot(params)
	if len(snapshot.Items) == 0 {
		cmd.PrintErrln("No technologies detected.")
	}

	if v.output != "" {
		if format == "" {
			format = domain.FormatJSON
		}
		path, err := export.WriteFile(v.output, snapshot, format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		cmd.PrintErrf("Exported %s to %s\n",
			english.Plural(len(snapshot.Items), "technology", "technologies"), path)
		return nil
	}

	if format == "" {
		printSummary(cmd, detectorService.Summary())
		if len(snapshot.Items) > 0 {
			cmd.Println(technologyTable(snapshot))
		}
		return nil
	}

	text, err := detectorService.Export(params, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Println(text)
	return nil
}

func printSummary(cmd *cobra.Command, s domain.Summary) {
	cmd.Printf("Technologies: %d  Categories: %d  Pages: %s  Avg/page: %.1f\n",
		s.Technologies, s.Categories, humanize.Comma(int64(s.PagesScanned)), s.AvgPerPage)
}

func technologyTable(snapshot domain.ViewSnapshot) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Technology", "Category", "Pages", "Confidence")
	for i := range snapshot.Items {
		item := &snapshot.Items[i]
		t.Row(item.Name, item.Category, strconv.Itoa(item.PageCount()), fmt.Sprintf("%d%%", item.Percent()))
	}
	return t.String()
}
