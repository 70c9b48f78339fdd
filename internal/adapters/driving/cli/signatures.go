package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stackprobe/internal/catalog"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

var (
	signaturesCategory string
	signaturesJSON     bool
	categoriesJSON     bool
)

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "List the technologies stackprobe can detect",
	Args:  cobra.NoArgs,
	RunE:  runSignatures,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List signature categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	signaturesCmd.Flags().StringVarP(&signaturesCategory, "category", "c", "", "only list this category")
	signaturesCmd.Flags().BoolVar(&signaturesJSON, "json", false, "output as JSON")
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(categoriesCmd)
}

type signatureEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func runSignatures(cmd *cobra.Command, _ []string) error {
	if detectorService == nil {
		return errors.New("detector service not configured")
	}

	sigs := detectorService.Signatures()
	if signaturesCategory != "" {
		sigs = catalog.InCategory(sigs, signaturesCategory)
		if len(sigs) == 0 {
			return fmt.Errorf("%w: unknown category %q", domain.ErrNotFound, signaturesCategory)
		}
	}

	if signaturesJSON {
		entries := make([]signatureEntry, len(sigs))
		for i, s := range sigs {
			entries[i] = signatureEntry{Name: s.Name, Category: s.Category}
		}
		return printJSON(cmd, entries)
	}

	for _, s := range sigs {
		cmd.Printf("  %-24s %s\n", s.Name, s.Category)
	}
	cmd.Printf("\n%d signatures\n", len(sigs))
	return nil
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if detectorService == nil {
		return errors.New("detector service not configured")
	}

	sigs := detectorService.Signatures()
	categories := catalog.Categories(sigs)
	counts := make([]domain.CategoryCount, len(categories))
	for i, c := range categories {
		counts[i] = domain.CategoryCount{Category: c, Count: len(catalog.InCategory(sigs, c))}
	}

	if categoriesJSON {
		return printJSON(cmd, counts)
	}

	for _, c := range counts {
		cmd.Printf("  %-20s %d\n", c.Category, c.Count)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
