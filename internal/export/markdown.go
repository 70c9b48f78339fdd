package export

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

const markdownHeader = "# Tech Stack Report\n\n" +
	"| Technology | Category | Pages | Confidence |\n" +
	"|---|---|---|---|\n"

// Markdown renders a titled table with page counts and percentages.
func Markdown(snapshot domain.ViewSnapshot) string {
	rows := make([]string, 0, len(snapshot.Items))
	for i := range snapshot.Items {
		t := &snapshot.Items[i]
		rows = append(rows, fmt.Sprintf("| %s | %s | %d | %s |",
			cell(t.Name), cell(t.Category), len(t.Pages), percent(t)))
	}
	return markdownHeader + strings.Join(rows, "\n")
}

// cell escapes pipes so a value cannot split a table column.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
