package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// record is the exported shape of one technology.
type record struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	PagesDetected int      `json:"pagesDetected"`
	Confidence    string   `json:"confidence"`
	Pages         []string `json:"pages"`
}

// JSON renders the snapshot as an indented array. An empty snapshot is "[]".
func JSON(snapshot domain.ViewSnapshot) (string, error) {
	records := make([]record, 0, len(snapshot.Items))
	for i := range snapshot.Items {
		t := &snapshot.Items[i]
		pages := make([]string, len(t.Pages))
		copy(pages, t.Pages)
		records = append(records, record{
			Name:          t.Name,
			Category:      t.Category,
			PagesDetected: len(t.Pages),
			Confidence:    percent(t),
			Pages:         pages,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
