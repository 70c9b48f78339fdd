package export

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

const csvHeader = "Name,Category,Pages Detected,Confidence"

// CSV renders one row per technology under a fixed header.
// Name and category are always quoted; rows are joined by "\n" with no
// trailing newline, so an empty snapshot yields the header alone.
func CSV(snapshot domain.ViewSnapshot) string {
	lines := make([]string, 0, len(snapshot.Items)+1)
	lines = append(lines, csvHeader)
	for i := range snapshot.Items {
		t := &snapshot.Items[i]
		lines = append(lines, quote(t.Name)+","+quote(t.Category)+","+
			strconv.Itoa(len(t.Pages))+","+percent(t))
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
