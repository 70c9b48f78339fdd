package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stackprobe/internal/catalog"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

func exampleState(t *testing.T) *domain.AggregationState {
	t.Helper()
	state := domain.NewAggregationState()
	for _, p := range examplePages() {
		state = Ingest(state, p, catalog.All())
	}
	return state
}

// stateOf builds a state directly: each entry is name, category, page count.
func stateOf(validPages int, entries ...entry) *domain.AggregationState {
	state := domain.NewAggregationState()
	state.ValidPages = validPages
	for _, e := range entries {
		tech := state.Add(e.name, e.category)
		for i := 0; i < e.pages; i++ {
			tech.AddPage(string(rune('a' + i)))
		}
	}
	recomputeConfidence(state)
	return state
}

type entry = struct {
	name, category string
	pages          int
}

func names(snap domain.ViewSnapshot) []string {
	out := make([]string, len(snap.Items))
	for i, t := range snap.Items {
		out[i] = t.Name
	}
	return out
}

func TestProject_ExampleByConfidenceDesc(t *testing.T) {
	snap := Project(exampleState(t), domain.ViewParams{
		Filter: domain.FilterAll, SortKey: domain.SortByConfidence, Direction: domain.Descending,
	})

	assert.Equal(t, []string{"WordPress", "Next.js"}, names(snap))
	assert.Equal(t, domain.SortByConfidence, snap.SortKey)
	assert.Equal(t, domain.Descending, snap.Direction)
}

func TestProject_Filter(t *testing.T) {
	state := exampleState(t)

	snap := Project(state, domain.ViewParams{Filter: "CMS"})
	assert.Equal(t, []string{"WordPress"}, names(snap))

	snap = Project(state, domain.ViewParams{Filter: "Payment"})
	assert.Empty(t, snap.Items)
}

func TestProject_AllReturnsEveryTechnology(t *testing.T) {
	state := stateOf(4,
		entry{"Stripe", "Payment", 1},
		entry{"WordPress", "CMS", 4},
		entry{"Hotjar", "Analytics", 2},
	)

	for _, key := range domain.SortKeys() {
		for _, dir := range []domain.SortDirection{domain.Ascending, domain.Descending} {
			snap := Project(state, domain.ViewParams{Filter: domain.FilterAll, SortKey: key, Direction: dir})
			assert.ElementsMatch(t, []string{"Stripe", "WordPress", "Hotjar"}, names(snap), "%s %s", key, dir)
		}
	}
}

func TestProject_SortKeys(t *testing.T) {
	state := stateOf(4,
		entry{"stripe", "Payment", 1},
		entry{"WordPress", "CMS", 4},
		entry{"Hotjar", "Analytics", 2},
	)

	tests := []struct {
		key  domain.SortKey
		dir  domain.SortDirection
		want []string
	}{
		{domain.SortByName, domain.Ascending, []string{"Hotjar", "stripe", "WordPress"}},
		{domain.SortByName, domain.Descending, []string{"WordPress", "stripe", "Hotjar"}},
		{domain.SortByCategory, domain.Ascending, []string{"Hotjar", "WordPress", "stripe"}},
		{domain.SortByPages, domain.Descending, []string{"WordPress", "Hotjar", "stripe"}},
		{domain.SortByPages, domain.Ascending, []string{"stripe", "Hotjar", "WordPress"}},
		{domain.SortByConfidence, domain.Descending, []string{"WordPress", "Hotjar", "stripe"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key)+" "+string(tt.dir), func(t *testing.T) {
			snap := Project(state, domain.ViewParams{Filter: domain.FilterAll, SortKey: tt.key, Direction: tt.dir})
			assert.Equal(t, tt.want, names(snap))
		})
	}
}

func TestProject_StableForTies(t *testing.T) {
	state := stateOf(2,
		entry{"Zeta", "UI", 1},
		entry{"Alpha", "UI", 2},
		entry{"Mid", "UI", 1},
		entry{"Beta", "UI", 1},
	)

	desc := Project(state, domain.ViewParams{SortKey: domain.SortByPages, Direction: domain.Descending})
	assert.Equal(t, []string{"Alpha", "Zeta", "Mid", "Beta"}, names(desc))

	asc := Project(state, domain.ViewParams{SortKey: domain.SortByPages, Direction: domain.Ascending})
	assert.Equal(t, []string{"Zeta", "Mid", "Beta", "Alpha"}, names(asc))

	byCategory := Project(state, domain.ViewParams{SortKey: domain.SortByCategory, Direction: domain.Descending})
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid", "Beta"}, names(byCategory))
}

func TestProject_DefaultsAndPurity(t *testing.T) {
	state := exampleState(t)

	first := Project(state, domain.ViewParams{})
	second := Project(state, domain.ViewParams{})

	assert.Equal(t, first, second)
	assert.Equal(t, domain.FilterAll, first.Filter)
	assert.Equal(t, domain.SortByPages, first.SortKey)
	assert.Equal(t, []string{"WordPress", "Next.js"}, names(first))
	assert.Equal(t, 2, state.Len())
}

func TestProject_SnapshotDoesNotAlias(t *testing.T) {
	state := exampleState(t)
	snap := Project(state, domain.DefaultViewParams())

	snap.Items[0].Pages[0] = "changed"

	wp, _ := state.Lookup("WordPress")
	assert.Equal(t, "https://a.test/", wp.Pages[0])
}

func TestProject_NilState(t *testing.T) {
	snap := Project(nil, domain.DefaultViewParams())

	assert.Empty(t, snap.Items)
}

func TestAvailableCategories(t *testing.T) {
	t.Run("zero pages", func(t *testing.T) {
		assert.Equal(t, []string{"all"}, AvailableCategories(domain.NewAggregationState()))
	})

	t.Run("all first then sorted", func(t *testing.T) {
		state := stateOf(1,
			entry{"WordPress", "CMS", 1},
			entry{"Next.js", "Framework", 1},
			entry{"Hotjar", "Analytics", 1},
			entry{"Mixpanel", "Analytics", 1},
		)

		assert.Equal(t, []string{"all", "Analytics", "CMS", "Framework"}, AvailableCategories(state))
	})
}

func TestCategoryCounts(t *testing.T) {
	state := stateOf(1,
		entry{"Hotjar", "Analytics", 1},
		entry{"WordPress", "CMS", 1},
		entry{"Mixpanel", "Analytics", 1},
	)

	counts := CategoryCounts(state)

	require.Len(t, counts, 3)
	assert.Equal(t, domain.CategoryCount{Category: "all", Count: 3}, counts[0])
	assert.Equal(t, domain.CategoryCount{Category: "Analytics", Count: 2}, counts[1])
	assert.Equal(t, domain.CategoryCount{Category: "CMS", Count: 1}, counts[2])
}
