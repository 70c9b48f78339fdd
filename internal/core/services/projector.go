package services

import (
	"cmp"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// Project filters and sorts the session into a view snapshot.
// It reads the state without modifying it. Ties keep first-detection order
// in both directions.
func Project(state *domain.AggregationState, params domain.ViewParams) domain.ViewSnapshot {
	params = params.Normalise()

	var techs []domain.DetectedTechnology
	if state != nil {
		techs = state.Technologies()
	}

	items := make([]domain.DetectedTechnology, 0, len(techs))
	for _, t := range techs {
		if params.Filter == domain.FilterAll || t.Category == params.Filter {
			items = append(items, t)
		}
	}

	compare := comparator(params.SortKey)
	sort.SliceStable(items, func(i, j int) bool {
		c := compare(&items[i], &items[j])
		if params.Direction == domain.Descending {
			c = -c
		}
		return c < 0
	})

	return domain.ViewSnapshot{
		Items:     items,
		Filter:    params.Filter,
		SortKey:   params.SortKey,
		Direction: params.Direction,
	}
}

// AvailableCategories returns the filter values for the session:
// "all" followed by the detected categories in lexicographic order.
func AvailableCategories(state *domain.AggregationState) []string {
	counts := CategoryCounts(state)
	cats := make([]string, len(counts))
	for i, c := range counts {
		cats[i] = c.Category
	}
	return cats
}

// CategoryCounts pairs each filter value with the number of technologies it shows.
func CategoryCounts(state *domain.AggregationState) []domain.CategoryCount {
	total := 0
	perCategory := make(map[string]int)
	if state != nil {
		state.Each(func(t *domain.DetectedTechnology) {
			perCategory[t.Category]++
			total++
		})
	}

	names := make([]string, 0, len(perCategory))
	for c := range perCategory {
		names = append(names, c)
	}
	sort.Strings(names)

	out := make([]domain.CategoryCount, 0, len(names)+1)
	out = append(out, domain.CategoryCount{Category: domain.FilterAll, Count: total})
	for _, c := range names {
		out = append(out, domain.CategoryCount{Category: c, Count: perCategory[c]})
	}
	return out
}

type compareFunc func(a, b *domain.DetectedTechnology) int

func comparator(key domain.SortKey) compareFunc {
	switch key {
	case domain.SortByName:
		coll := collate.New(language.English)
		return func(a, b *domain.DetectedTechnology) int {
			return coll.CompareString(a.Name, b.Name)
		}
	case domain.SortByCategory:
		coll := collate.New(language.English)
		return func(a, b *domain.DetectedTechnology) int {
			return coll.CompareString(a.Category, b.Category)
		}
	case domain.SortByConfidence:
		return func(a, b *domain.DetectedTechnology) int {
			return cmp.Compare(a.Confidence, b.Confidence)
		}
	default:
		return func(a, b *domain.DetectedTechnology) int {
			return cmp.Compare(len(a.Pages), len(b.Pages))
		}
	}
}
