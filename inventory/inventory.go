// Package inventory derives grouped views from the flat asset
// collection. All functions are pure: they never mutate their input
// and identical input yields identical output.
package inventory

import (
	"assetledger/models"
)

// CategoryGroup holds the assets of one category. Categories keep the
// insertion order of their first occurrence in the source list, and
// assets keep source order within a category.
type CategoryGroup struct {
	Category string         `json:"category"`
	Assets   []models.Asset `json:"assets"`
}

// GroupedAsset collapses identically-named assets within a category
// into one row. The first occurrence supplies the representative
// fields. Available is always Quantity minus Dispatched.
type GroupedAsset struct {
	models.Asset
	Quantity   int `json:"quantity"`
	Dispatched int `json:"dispatched"`
	Available  int `json:"available"`
}

// GroupedCategory is one category of the rolled-up inventory view.
type GroupedCategory struct {
	Category string         `json:"category"`
	Items    []GroupedAsset `json:"items"`
}

// FilterActive drops soft-deleted assets. Tombstoned rows stay in the
// collection for historical requests and movements but never appear
// in inventory views.
func FilterActive(assets []models.Asset) []models.Asset {
	active := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Status == models.AssetDeleted {
			continue
		}
		active = append(active, a)
	}
	return active
}

// GroupByCategory partitions assets by category. An empty input yields
// an empty (non-nil) result.
func GroupByCategory(assets []models.Asset) []CategoryGroup {
	groups := []CategoryGroup{}
	index := map[string]int{}

	for _, a := range assets {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, CategoryGroup{Category: a.Category})
		}
		groups[i].Assets = append(groups[i].Assets, a)
	}
	return groups
}

// GroupByNameWithCounts collapses items sharing the same asset name
// into one GroupedAsset per category. Names are compared exactly.
func GroupByNameWithCounts(groups []CategoryGroup) []GroupedCategory {
	result := []GroupedCategory{}

	for _, g := range groups {
		rolled := []GroupedAsset{}
		index := map[string]int{}

		for _, a := range g.Assets {
			i, ok := index[a.Name]
			if !ok {
				i = len(rolled)
				index[a.Name] = i
				rolled = append(rolled, GroupedAsset{Asset: a})
			}
			rolled[i].Quantity++
			if a.Status == models.AssetInUse {
				rolled[i].Dispatched++
			}
			rolled[i].Available = rolled[i].Quantity - rolled[i].Dispatched
		}

		result = append(result, GroupedCategory{Category: g.Category, Items: rolled})
	}
	return result
}

// GroupInventory is the composed view used by the inventory endpoint:
// active assets partitioned by category, then rolled up by name.
func GroupInventory(assets []models.Asset) []GroupedCategory {
	return GroupByNameWithCounts(GroupByCategory(FilterActive(assets)))
}

// CountByStatus tallies active assets per status for the overview
// dashboard.
func CountByStatus(assets []models.Asset) map[string]int {
	counts := map[string]int{}
	for _, a := range FilterActive(assets) {
		counts[a.Status]++
	}
	return counts
}
