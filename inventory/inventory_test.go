package inventory

import (
	"reflect"
	"testing"

	"assetledger/models"
)

func asset(name, category, status string) models.Asset {
	return models.Asset{Name: name, Category: category, Status: status}
}

func TestGroupByCategoryEmptyInput(t *testing.T) {
	groups := GroupByCategory(nil)
	if groups == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupByCategoryKeepsFirstOccurrenceOrder(t *testing.T) {
	assets := []models.Asset{
		asset("Laptop", "Electronics", models.AssetAvailable),
		asset("Desk", "Furniture", models.AssetAvailable),
		asset("Monitor", "Electronics", models.AssetAvailable),
		asset("Chair", "Furniture", models.AssetInUse),
	}

	groups := GroupByCategory(assets)
	if len(groups) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(groups))
	}
	if groups[0].Category != "Electronics" || groups[1].Category != "Furniture" {
		t.Fatalf("category order not preserved: %s, %s", groups[0].Category, groups[1].Category)
	}
	if groups[0].Assets[0].Name != "Laptop" || groups[0].Assets[1].Name != "Monitor" {
		t.Fatal("asset order within category not preserved")
	}
}

func TestGroupByNameWithCountsLaptopScenario(t *testing.T) {
	assets := []models.Asset{
		asset("Laptop", "Electronics", models.AssetAvailable),
		asset("Laptop", "Electronics", models.AssetInUse),
	}

	result := GroupByNameWithCounts(GroupByCategory(assets))
	if len(result) != 1 || len(result[0].Items) != 1 {
		t.Fatalf("expected one group with one item, got %+v", result)
	}

	g := result[0].Items[0]
	if g.Quantity != 2 || g.Dispatched != 1 || g.Available != 1 {
		t.Fatalf("expected quantity=2 dispatched=1 available=1, got %d/%d/%d",
			g.Quantity, g.Dispatched, g.Available)
	}
}

func TestGroupingPreservesTotalCount(t *testing.T) {
	assets := []models.Asset{
		asset("Laptop", "Electronics", models.AssetAvailable),
		asset("Laptop", "Electronics", models.AssetInUse),
		asset("Monitor", "Electronics", models.AssetAvailable),
		asset("Desk", "Furniture", models.AssetAvailable),
		asset("Desk", "Furniture", models.AssetAvailable),
		asset("Chair", "Furniture", models.AssetInUse),
	}

	result := GroupByNameWithCounts(GroupByCategory(assets))

	total := 0
	for _, category := range result {
		for _, item := range category.Items {
			total += item.Quantity
			if item.Available+item.Dispatched != item.Quantity {
				t.Errorf("%s: available(%d) + dispatched(%d) != quantity(%d)",
					item.Name, item.Available, item.Dispatched, item.Quantity)
			}
		}
	}
	if total != len(assets) {
		t.Fatalf("quantity sum %d does not equal input length %d", total, len(assets))
	}
}

func TestGroupingUsesFirstOccurrenceAsRepresentative(t *testing.T) {
	assets := []models.Asset{
		{Name: "Laptop", Category: "Electronics", Code: "LP-001", Status: models.AssetAvailable},
		{Name: "Laptop", Category: "Electronics", Code: "LP-002", Status: models.AssetInUse},
	}

	result := GroupByNameWithCounts(GroupByCategory(assets))
	if got := result[0].Items[0].Code; got != "LP-001" {
		t.Fatalf("representative should come from first occurrence, got code %s", got)
	}
}

func TestGroupingIsDeterministic(t *testing.T) {
	assets := []models.Asset{
		asset("Laptop", "Electronics", models.AssetAvailable),
		asset("Desk", "Furniture", models.AssetInUse),
		asset("Laptop", "Electronics", models.AssetInUse),
	}

	first := GroupByNameWithCounts(GroupByCategory(assets))
	second := GroupByNameWithCounts(GroupByCategory(assets))
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical input produced different output")
	}
}

func TestGroupingDoesNotMutateInput(t *testing.T) {
	assets := []models.Asset{
		asset("Laptop", "Electronics", models.AssetAvailable),
		asset("Laptop", "Electronics", models.AssetInUse),
	}
	snapshot := make([]models.Asset, len(assets))
	copy(snapshot, assets)

	GroupInventory(assets)

	if !reflect.DeepEqual(assets, snapshot) {
		t.Fatal("grouping mutated its input")
	}
}

func TestSoftDeletedAssetsExcluded(t *testing.T) {
	assets := []models.Asset{
		asset("Laptop", "Electronics", models.AssetAvailable),
		asset("Laptop", "Electronics", models.AssetDeleted),
		asset("Printer", "Electronics", models.AssetDeleted),
	}

	result := GroupInventory(assets)
	if len(result) != 1 {
		t.Fatalf("expected 1 category, got %d", len(result))
	}
	items := result[0].Items
	if len(items) != 1 || items[0].Name != "Laptop" || items[0].Quantity != 1 {
		t.Fatalf("deleted assets leaked into grouped view: %+v", items)
	}
}

func TestCountByStatus(t *testing.T) {
	assets := []models.Asset{
		asset("Laptop", "Electronics", models.AssetAvailable),
		asset("Laptop", "Electronics", models.AssetInUse),
		asset("Desk", "Furniture", models.AssetAvailable),
		asset("Monitor", "Electronics", models.AssetAssigned),
		asset("Old PC", "Electronics", models.AssetDeleted),
	}

	counts := CountByStatus(assets)
	if counts[models.AssetAvailable] != 2 || counts[models.AssetInUse] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if counts[models.AssetAssigned] != 1 {
		t.Fatalf("assigned count = %d, want 1", counts[models.AssetAssigned])
	}
	if _, ok := counts[models.AssetDeleted]; ok {
		t.Fatal("deleted assets should not be counted")
	}
}
