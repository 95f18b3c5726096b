package routes

import (
	"testing"
	"time"

	"rental-marketplace-server/models"

	"gorm.io/gorm"
)

func testProperty(id uint, city string, price uint, opts func(*models.Property)) models.Property {
	p := models.Property{
		Model:        gorm.Model{ID: id, CreatedAt: time.Date(2024, 1, int(id), 0, 0, 0, 0, time.UTC)},
		Title:        "Listing",
		City:         city,
		Price:        price,
		PropertyType: "apartment",
		Surface:      60,
		Bedrooms:     2,
	}
	if opts != nil {
		opts(&p)
	}
	return p
}

func TestFilterCityIsCaseInsensitiveSubstring(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 45000, nil),
		testProperty(2, "Oran", 120000, nil),
	}

	results := FilterProperties(properties, SearchCriteria{City: "alg"})
	if len(results) != 1 || results[0].ID != 1 {
		t.Fatalf("expected only Algiers listing, got %d results", len(results))
	}
}

func TestFilterMinPrice(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 45000, nil),
		testProperty(2, "Oran", 120000, nil),
	}

	results := FilterProperties(properties, SearchCriteria{MinPrice: 50000})
	if len(results) != 1 || results[0].ID != 2 {
		t.Fatalf("expected only the 120000 listing, got %d results", len(results))
	}
}

func TestFilterMinPriceWithPriceDescSort(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 60000, nil),
		testProperty(2, "Oran", 120000, nil),
	}

	results := FilterProperties(properties, SearchCriteria{MinPrice: 50000})
	SortProperties(results, SortPriceDesc)

	if len(results) != 2 {
		t.Fatalf("expected both listings, got %d", len(results))
	}
	if results[0].Price != 120000 || results[1].Price != 60000 {
		t.Fatalf("expected descending price order, got %d then %d", results[0].Price, results[1].Price)
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 45000, func(p *models.Property) {
			p.PropertyType = "studio"
			p.Surface = 32
		}),
		testProperty(2, "Algiers", 70000, func(p *models.Property) {
			p.Bedrooms = 3
			p.Surface = 95
		}),
		testProperty(3, "Constantine", 70000, func(p *models.Property) {
			p.Bedrooms = 3
			p.Surface = 95
		}),
	}

	criteria := SearchCriteria{
		City:        "algiers",
		MinPrice:    50000,
		MaxPrice:    80000,
		MinSurface:  80,
		MinBedrooms: 3,
	}

	results := FilterProperties(properties, criteria)
	if len(results) != 1 || results[0].ID != 2 {
		t.Fatalf("expected exactly listing 2, got %d results", len(results))
	}

	// Every result satisfies every predicate; nothing outside does.
	for _, p := range properties {
		matched := false
		for _, r := range results {
			if r.ID == p.ID {
				matched = true
			}
		}
		satisfies := p.City == "Algiers" && p.Price >= 50000 && p.Price <= 80000 &&
			p.Surface >= 80 && p.Bedrooms >= 3
		if matched != satisfies {
			t.Fatalf("listing %d: matched=%v but satisfies=%v", p.ID, matched, satisfies)
		}
	}
}

func TestFilterAmenitiesRequireAll(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 45000, func(p *models.Property) {
			p.Amenities = `["wifi","parking","elevator"]`
		}),
		testProperty(2, "Algiers", 50000, func(p *models.Property) {
			p.Amenities = `["wifi"]`
		}),
		testProperty(3, "Algiers", 55000, nil), // no amenities at all
	}

	results := FilterProperties(properties, SearchCriteria{Amenities: []string{"wifi", "parking"}})
	if len(results) != 1 || results[0].ID != 1 {
		t.Fatalf("expected only the fully equipped listing, got %d results", len(results))
	}
}

func TestFilterEmptyCollectionAndUnmatchedFilter(t *testing.T) {
	if results := FilterProperties(nil, SearchCriteria{City: "alg"}); len(results) != 0 {
		t.Fatalf("expected empty result for empty collection, got %d", len(results))
	}

	properties := []models.Property{testProperty(1, "Algiers", 45000, nil)}
	results := FilterProperties(properties, SearchCriteria{City: "nowhere"})
	if results == nil || len(results) != 0 {
		t.Fatalf("unmatched filter must yield an empty, non-nil slice")
	}
}

func TestSortPriceAscThenDescAreReversed(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 90000, nil),
		testProperty(2, "Oran", 30000, nil),
		testProperty(3, "Annaba", 60000, nil),
	}

	asc := FilterProperties(properties, SearchCriteria{})
	SortProperties(asc, SortPriceAsc)

	desc := FilterProperties(properties, SearchCriteria{})
	SortProperties(desc, SortPriceDesc)

	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("ascending and descending orders are not exact reverses at index %d", i)
		}
	}
}

func TestSortIsStable(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 50000, nil),
		testProperty(2, "Oran", 50000, nil),
		testProperty(3, "Annaba", 50000, nil),
	}

	SortProperties(properties, SortPriceAsc)

	for i, want := range []uint{1, 2, 3} {
		if properties[i].ID != want {
			t.Fatalf("stable sort must keep relative order on ties, got %d at index %d", properties[i].ID, i)
		}
	}
}

func TestSortNewestFirst(t *testing.T) {
	properties := []models.Property{
		testProperty(1, "Algiers", 50000, nil),
		testProperty(3, "Annaba", 70000, nil),
		testProperty(2, "Oran", 60000, nil),
	}

	SortProperties(properties, SortNewest)

	for i, want := range []uint{3, 2, 1} {
		if properties[i].ID != want {
			t.Fatalf("expected newest-first order, got %d at index %d", properties[i].ID, i)
		}
	}
}
