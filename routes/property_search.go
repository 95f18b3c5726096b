package routes

import (
	"sort"
	"strings"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// SearchCriteria is the full filter set. Filters are conjunctive and a
// zero value imposes no constraint.
type SearchCriteria struct {
	City         string   `json:"city"`
	PropertyType string   `json:"type"`
	MinPrice     uint     `json:"minPrice"`
	MaxPrice     uint     `json:"maxPrice"`
	MinSurface   uint     `json:"minSurface"`
	MinBedrooms  int      `json:"minBedrooms"`
	Amenities    []string `json:"amenities"`
	SortBy       string   `json:"sortBy"`
}

// SearchProperties loads the collection with its reviews and applies
// the filter set in memory. The engine is pure functions over the
// slice, so it can be tested without a database.
func SearchProperties(ctx iris.Context) {
	criteria := SearchCriteria{
		City:         strings.TrimSpace(ctx.URLParam("city")),
		PropertyType: strings.TrimSpace(ctx.URLParam("type")),
		MinPrice:     uint(ctx.URLParamIntDefault("minPrice", 0)),
		MaxPrice:     uint(ctx.URLParamIntDefault("maxPrice", 0)),
		MinSurface:   uint(ctx.URLParamIntDefault("minSurface", 0)),
		MinBedrooms:  ctx.URLParamIntDefault("minBedrooms", 0),
		SortBy:       strings.ToLower(strings.TrimSpace(ctx.URLParam("sortBy"))),
	}
	if amenities := strings.TrimSpace(ctx.URLParam("amenities")); amenities != "" {
		criteria.Amenities = strings.Split(amenities, ",")
	}

	var properties []models.Property
	if err := storage.DB.Preload("Reviews").
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	results := FilterProperties(properties, criteria)
	SortProperties(results, criteria.SortBy)

	ctx.JSON(results)
}

// FilterProperties returns the subsequence matching every supplied
// predicate. An empty collection or an unmatched filter yields an empty
// slice, not an error.
func FilterProperties(properties []models.Property, criteria SearchCriteria) []models.Property {
	results := make([]models.Property, 0, len(properties))
	for _, property := range properties {
		if matchesCriteria(&property, criteria) {
			results = append(results, property)
		}
	}
	return results
}

func matchesCriteria(p *models.Property, criteria SearchCriteria) bool {
	if criteria.City != "" &&
		!strings.Contains(strings.ToLower(p.City), strings.ToLower(criteria.City)) {
		return false
	}
	if criteria.PropertyType != "" && p.PropertyType != criteria.PropertyType {
		return false
	}
	if criteria.MinPrice > 0 && p.Price < criteria.MinPrice {
		return false
	}
	if criteria.MaxPrice > 0 && p.Price > criteria.MaxPrice {
		return false
	}
	if criteria.MinSurface > 0 && p.Surface < criteria.MinSurface {
		return false
	}
	if criteria.MinBedrooms > 0 && p.Bedrooms < criteria.MinBedrooms {
		return false
	}
	if len(criteria.Amenities) > 0 {
		propertyAmenities := p.AmenityList()
		for _, amenity := range criteria.Amenities {
			if !slices.Contains(propertyAmenities, amenity) {
				return false
			}
		}
	}
	return true
}

// SortProperties orders the slice in place. The sort is stable so
// equal-keyed listings keep their relative order.
func SortProperties(properties []models.Property, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].Price < properties[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].Price > properties[j].Price
		})
	case SortNewest:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].CreatedAt.After(properties[j].CreatedAt)
		})
	}
}
