package catalog

import "github.com/stwalsh4118/estate/api/internal/models"

// sampleCatalog returns seven items covering every field the engine reads.
func sampleCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "p1", Kind: models.KindProperty, Name: "Marina Heights", Location: "Dubai Marina", PropertyType: "apartment", ProjectStatus: "ready", PriceMin: 1500000, PriceMax: 1500000, ROI: 7.2, RentalYield: 6.4, Rating: 4.5, UnitsLeft: 12},
		{ID: "p2", Kind: models.KindProperty, Name: "Palm Villa", Location: "Palm Jumeirah", PropertyType: "villa", ProjectStatus: "off-plan", PriceMin: 8200000, PriceMax: 8200000, ROI: 5.1, RentalYield: 4.0, Rating: 4.9, UnitsLeft: 2},
		{ID: "p3", Kind: models.KindProperty, Name: "Creek Views", Location: "Dubai Creek", PropertyType: "apartment", ProjectStatus: "off-plan", PriceMin: 950000, PriceMax: 950000, ROI: 8.4, RentalYield: 7.1, Rating: 4.1, UnitsLeft: 40},
		{ID: "p4", Kind: models.KindProperty, Name: "Downtown Loft", Location: "Downtown", PropertyType: "apartment", ProjectStatus: "ready", PriceMin: 2100000, PriceMax: 2100000, ROI: 6.0, RentalYield: 5.5, Rating: 4.5, UnitsLeft: 5},
		{ID: "p5", Kind: models.KindProperty, Name: "Marina Studio", Location: "Dubai Marina", PropertyType: "studio", ProjectStatus: "ready", PriceMin: 650000, PriceMax: 650000, ROI: 9.3, RentalYield: 8.2, Rating: 3.8, UnitsLeft: 20},
		{ID: "p6", Kind: models.KindProperty, Name: "Hills Townhouse", Location: "Dubai Hills", PropertyType: "townhouse", ProjectStatus: "off-plan", PriceMin: 3400000, PriceMax: 3400000, ROI: 6.8, RentalYield: 5.0, Rating: 4.5, UnitsLeft: 8},
		{ID: "p7", Kind: models.KindProperty, Name: "Bay Residences", Location: "Business Bay", PropertyType: "apartment", ProjectStatus: "ready", PriceMin: 1200000, PriceMax: 1200000, ROI: 7.9, RentalYield: 6.9, Rating: 4.2, UnitsLeft: 15},
	}
}

func developerCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "d1", Kind: models.KindDeveloper, Name: "Emaar", Location: "Dubai", Specializations: []string{"luxury", "master communities"}, PriceMin: 1000000, PriceMax: 30000000, Rating: 4.8, DeliveryRate: 96, SuccessScore: 92},
		{ID: "d2", Kind: models.KindDeveloper, Name: "Damac", Location: "Dubai", Specializations: []string{"luxury", "branded residences"}, PriceMin: 800000, PriceMax: 25000000, Rating: 4.3, DeliveryRate: 88, SuccessScore: 85},
		{ID: "d3", Kind: models.KindDeveloper, Name: "Sobha", Location: "Abu Dhabi", Specializations: []string{"villas"}, PriceMin: 2000000, PriceMax: 12000000, Rating: 4.6, DeliveryRate: 94, SuccessScore: 90},
		{ID: "d4", Kind: models.KindDeveloper, Name: "Azizi", Location: "Dubai", Specializations: []string{"affordable", "Waterfront"}, PriceMin: 500000, PriceMax: 3000000, Rating: 4.0, DeliveryRate: 79, SuccessScore: 74},
	}
}

func ids(items []models.CatalogItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
