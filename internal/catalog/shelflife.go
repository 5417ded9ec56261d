package catalog

import "strings"

// ShelfLife holds rough storage durations in days. Zero means "not suited to
// that storage". Category and tips stay in French for the app's audience.
type ShelfLife struct {
	Category         string `json:"category_fr"`
	RefrigeratorDays int    `json:"refrigerator_days,omitempty"`
	FreezerDays      int    `json:"freezer_days,omitempty"`
	PantryDays       int    `json:"pantry_days,omitempty"`
	Tips             string `json:"tips_fr"`
}

// shelfLifeRule ties a product-name keyword to safe default durations. The
// first matching rule wins, so more specific keywords come first.
type shelfLifeRule struct {
	keyword   string
	shelfLife ShelfLife
}

var shelfLifeRules = []shelfLifeRule{
	{"milk", ShelfLife{Category: "Produits laitiers", RefrigeratorDays: 7, Tips: "Conserver au réfrigérateur après ouverture."}},
	{"yogurt", ShelfLife{Category: "Produits laitiers", RefrigeratorDays: 10, Tips: "Conserver au réfrigérateur."}},
	{"cheese", ShelfLife{Category: "Produits laitiers", RefrigeratorDays: 14, Tips: "Bien emballer pour éviter le dessèchement."}},
	{"meat", ShelfLife{Category: "Viandes", RefrigeratorDays: 2, FreezerDays: 90, Tips: "Réfrigérer rapidement et respecter la chaîne du froid."}},
	{"fish", ShelfLife{Category: "Poissons", RefrigeratorDays: 2, FreezerDays: 90, Tips: "À consommer rapidement après achat."}},
	{"bread", ShelfLife{Category: "Boulangerie", RefrigeratorDays: 5, FreezerDays: 30, PantryDays: 3, Tips: "Éviter le frigo (durcit). Congeler si besoin."}},
	{"egg", ShelfLife{Category: "Œufs", RefrigeratorDays: 21, PantryDays: 21, Tips: "Conserver au frais et vérifier la fraîcheur."}},
	{"pasta", ShelfLife{Category: "Épicerie", PantryDays: 365, Tips: "Stocker au sec, à l'abri de la chaleur."}},
	{"rice", ShelfLife{Category: "Épicerie", PantryDays: 365, Tips: "Stocker au sec, à l'abri de l'humidité."}},
}

// defaultShelfLife is the conservative fallback when nothing matches.
var defaultShelfLife = ShelfLife{
	Category:         "Général",
	RefrigeratorDays: 7,
	FreezerDays:      90,
	PantryDays:       180,
	Tips:             "Adapter selon l'emballage et respecter la chaîne du froid.",
}

// InferShelfLife guesses storage durations from the product name and brand.
// It always returns a usable answer; a nil product gets the fallback.
func InferShelfLife(p *Product) ShelfLife {
	if p == nil {
		return defaultShelfLife
	}
	blob := strings.ToLower(p.Name + " " + p.Brand)
	for _, rule := range shelfLifeRules {
		if strings.Contains(blob, rule.keyword) {
			return rule.shelfLife
		}
	}
	return defaultShelfLife
}
