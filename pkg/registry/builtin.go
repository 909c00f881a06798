// pkg/registry/builtin.go
package registry

// CatalogVersion is stamped on the built-in catalog.
const CatalogVersion = "1.0.0"

func simulated(id, name, simulatedAPI, description string, category Category, defaultInput string) Card {
	return Card{
		ID:           id,
		DisplayName:  name,
		Description:  description,
		Category:     category,
		TaskType:     TaskSimulateAPI,
		SimulatedAPI: simulatedAPI,
		InputType:    InputText,
		DefaultInput: defaultInput,
	}
}

// Builtin returns a fresh copy of the default API test lab catalog.
func Builtin() *Catalog {
	cards := []Card{
		{
			ID: "places_new", DisplayName: "Places API (New)", Description: "Query detailed place data (Grounding).",
			Category: CategoryMaps, TaskType: TaskMapsQuery, InputType: InputText,
			DefaultInput: "Best vegan restaurants in New York", Tags: []string{"grounding"},
		},
		simulated("solar", "Solar API", "", "Solar potential & savings estimates.", CategoryMaps, "Solar potential for 1600 Amphitheatre Pkwy"),
		simulated("airquality", "Air Quality API", "", "Current air quality index (AQI).", CategoryMaps, "Air quality in Tokyo"),
		simulated("pollen", "Pollen API", "", "Allergen forecasts & heatmaps.", CategoryMaps, "Pollen forecast for London"),
		simulated("routes", "Routes API", "", "Eco-friendly & advanced routing.", CategoryMaps, "Eco route from Berlin to Munich"),
		simulated("elevation", "Maps Elevation API", "", "Elevation data for coordinates.", CategoryMaps, "Elevation of Machu Picchu"),
		simulated("aerial", "Aerial View API", "", "Cinematic video of landmarks.", CategoryMaps, "Aerial view of Golden Gate Bridge"),
		simulated("address_val", "Address Validation API", "", "Validate & correct addresses.", CategoryMaps, "Validate: 1600 Amphitheatre Pkwy, CA"),
		simulated("geolocation", "Geolocation API", "", "Locate device via cell/wifi.", CategoryMaps, "Geolocate current IP context"),
		simulated("roads", "Roads API", "", "Snap to roads & speed limits.", CategoryMaps, "Snap GPS trace to nearest road"),
		simulated("timezone", "Time Zone API", "", "Time zone data for location.", CategoryMaps, "Time zone for Sydney, Australia"),
		simulated("maps_static", "Maps Static API", "", "Generate static map images.", CategoryMaps, "Static map of Paris center"),

		{
			ID: "vision", DisplayName: "Cloud Vision API", Description: "Image analysis & OCR.",
			Category: CategoryAI, TaskType: TaskAnalyzeImage, InputType: InputImage,
		},
		simulated("translate", "Cloud Translation API", "", "Multilingual neural translation.", CategoryAI, `Translate "Hello" to 10 languages`),
		simulated("nlp", "Natural Language API", "Cloud Natural Language API", "Sentiment & Entity analysis.", CategoryAI, "Analyze sentiment of this review"),
		simulated("webrisk", "Web Risk API", "", "Malware & Phishing detection.", CategoryAI, "Check http://unsafe-site.example.com"),

		{
			ID: "search", DisplayName: "Custom Search API", Description: "Web search grounding.",
			Category: CategoryData, TaskType: TaskLiveSearch, InputType: InputText,
			DefaultInput: "Latest stock market news", Tags: []string{"grounding"},
		},
		simulated("trends", "Google Trends", "", "Search interest analytics.", CategoryData, `Interest in "AI" vs "Crypto"`),
		simulated("charts", "Google Charts API", "", "Data visualization config.", CategoryData, "Pie chart of browser usage"),
		simulated("business", "Business Profile API", "", "Manage location metrics.", CategoryData, "Performance metrics for main store"),
		simulated("ads", "Ads Editor API", "Google Ads API", "Campaign management tools.", CategoryData, "Create campaign for Summer Sale"),
		simulated("pagespeed", "PageSpeed Insights", "PageSpeed Insights API", "Web performance scoring.", CategoryData, "Analyze google.com"),
		simulated("crux", "Chrome UX Report", "Chrome UX Report API", "Real-world user experience.", CategoryData, "UX metrics for wikipedia.org"),
	}
	return &Catalog{Version: CatalogVersion, Cards: cards}
}
