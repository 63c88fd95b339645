package models

// Ad is one scraped listing entry, in the exact shape the harvester
// writes to ads.json. Link is the canonical detail-page URL and the
// preferred identity key when reconciling into the catalog.
type Ad struct {
	Title          string   `json:"title"`
	Price          string   `json:"price"`
	Description    string   `json:"description,omitempty"`
	Location       string   `json:"location,omitempty"`
	Link           string   `json:"link"`
	MainImage      string   `json:"main_image"`
	OtherImages    []string `json:"other_images"`
	MainImageLocal string   `json:"main_image_local,omitempty"`
}

// HarvestReport holds the run statistics printed to the operator console
// after a harvest run completes.
type HarvestReport struct {
	Listed      int
	Resumed     int
	Scraped     int
	ImagesSaved int
	Failures    int
}
