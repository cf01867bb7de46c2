package models

// Offer is a single product or merchant recommendation.
type Offer struct {
	Name     string `json:"name"`
	Merchant string `json:"merchant"`
	URL      string `json:"url"`
	Price    string `json:"price,omitempty"`
	Savings  string `json:"savings,omitempty"`
	Blurb    string `json:"blurb,omitempty"`
}

type Category struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Offers []Offer `json:"offers"`
}

// Affiliates mirrors affiliates.json.
type Affiliates struct {
	TopDeals   []Offer    `json:"topDeals"`
	Categories []Category `json:"categories"`
}

// SiteSettings mirrors site.json.
type SiteSettings struct {
	Title      string `json:"title,omitempty"`
	Tagline    string `json:"tagline,omitempty"`
	ReviewSafe bool   `json:"reviewSafe"`
}

type QuickPickResponse struct {
	Query    string  `json:"query"`
	Category string  `json:"category,omitempty"`
	Offers   []Offer `json:"offers"`
}
