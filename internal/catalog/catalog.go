// Package catalog loads the site and affiliate documents the static
// frontend renders, and implements the keyword quick pick.
package catalog

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"gadgetfinder-backend/internal/models"
)

const maxPicks = 3

type Catalog struct {
	Site       models.SiteSettings
	Affiliates models.Affiliates
	classifier *Classifier
}

// Load reads site.json and affiliates.json.
func Load(sitePath, affiliatesPath string) (*Catalog, error) {
	var c Catalog
	if err := readJSON(sitePath, &c.Site); err != nil {
		return nil, err
	}
	if err := readJSON(affiliatesPath, &c.Affiliates); err != nil {
		return nil, err
	}
	c.classifier = DefaultClassifier()
	return &c, nil
}

// New wraps already decoded documents.
func New(site models.SiteSettings, affiliates models.Affiliates, classifier *Classifier) *Catalog {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Catalog{Site: site, Affiliates: affiliates, classifier: classifier}
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	return nil
}

func (c *Catalog) Category(id string) (models.Category, bool) {
	for _, cat := range c.Affiliates.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.Category{}, false
}

// QuickPick returns up to three offers for a free-text query: the first
// offers of the matched category, or the top deals when no rule matches.
// A matched category missing from the catalog yields no offers.
func (c *Catalog) QuickPick(query string) models.QuickPickResponse {
	resp := models.QuickPickResponse{Query: query, Offers: []models.Offer{}}

	id, ok := c.classifier.Classify(query)
	if !ok {
		resp.Offers = append(resp.Offers, firstN(c.Affiliates.TopDeals, maxPicks)...)
		return resp
	}

	resp.Category = id
	if cat, found := c.Category(id); found {
		resp.Offers = append(resp.Offers, firstN(cat.Offers, maxPicks)...)
	}
	return resp
}

func firstN(offers []models.Offer, n int) []models.Offer {
	if len(offers) < n {
		return offers
	}
	return offers[:n]
}
