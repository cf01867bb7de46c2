package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gadgetfinder-backend/internal/catalog"
	"gadgetfinder-backend/internal/models"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		models.SiteSettings{Title: "Smart Gadget Finder", ReviewSafe: true},
		models.Affiliates{
			TopDeals: []models.Offer{{Name: "Echo Dot", Merchant: "Amazon", URL: "https://www.amazon.com/"}},
			Categories: []models.Category{{ID: "streaming", Title: "Streaming", Offers: []models.Offer{
				{Name: "Roku Ultra", Merchant: "Roku", URL: "https://www.roku.com/"},
			}}},
		},
		nil,
	)
}

func TestCatalogHandler_Site(t *testing.T) {
	h := NewCatalogHandler(testCatalog())
	rr := httptest.NewRecorder()
	h.Site(rr, httptest.NewRequest(http.MethodGet, "/api/v1/site", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"title":"Smart Gadget Finder","reviewSafe":true}`, rr.Body.String())
}

func TestCatalogHandler_Affiliates(t *testing.T) {
	h := NewCatalogHandler(testCatalog())
	rr := httptest.NewRecorder()
	h.Affiliates(rr, httptest.NewRequest(http.MethodGet, "/api/v1/affiliates", nil))

	var got models.Affiliates
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.TopDeals, 1)
	assert.Equal(t, "streaming", got.Categories[0].ID)
}

func TestCatalogHandler_QuickPick(t *testing.T) {
	h := NewCatalogHandler(testCatalog())

	rr := httptest.NewRecorder()
	h.QuickPick(rr, httptest.NewRequest(http.MethodGet, "/api/v1/quick-pick?q=new+roku+box", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.QuickPickResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "streaming", got.Category)
	require.Len(t, got.Offers, 1)
	assert.Equal(t, "Roku Ultra", got.Offers[0].Name)

	rr = httptest.NewRecorder()
	h.QuickPick(rr, httptest.NewRequest(http.MethodGet, "/api/v1/quick-pick?q=++", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
