package handlers

import (
	"encoding/json"
	"net/http"

	"thearchives/internal/catalog"
	"thearchives/internal/route"
	"thearchives/internal/search"
)

// searchResponse is the JSON body of /api/search.
type searchResponse struct {
	Query        string              `json:"query"`
	Destinations []destinationResult `json:"destinations"`
	Products     []productResult     `json:"products"`
}

type destinationResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	Path    string `json:"path"`
}

type productResult struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	DestinationID   string `json:"destinationId"`
	DestinationName string `json:"destinationName"`
	Path            string `json:"path"`
}

// newSearchResponse converts engine results to the API shape. Both arrays
// are always present, even when empty.
func newSearchResponse(res search.Results) searchResponse {
	out := searchResponse{
		Query:        res.Query,
		Destinations: make([]destinationResult, 0, len(res.Destinations)),
		Products:     make([]productResult, 0, len(res.Products)),
	}
	for _, m := range res.Destinations {
		out.Destinations = append(out.Destinations, destinationResult{
			ID:      m.Destination.ID,
			Name:    m.Destination.Name,
			Tagline: m.Destination.Tagline,
			Path:    route.For(m),
		})
	}
	for _, m := range res.Products {
		out.Products = append(out.Products, productResult{
			Name:            m.Product.Name,
			Type:            string(m.Product.Type),
			DestinationID:   m.Destination.ID,
			DestinationName: m.Destination.Name,
			Path:            route.For(m),
		})
	}
	return out
}

// APISearch serves the JSON search used by the nav search dialog.
func (p *Public) APISearch(w http.ResponseWriter, r *http.Request) {
	res := p.search.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, newSearchResponse(res))
}

// healthResponse is the JSON body of /health.
type healthResponse struct {
	Status       string `json:"status"`
	Destinations int    `json:"destinations"`
	Products     int    `json:"products"`
}

// Health reports liveness along with the loaded catalog size.
func Health(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := store.Stats()
		writeJSON(w, http.StatusOK, healthResponse{
			Status:       "ok",
			Destinations: stats.Destinations,
			Products:     stats.Products,
		})
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
