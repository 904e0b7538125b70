// Package search implements the free-text query engine behind the nav
// search dialog, the /search page and the destinations listing filter.
//
// Matching is case-insensitive substring containment on names. Results keep
// catalog order: destinations in authoring order, then products grouped by
// destination in their authored order. Nothing is ranked or truncated.
package search

import (
	"strings"

	"thearchives/internal/catalog"
	"thearchives/internal/models"
	"thearchives/internal/observability"
)

// Outcome labels recorded for every query.
const (
	outcomeHit   = "hit"
	outcomeMiss  = "miss"
	outcomeEmpty = "empty"
)

// Match is a single search hit. It is implemented only by DestinationMatch
// and ProductMatch; consumers switch on the concrete type.
type Match interface {
	isMatch()
	// Title is the primary display text of the hit.
	Title() string
}

// DestinationMatch is a destination whose name contains the query.
type DestinationMatch struct {
	Destination models.Destination
}

// ProductMatch is a product whose name contains the query, along with the
// destination that owns it.
type ProductMatch struct {
	Product     models.Product
	Destination models.Destination
}

func (DestinationMatch) isMatch() {}
func (ProductMatch) isMatch()     {}

// Title returns the destination name.
func (m DestinationMatch) Title() string { return m.Destination.Name }

// Title returns the product name.
func (m ProductMatch) Title() string { return m.Product.Name }

// Subtitle returns the "From {destination}" line shown under product hits.
func (m ProductMatch) Subtitle() string { return "From " + m.Destination.Name }

// Results holds the matches for one query.
type Results struct {
	Query        string
	Destinations []DestinationMatch
	Products     []ProductMatch
}

// Empty reports whether the query matched nothing.
func (r Results) Empty() bool {
	return len(r.Destinations) == 0 && len(r.Products) == 0
}

// Matches flattens the result into a single list, destinations first.
func (r Results) Matches() []Match {
	out := make([]Match, 0, len(r.Destinations)+len(r.Products))
	for _, d := range r.Destinations {
		out = append(out, d)
	}
	for _, p := range r.Products {
		out = append(out, p)
	}
	return out
}

// Engine answers queries against a catalog store. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	store *catalog.Store
}

// New creates an Engine over the given store.
func New(store *catalog.Store) *Engine {
	return &Engine{store: store}
}

// Normalize trims surrounding whitespace from a raw query.
func Normalize(query string) string {
	return strings.TrimSpace(query)
}

// Search returns the destinations and products whose names contain the
// query, ignoring case. An empty or whitespace-only query yields an empty
// result, never the whole catalog.
func (e *Engine) Search(query string) Results {
	q := Normalize(query)
	res := Results{Query: q}
	if q == "" {
		observability.ObserveSearch(outcomeEmpty)
		return res
	}

	needle := strings.ToLower(q)
	for _, d := range e.store.All() {
		if contains(d.Name, needle) {
			res.Destinations = append(res.Destinations, DestinationMatch{Destination: d})
		}
		for _, p := range d.Products {
			if contains(p.Name, needle) {
				res.Products = append(res.Products, ProductMatch{Product: p, Destination: d})
			}
		}
	}

	if res.Empty() {
		observability.ObserveSearch(outcomeMiss)
	} else {
		observability.ObserveSearch(outcomeHit)
	}
	return res
}

// Filter returns the destinations listed on /destinations?q=. Unlike
// Search, an empty query lists the full catalog; otherwise only the
// destinations whose names match are returned.
func (e *Engine) Filter(query string) []models.Destination {
	if Normalize(query) == "" {
		return e.store.All()
	}
	res := e.Search(query)
	out := make([]models.Destination, 0, len(res.Destinations))
	for _, m := range res.Destinations {
		out = append(out, m.Destination)
	}
	return out
}

// contains reports whether name contains needle, which must already be
// lower-cased.
func contains(name, needle string) bool {
	return strings.Contains(strings.ToLower(name), needle)
}
