// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package route builds the site's URL paths and resolves path parameters
// back to catalog records. Link producers (templates, the JSON search API,
// the CLI) must build paths here so that product links always carry the
// same slug the resolver compares against.
package route

import (
	"net/url"

	"thearchives/internal/search"
	"thearchives/internal/slug"
)

// Home returns the site root.
func Home() string { return "/" }

// HomeAllDistricts returns the home page with every ODOP district listed,
// anchored at the district section.
func HomeAllDistricts() string { return "/?districts=all#districts" }

// District returns the detail path for an ODOP district.
func District(id string) string { return "/district/" + url.PathEscape(id) }

// Destinations returns the destinations listing path.
func Destinations() string { return "/destinations" }

// DestinationsQuery returns the destinations listing filtered by q. The raw
// query is carried unmodified; the page normalizes it.
func DestinationsQuery(q string) string {
	if q == "" {
		return Destinations()
	}
	return Destinations() + "?" + url.Values{"q": {q}}.Encode()
}

// Destination returns the detail path for a destination id. The id is
// used verbatim; it is already slug-shaped.
func Destination(id string) string { return "/destination/" + url.PathEscape(id) }

// HiddenGems returns the hidden-gems index path.
func HiddenGems() string { return "/hidden-gems" }

// LocationGems returns the per-destination hidden-gems path.
func LocationGems(destinationID string) string {
	return HiddenGems() + "/" + url.PathEscape(destinationID)
}

// Product returns the detail path of a product scoped by its destination.
func Product(destinationID, productName string) string {
	return LocationGems(destinationID) + "/" + slug.Generate(productName)
}

// SubmitGem returns the hidden-gem submission form target.
func SubmitGem() string { return HiddenGems() + "/submit" }

// Gallery returns the gallery index path.
func Gallery() string { return "/gallery" }

// LocationGallery returns the per-destination gallery path.
func LocationGallery(destinationID string) string {
	return Gallery() + "/" + url.PathEscape(destinationID)
}

// About returns the about page path.
func About() string { return "/about" }

// Search returns the search results page path for q.
func Search(q string) string {
	if q == "" {
		return "/search"
	}
	return "/search?" + url.Values{"q": {q}}.Encode()
}

// For returns the detail path of a search hit.
func For(m search.Match) string {
	switch m := m.(type) {
	case search.DestinationMatch:
		return Destination(m.Destination.ID)
	case search.ProductMatch:
		return Product(m.Destination.ID, m.Product.Name)
	default:
		panic("route: unhandled search match type")
	}
}
