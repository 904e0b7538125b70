// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"thearchives/internal/cache"
	"thearchives/internal/catalog"
	"thearchives/internal/render"
	"thearchives/internal/route"
	"thearchives/internal/search"
)

// featuredDistricts is how many ODOP districts the home page shows before
// the visitor asks for all of them.
const featuredDistricts = 6

// Public groups handlers for the public-facing site. Catalog pages check
// the Valkey page cache before rendering and store the result on miss.
type Public struct {
	store     *catalog.Store
	search    *search.Engine
	resolver  *route.Resolver
	render    *render.Renderer
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil when
// Valkey is not configured.
func NewPublic(store *catalog.Store, engine *search.Engine, resolver *route.Resolver, rn *render.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{
		store:     store,
		search:    engine,
		resolver:  resolver,
		render:    rn,
		pageCache: pageCache,
	}
}

// cachedPage serves the page from cache when possible, otherwise renders it
// with build and caches the 200 result. Only requests without a query
// string are cached, plus the explicitly listed variants.
func (p *Public) cachedPage(w http.ResponseWriter, r *http.Request, name string, build func() *render.PageData) {
	ctx := r.Context()
	cacheable := r.URL.RawQuery == "" || r.URL.RawQuery == "districts=all"
	key := cache.PathKey(r.URL.Path, r.URL.RawQuery)

	if cacheable {
		if cached, ok := p.pageCache.Get(ctx, key); ok {
			render.WriteHTML(w, http.StatusOK, cached)
			return
		}
	}

	out, err := p.render.Bytes(name, build())
	if err != nil {
		slog.Error("render page failed", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if cacheable {
		p.pageCache.Set(ctx, key, out)
	}
	render.WriteHTML(w, http.StatusOK, out)
}

// Home renders the landing page with the destination cards and the ODOP
// district listing.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("districts") == "all"
	p.cachedPage(w, r, "home", func() *render.PageData {
		districts := p.store.FeaturedDistricts(featuredDistricts)
		if all {
			districts = p.store.Districts()
		}
		return &render.PageData{
			Section:     "home",
			Description: "Discover India's underrated regional products and the places they come from.",
			Data: map[string]any{
				"Destinations":   p.store.All(),
				"Districts":      districts,
				"AllDistricts":   all || len(districts) == len(p.store.Districts()),
				"TotalDistricts": len(p.store.Districts()),
			},
		}
	})
}

// Destinations renders the destination listing, filtered by ?q=.
func (p *Public) Destinations(w http.ResponseWriter, r *http.Request) {
	q := search.Normalize(r.URL.Query().Get("q"))
	p.cachedPage(w, r, "destinations", func() *render.PageData {
		return &render.PageData{
			Title:   "Destinations",
			Section: "destinations",
			Data: map[string]any{
				"Destinations": p.search.Filter(q),
				"Query":        q,
				"Stats":        p.store.Stats(),
			},
		}
	})
}

// Destination renders one destination by id.
func (p *Public) Destination(w http.ResponseWriter, r *http.Request) {
	dest, err := p.resolver.Destination(chi.URLParam(r, "id"))
	if err != nil {
		p.notFound(w, r, err, route.Destinations(), "Browse all destinations")
		return
	}
	p.cachedPage(w, r, "destination", func() *render.PageData {
		return &render.PageData{
			Title:       dest.Name,
			Description: dest.HeroDescription,
			Section:     "destinations",
			Data: map[string]any{
				"Destination": dest,
				"Famous":      dest.Famous(),
				"Gems":        dest.HiddenGems(),
			},
		}
	})
}

// HiddenGems renders the index of destinations that have hidden gems.
func (p *Public) HiddenGems(w http.ResponseWriter, r *http.Request) {
	p.cachedPage(w, r, "hidden_gems", func() *render.PageData {
		return &render.PageData{
			Title:   "Hidden Gems",
			Section: "hidden-gems",
			Data:    map[string]any{"Summaries": p.store.WithHiddenGems()},
		}
	})
}

// LocationGems renders one destination's products with prev/next links.
func (p *Public) LocationGems(w http.ResponseWriter, r *http.Request) {
	dest, err := p.resolver.Destination(chi.URLParam(r, "id"))
	if err != nil {
		p.notFound(w, r, err, route.HiddenGems(), "Back to hidden gems")
		return
	}
	p.cachedPage(w, r, "location_gems", func() *render.PageData {
		prev, next := p.store.Neighbors(dest.ID)
		return &render.PageData{
			Title:   "Hidden Gems of " + dest.Name,
			Section: "hidden-gems",
			Data: map[string]any{
				"Destination": dest,
				"Gems":        dest.HiddenGems(),
				"Famous":      dest.Famous(),
				"Prev":        prev,
				"Next":        next,
			},
		}
	})
}

// Product renders one product resolved from its destination and slug.
func (p *Public) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dest, product, err := p.resolver.Product(id, chi.URLParam(r, "productSlug"))
	if err != nil {
		p.notFound(w, r, err, route.LocationGems(id), "Back to hidden gems")
		return
	}
	p.cachedPage(w, r, "product", func() *render.PageData {
		return &render.PageData{
			Title:       product.Name,
			Description: product.Description,
			Section:     "hidden-gems",
			Data: map[string]any{
				"Destination": dest,
				"Product":     product,
			},
		}
	})
}

// District renders one ODOP district with its lesser-known products.
func (p *Public) District(w http.ResponseWriter, r *http.Request) {
	district, err := p.resolver.District(chi.URLParam(r, "id"))
	if err != nil {
		p.notFound(w, r, err, route.HomeAllDistricts(), "Browse all districts")
		return
	}
	p.cachedPage(w, r, "district", func() *render.PageData {
		return &render.PageData{
			Title:       district.Name + ": " + district.AnchorProduct,
			Description: district.AnchorProductDescription,
			Section:     "home",
			Data:        map[string]any{"District": district},
		}
	})
}

// Gallery renders the gallery index.
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	p.cachedPage(w, r, "gallery", func() *render.PageData {
		return &render.PageData{
			Title:   "Gallery",
			Section: "gallery",
			Data:    map[string]any{"Destinations": p.store.All()},
		}
	})
}

// LocationGallery renders one destination's photos.
func (p *Public) LocationGallery(w http.ResponseWriter, r *http.Request) {
	dest, err := p.resolver.Destination(chi.URLParam(r, "id"))
	if err != nil {
		p.notFound(w, r, err, route.Gallery(), "Back to gallery")
		return
	}
	p.cachedPage(w, r, "location_gallery", func() *render.PageData {
		return &render.PageData{
			Title:   dest.Name + " Gallery",
			Section: "gallery",
			Data:    map[string]any{"Destination": dest},
		}
	})
}

// About renders the about page.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	p.cachedPage(w, r, "about", func() *render.PageData {
		return &render.PageData{
			Title:   "About",
			Section: "about",
			Data:    map[string]any{"Stats": p.store.Stats()},
		}
	})
}

// Search renders the full search results page. It is never cached; queries
// are unbounded.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	q := search.Normalize(r.URL.Query().Get("q"))
	p.render.Page(w, r, http.StatusOK, "search", &render.PageData{
		Title: "Search",
		Query: q,
		Data: map[string]any{
			"Query":   q,
			"Results": p.search.Search(q),
		},
	})
}

// NotFound renders the catch-all 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render.Page(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: "Page Not Found",
		Data: map[string]any{
			"Heading":   "Page Not Found",
			"Message":   "The page you are looking for does not exist.",
			"BackHref":  route.Home(),
			"BackLabel": "Return Home",
		},
	})
}

// notFound maps a resolver error to its 404 page. Anything that is not a
// known not-found sentinel is a 500.
func (p *Public) notFound(w http.ResponseWriter, r *http.Request, err error, backHref, backLabel string) {
	var heading, message string
	switch {
	case errors.Is(err, route.ErrDestinationNotFound):
		heading = "Destination Not Found"
		message = "We couldn't find that destination."
	case errors.Is(err, route.ErrProductNotFound):
		heading = "Hidden Gem Not Found"
		message = "We couldn't find that product."
	case errors.Is(err, route.ErrDistrictNotFound):
		heading = "District Not Found"
		message = "We couldn't find that district."
	default:
		slog.Error("resolve route failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Debug("catalog lookup missed", "path", r.URL.Path, "error", err)
	p.render.Page(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: heading,
		Data: map[string]any{
			"Heading":   heading,
			"Message":   message,
			"BackHref":  backHref,
			"BackLabel": backLabel,
		},
	})
}
