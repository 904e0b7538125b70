package route

import (
	"errors"
	"fmt"
	"strings"

	"thearchives/internal/catalog"
	"thearchives/internal/models"
	"thearchives/internal/slug"
)

var (
	// ErrDestinationNotFound is returned when a destination id has no match.
	ErrDestinationNotFound = errors.New("destination not found")
	// ErrProductNotFound is returned when a product slug has no match in an
	// otherwise valid destination.
	ErrProductNotFound = errors.New("hidden gem not found")
	// ErrDistrictNotFound is returned when an ODOP district id has no match.
	ErrDistrictNotFound = errors.New("district not found")
	// ErrUnknownRoute is returned by Path for paths that don't name a
	// destination or product.
	ErrUnknownRoute = errors.New("unknown route")
)

// Resolver maps route parameters back to catalog records.
type Resolver struct {
	store *catalog.Store
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store *catalog.Store) *Resolver {
	return &Resolver{store: store}
}

// Destination resolves a destination id.
func (r *Resolver) Destination(id string) (models.Destination, error) {
	d, ok := r.store.ByID(id)
	if !ok {
		return models.Destination{}, fmt.Errorf("%w: %q", ErrDestinationNotFound, id)
	}
	return d, nil
}

// District resolves an ODOP district id.
func (r *Resolver) District(id string) (models.ODOPDistrict, error) {
	d, ok := r.store.DistrictByID(id)
	if !ok {
		return models.ODOPDistrict{}, fmt.Errorf("%w: %q", ErrDistrictNotFound, id)
	}
	return d, nil
}

// Product resolves a (destination id, product slug) pair. When several
// products in the destination share the slug, the first in authored order
// wins.
func (r *Resolver) Product(destinationID, productSlug string) (models.Destination, models.Product, error) {
	d, err := r.Destination(destinationID)
	if err != nil {
		return models.Destination{}, models.Product{}, err
	}
	for _, p := range d.Products {
		if slug.Generate(p.Name) == productSlug {
			return d, p, nil
		}
	}
	return d, models.Product{}, fmt.Errorf("%w: %q in %q", ErrProductNotFound, productSlug, destinationID)
}

// Kind identifies what a resolved path points at.
type Kind string

const (
	// KindDestination is a /destination/{id} page.
	KindDestination Kind = "destination"
	// KindLocationGems is a /hidden-gems/{id} page.
	KindLocationGems Kind = "hidden-gems"
	// KindProduct is a /hidden-gems/{id}/{slug} page.
	KindProduct Kind = "product"
	// KindLocationGallery is a /gallery/{id} page.
	KindLocationGallery Kind = "gallery"
)

// Target is the result of resolving a full path.
type Target struct {
	Kind        Kind
	Destination models.Destination
	Product     *models.Product
}

// Path resolves a site path such as "/hidden-gems/araku-valley/araku-valley-coffee".
// A query string or trailing slash is ignored.
func (r *Resolver) Path(path string) (Target, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(parts) == 2 && parts[0] == "destination":
		d, err := r.Destination(parts[1])
		return Target{Kind: KindDestination, Destination: d}, err
	case len(parts) == 2 && parts[0] == "gallery":
		d, err := r.Destination(parts[1])
		return Target{Kind: KindLocationGallery, Destination: d}, err
	case len(parts) == 2 && parts[0] == "hidden-gems":
		d, err := r.Destination(parts[1])
		return Target{Kind: KindLocationGems, Destination: d}, err
	case len(parts) == 3 && parts[0] == "hidden-gems":
		d, p, err := r.Product(parts[1], parts[2])
		if err != nil {
			return Target{Kind: KindProduct, Destination: d}, err
		}
		return Target{Kind: KindProduct, Destination: d, Product: &p}, nil
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

// Path returns the canonical path of a resolved target.
func (t Target) Path() string {
	switch t.Kind {
	case KindDestination:
		return Destination(t.Destination.ID)
	case KindLocationGems:
		return LocationGems(t.Destination.ID)
	case KindLocationGallery:
		return LocationGallery(t.Destination.ID)
	case KindProduct:
		if t.Product != nil {
			return Product(t.Destination.ID, t.Product.Name)
		}
	}
	return ""
}
