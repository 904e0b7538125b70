// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog is the read-only content store for destinations, their
// products and the ODOP district list. The catalog is decoded from YAML
// documents embedded in the binary once at startup and never mutated
// afterwards, so a *Store is safe for concurrent use without locking.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"thearchives/internal/models"
	"thearchives/internal/slug"
)

//go:embed data/destinations.yaml data/odop.yaml
var dataFS embed.FS

// ErrInvalidCatalog is wrapped by every load-time validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Store holds the destination and district catalogs in authoring order.
type Store struct {
	destinations []models.Destination
	byID         map[string]int
	districts    []models.ODOPDistrict
	districtByID map[string]int
}

// DestinationSummary is a destination annotated with its product counts,
// used by the hidden-gems index.
type DestinationSummary struct {
	models.Destination
	GemsCount   int
	FamousCount int
}

// Stats holds catalog-wide counts shown on listing pages.
type Stats struct {
	Destinations int
	Products     int
	HiddenGems   int
	Districts    int
}

type destinationsDoc struct {
	Destinations []models.Destination `yaml:"destinations"`
}

type districtsDoc struct {
	Districts []models.ODOPDistrict `yaml:"districts"`
}

// Load decodes the embedded catalog documents.
func Load() (*Store, error) {
	destYAML, err := dataFS.ReadFile("data/destinations.yaml")
	if err != nil {
		return nil, fmt.Errorf("read destinations: %w", err)
	}
	odopYAML, err := dataFS.ReadFile("data/odop.yaml")
	if err != nil {
		return nil, fmt.Errorf("read odop districts: %w", err)
	}
	return Parse(destYAML, odopYAML)
}

// Parse decodes and validates catalog documents. Either document may be
// empty, which yields an empty collection.
func Parse(destYAML, odopYAML []byte) (*Store, error) {
	var dd destinationsDoc
	if err := decodeStrict(destYAML, &dd); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}
	var od districtsDoc
	if err := decodeStrict(odopYAML, &od); err != nil {
		return nil, fmt.Errorf("decode odop districts: %w", err)
	}

	s := &Store{
		destinations: dd.Destinations,
		byID:         make(map[string]int, len(dd.Destinations)),
		districts:    od.Districts,
		districtByID: make(map[string]int, len(od.Districts)),
	}

	for i, d := range s.destinations {
		if err := validateDestination(d); err != nil {
			return nil, err
		}
		if _, dup := s.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate destination id %q", ErrInvalidCatalog, d.ID)
		}
		s.byID[d.ID] = i
		warnSlugCollisions(d)
	}

	for i, d := range s.districts {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: district %d has an empty id", ErrInvalidCatalog, i)
		}
		if _, dup := s.districtByID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate district id %q", ErrInvalidCatalog, d.ID)
		}
		s.districtByID[d.ID] = i
	}

	slog.Debug("catalog loaded",
		"destinations", len(s.destinations),
		"districts", len(s.districts),
	)
	return s, nil
}

// decodeStrict decodes a YAML document, rejecting unknown fields. An empty
// document leaves out untouched.
func decodeStrict(doc []byte, out any) error {
	if len(bytes.TrimSpace(doc)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func validateDestination(d models.Destination) error {
	if d.ID == "" {
		return fmt.Errorf("%w: destination %q has an empty id", ErrInvalidCatalog, d.Name)
	}
	if !slug.Valid(d.ID) {
		return fmt.Errorf("%w: destination id %q is not slug-shaped", ErrInvalidCatalog, d.ID)
	}
	for _, p := range d.Products {
		if p.Name == "" {
			return fmt.Errorf("%w: destination %q has a product with an empty name", ErrInvalidCatalog, d.ID)
		}
		if !p.Type.Valid() {
			return fmt.Errorf("%w: product %q in %q has unknown type %q", ErrInvalidCatalog, p.Name, d.ID, p.Type)
		}
	}
	return nil
}

// warnSlugCollisions logs products whose slugs clash with an earlier
// sibling. Resolution returns the first one, so the later product is
// unreachable by URL.
func warnSlugCollisions(d models.Destination) {
	seen := make(map[string]string, len(d.Products))
	for _, p := range d.Products {
		s := slug.Generate(p.Name)
		if first, ok := seen[s]; ok {
			slog.Warn("product slug collision",
				"destination", d.ID,
				"slug", s,
				"first", first,
				"shadowed", p.Name,
			)
			continue
		}
		seen[s] = p.Name
	}
}

// All returns every destination in authoring order. The returned slice is
// a copy; reordering it does not affect the store.
func (s *Store) All() []models.Destination {
	out := make([]models.Destination, len(s.destinations))
	copy(out, s.destinations)
	return out
}

// ByID looks up a destination by its exact, case-sensitive id.
func (s *Store) ByID(id string) (models.Destination, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Destination{}, false
	}
	return s.destinations[i], true
}

// Neighbors returns the destinations before and after id in authoring
// order. Either is nil at the ends of the catalog or when id is unknown.
func (s *Store) Neighbors(id string) (prev, next *models.Destination) {
	i, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	if i > 0 {
		p := s.destinations[i-1]
		prev = &p
	}
	if i < len(s.destinations)-1 {
		n := s.destinations[i+1]
		next = &n
	}
	return prev, next
}

// WithHiddenGems returns the destinations that have at least one
// underrated product, with their gem and famous counts.
func (s *Store) WithHiddenGems() []DestinationSummary {
	var out []DestinationSummary
	for _, d := range s.destinations {
		sum := DestinationSummary{
			Destination: d,
			GemsCount:   len(d.HiddenGems()),
			FamousCount: len(d.Famous()),
		}
		if sum.GemsCount > 0 {
			out = append(out, sum)
		}
	}
	return out
}

// Districts returns every ODOP district in authoring order.
func (s *Store) Districts() []models.ODOPDistrict {
	out := make([]models.ODOPDistrict, len(s.districts))
	copy(out, s.districts)
	return out
}

// FeaturedDistricts returns the first n districts, or all of them when n
// is not positive or exceeds the catalog size.
func (s *Store) FeaturedDistricts(n int) []models.ODOPDistrict {
	if n <= 0 || n >= len(s.districts) {
		return s.Districts()
	}
	out := make([]models.ODOPDistrict, n)
	copy(out, s.districts[:n])
	return out
}

// DistrictByID looks up an ODOP district by id.
func (s *Store) DistrictByID(id string) (models.ODOPDistrict, bool) {
	i, ok := s.districtByID[id]
	if !ok {
		return models.ODOPDistrict{}, false
	}
	return s.districts[i], true
}

// Stats returns catalog-wide counts.
func (s *Store) Stats() Stats {
	st := Stats{
		Destinations: len(s.destinations),
		Districts:    len(s.districts),
	}
	for _, d := range s.destinations {
		st.Products += len(d.Products)
		st.HiddenGems += len(d.HiddenGems())
	}
	return st
}
