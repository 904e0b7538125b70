// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ProductType partitions a destination's products for display grouping.
type ProductType string

const (
	ProductTypeFamous     ProductType = "famous"
	ProductTypeUnderrated ProductType = "underrated"
)

// Valid reports whether t is one of the two known product types.
func (t ProductType) Valid() bool {
	return t == ProductTypeFamous || t == ProductTypeUnderrated
}

// Label returns the badge text shown on product cards.
func (t ProductType) Label() string {
	if t == ProductTypeUnderrated {
		return "Hidden Gem"
	}
	return "Famous Item"
}

// Destination is a hill-station record owning an ordered list of products.
// ID is authored in kebab-case and used verbatim as a URL path segment.
type Destination struct {
	ID              string    `yaml:"id" json:"id"`
	Name            string    `yaml:"name" json:"name"`
	Tagline         string    `yaml:"tagline" json:"tagline"`
	Image           string    `yaml:"image" json:"image"`
	HeroDescription string    `yaml:"hero_description" json:"hero_description"`
	Elevation       string    `yaml:"elevation" json:"elevation"`
	BestTime        string    `yaml:"best_time" json:"best_time"`
	Temperature     string    `yaml:"temperature" json:"temperature"`
	About           string    `yaml:"about" json:"about"`
	Products        []Product `yaml:"products" json:"products"`
}

// Product is an item (craft, food, material) associated with exactly one
// destination. Image fields are optional asset paths.
type Product struct {
	Name          string      `yaml:"name" json:"name"`
	Type          ProductType `yaml:"type" json:"type"`
	Description   string      `yaml:"description" json:"description"`
	Significance  string      `yaml:"significance" json:"significance"`
	MakingProcess string      `yaml:"making_process" json:"making_process"`
	Uses          []string    `yaml:"uses" json:"uses"`
	Image         string      `yaml:"image,omitempty" json:"image,omitempty"`
	MakingImage   string      `yaml:"making_image,omitempty" json:"making_image,omitempty"`
	FlavorImage   string      `yaml:"flavor_image,omitempty" json:"flavor_image,omitempty"`
}

// IsHiddenGem returns true for underrated products.
func (p Product) IsHiddenGem() bool {
	return p.Type == ProductTypeUnderrated
}

// ImageOr returns the product image, or fallback when none was authored.
// Pages pass the owning destination's image as the fallback.
func (p Product) ImageOr(fallback string) string {
	if p.Image != "" {
		return p.Image
	}
	return fallback
}

// MakingImageOr returns the making-process image, falling back to the
// product image and then to fallback.
func (p Product) MakingImageOr(fallback string) string {
	if p.MakingImage != "" {
		return p.MakingImage
	}
	return p.ImageOr(fallback)
}

// HiddenGems returns the underrated products in authored order.
func (d Destination) HiddenGems() []Product {
	return d.productsOfType(ProductTypeUnderrated)
}

// Famous returns the famous products in authored order.
func (d Destination) Famous() []Product {
	return d.productsOfType(ProductTypeFamous)
}

func (d Destination) productsOfType(t ProductType) []Product {
	var out []Product
	for _, p := range d.Products {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}
