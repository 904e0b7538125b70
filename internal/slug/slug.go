// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides the URL slug derivation shared by every link
// producer and the product resolver. Both directions must use Generate so
// that a link built from a product name resolves back to that product.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun matches one or more whitespace runes, including the
	// Unicode space separators.
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	// nonWordOrHyphen matches anything that isn't an ASCII word character or a hyphen.
	nonWordOrHyphen = regexp.MustCompile(`[^\w-]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Jack Fruit Chips & Products" → "jack-fruit-chips-products"
//
// Leading and trailing hyphens are kept; Generate is idempotent.
func Generate(s string) string {
	result := strings.ToLower(s)
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = nonWordOrHyphen.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return result
}

// Valid reports whether s is already in slug form, i.e. Generate(s) == s
// and s is non-empty. Catalog ids are checked with it at load time.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}
