// Package web provides the embedded static assets (CSS, JS, images) for the
// public site, served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
