// Package markregister provides embedded assets for production builds.
package markregister

import "embed"

// StaticFS holds the frontend assets served under /static/.
//
//go:embed all:frontend/static
var StaticFS embed.FS
