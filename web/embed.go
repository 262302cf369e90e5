// Package web carries the HTML templates and static assets for the vanish
// frontend. Assets resolves to the on-disk files in development builds and
// to the embedded filesystem when built with -tags prod.
package web

import "embed"

// FS contains the embedded page templates and static assets.
//
//go:embed *.tmpl.html css/* js/*
var FS embed.FS
