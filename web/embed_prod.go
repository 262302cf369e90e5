//go:build prod

package web

import (
	"io/fs"
	"log/slog"
)

var Assets fs.FS

func init() {
	slog.Info("serving web assets from embedded filesystem", "build_tag", "prod")
	Assets = FS
}
