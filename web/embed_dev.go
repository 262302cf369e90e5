//go:build !prod

package web

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Assets serves the templates and static files straight from disk in
// development, so edits show up on reload without rebuilding. The root is
// resolved from this source file's location rather than the working
// directory, keeping `go run ./cmd/vanish` and `go test ./web` in agreement.
var Assets fs.FS

func init() {
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		panic("web: cannot locate package directory for dev assets")
	}
	Assets = os.DirFS(filepath.Dir(self))
}
