package web

import "testing"

// TestAssetsOpen verifies the Assets filesystem exposes the template and
// asset files the server loads at startup, and that missing paths error.
func TestAssetsOpen(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{name: "partials template", path: "partials.tmpl.html"},
		{name: "index template", path: "index.tmpl.html"},
		{name: "secret template", path: "secret.tmpl.html"},
		{name: "about template", path: "about.tmpl.html"},
		{name: "error template", path: "error.tmpl.html"},
		{name: "stylesheet", path: "css/style.css"},
		{name: "script", path: "js/app.js"},
		{name: "non existent file", path: "this_file_should_not_exist_12345.go", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Assets.Open(tc.path)
			if tc.wantError {
				if err == nil {
					t.Fatalf("expected error opening %q, got none", tc.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error opening %q: %v", tc.path, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil {
					t.Fatalf("close failed: %v", cerr)
				}
			}()
			buf := make([]byte, 16)
			n, rerr := f.Read(buf)
			if rerr != nil && rerr.Error() != "EOF" {
				t.Fatalf("read failed: %v", rerr)
			}
			if n == 0 {
				t.Fatalf("read zero bytes from %q; expected some content", tc.path)
			}
		})
	}
}
