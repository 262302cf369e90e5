package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticHandler(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	h.Assets = http.FS(fstest.MapFS{
		"css/style.css": &fstest.MapFile{Data: []byte("body{}")},
		"js/app.js":     &fstest.MapFile{Data: []byte("'use strict';")},
	})
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	t.Run("serves known file with cache header", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/static/css/style.css")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "body{}", string(body))
		assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))
	})

	t.Run("missing file", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/static/css/missing.css")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("extensionless path rejected", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/static/css")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("directory listing rejected", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/static/css/")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestStaticRoutesAbsentWithoutAssets(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/css/style.css")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
