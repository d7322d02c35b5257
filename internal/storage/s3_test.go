package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutConfigDisablesStorage(t *testing.T) {
	tests := []struct {
		name                     string
		endpoint, access, secret string
	}{
		{"no endpoint", "", "key", "secret"},
		{"no access key", "https://s3.example.com", "", "secret"},
		{"no secret key", "https://s3.example.com", "key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "fsn1", tt.access, tt.secret, "bucket", "")
			require.NoError(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New("https://s3.example.com", "fsn1", "key", "secret", "", "")
	assert.Error(t, err)
}

func TestFileURL(t *testing.T) {
	c, err := New("https://s3.example.com/", "fsn1", "key", "secret", "exports", "")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/exports/a/b.json", c.FileURL("a/b.json"))
	assert.Equal(t, "exports", c.Bucket())

	cdn, err := New("https://s3.example.com", "fsn1", "key", "secret", "exports", "https://cdn.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a/b.json", cdn.FileURL("a/b.json"))
}

func TestManifestKey(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	key := ManifestKey(now, "quarterly-report")

	assert.True(t, strings.HasPrefix(key, "exports/2026/03/14/"), key)
	assert.True(t, strings.HasSuffix(key, "-quarterly-report.json"), key)
	assert.NotEqual(t, key, ManifestKey(now, "quarterly-report"))
}

func TestUploadPutsObject(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   string
		ctype  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		method, path, body, ctype = r.Method, r.URL.Path, string(data), r.Header.Get("Content-Type")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "us-east-1", "key", "secret", "exports", "")
	require.NoError(t, err)

	err = c.Upload(context.Background(), "exports/x.json", "application/json", []byte(`{"format":"png"}`))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/exports/exports/x.json", path)
	assert.Equal(t, "application/json", ctype)
	assert.Contains(t, body, `{"format":"png"}`)
}

func TestUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "us-east-1", "key", "secret", "exports", "")
	require.NoError(t, err)

	err = c.Upload(context.Background(), "x.json", "application/json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 upload exports/x.json")
}
