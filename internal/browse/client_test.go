package browse

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdrive/internal/pkg/errs"
)

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"Key":"1700-a.txt","Size":10,"LastModified":"2026-01-02T03:04:05Z"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	listing, appErr := c.List(context.Background())
	require.Nil(t, appErr)
	require.Len(t, listing, 1)
	assert.Equal(t, "1700-a.txt", listing[0].Key)
	assert.Equal(t, int64(10), listing[0].Size)
}

func TestClientListGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to fetch files from the object store","details":"dial tcp: timeout"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	_, appErr := c.List(context.Background())
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "Failed to fetch files from the object store")
	assert.Equal(t, "dial tcp: timeout", appErr.Details)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1700-logo.svg", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	body, contentType, appErr := c.Fetch(context.Background(), "1700-logo.svg")
	require.Nil(t, appErr)
	defer body.Close()

	assert.Equal(t, "image/svg+xml", contentType)
	data, _ := io.ReadAll(body)
	assert.Equal(t, "<svg/>", string(data))
}

func TestClientFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"File not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	_, _, appErr := c.Fetch(context.Background(), "missing")
	require.NotNil(t, appErr)
	assert.Equal(t, errs.KindNotFound, appErr.Kind)
}

func TestClientShare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/share", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://store.example/get/1700-a.txt"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	url, appErr := c.Share(context.Background(), "1700-a.txt")
	require.Nil(t, appErr)
	assert.Equal(t, "https://store.example/get/1700-a.txt", url)
}

func TestClientDelete(t *testing.T) {
	var method, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		key = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"File deleted successfully"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	appErr := c.Delete(context.Background(), "1700-a.txt")
	require.Nil(t, appErr)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "1700-a.txt", key)
}
