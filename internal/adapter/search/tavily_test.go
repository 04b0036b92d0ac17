package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

func TestNewTavilyClient_RequiresKey(t *testing.T) {
	assert.Nil(t, NewTavilyClient("", "", nil))
	assert.Nil(t, NewTavilyClient("   ", "", nil))
	assert.NotNil(t, NewTavilyClient("tvly-key", "", nil))
}

func TestTavilyClient_Search(t *testing.T) {
	var got tavilyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"results":[
			{"title":"Loops","url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ","content":"...","score":0.9},
			{"title":"More","url":"https://youtu.be/aaaaaaaaaaa","score":0.5}
		]}`))
	}))
	defer srv.Close()

	client := NewTavilyClient("tvly-key", srv.URL, zap.NewNop())
	results, err := client.Search(context.Background(), domain.SearchQuery{
		Query:      "Loops tutorial",
		Site:       "youtube.com/watch",
		MaxResults: 5,
		Timeout:    time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "tvly-key", got.APIKey)
	assert.Equal(t, "Loops tutorial site:youtube.com/watch", got.Query)
	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, 5, got.MaxResults)

	require.Len(t, results, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", results[0].URL)
	assert.Equal(t, 0.9, results[0].Score)
}

func TestTavilyClient_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := NewTavilyClient("bad", srv.URL, nil).Search(context.Background(), domain.SearchQuery{Query: "x"})
		assert.ErrorContains(t, err, "401")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer srv.Close()

		_, err := NewTavilyClient("k", srv.URL, nil).Search(context.Background(), domain.SearchQuery{Query: "x"})
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := NewTavilyClient("k", srv.URL, nil).Search(context.Background(), domain.SearchQuery{Query: "x", Timeout: 20 * time.Millisecond})
		assert.Error(t, err)
	})
}

func TestTavilyClient_NilIsUnconfigured(t *testing.T) {
	var client *TavilyClient
	results, err := client.Search(context.Background(), domain.SearchQuery{Query: "x"})
	assert.NoError(t, err)
	assert.Empty(t, results)
}
