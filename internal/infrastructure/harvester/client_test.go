package harvester

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealscope/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://harvester.example.com", 0)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://harvester.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, 90*time.Second, client.httpClient.Timeout)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("test-api-key", "https://harvester.example.com", time.Second)

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFetchAnchor_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/anchor", r.URL.Path)
		assert.Equal(t, "dell inspiron 3520", r.URL.Query().Get("query"))
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))

		json.NewEncoder(w).Encode(wireListing{
			Title:   "Dell Inspiron 15 3520 Laptop",
			Price:   50000,
			Link:    "https://amazon.example/dell",
			Source:  "Amazon",
			RawText: "10% instant discount",
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)

	listing, err := client.FetchAnchor(context.Background(), "dell inspiron 3520")
	require.NoError(t, err)
	require.NotNil(t, listing)

	assert.Equal(t, "Dell Inspiron 15 3520 Laptop", listing.Title)
	assert.Equal(t, 50000, listing.Price)
	assert.Equal(t, "Amazon", listing.Source)
	assert.Equal(t, "10% instant discount", listing.RawText)
}

func TestFetchAnchor_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)

	_, err := client.FetchAnchor(context.Background(), "nonexistent product")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestFetchAnchor_RetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(wireListing{Title: "Recovered", Price: 100, Source: "Amazon"})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)

	listing, err := client.FetchAnchor(context.Background(), "flaky")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "Recovered", listing.Title)
}

func TestFetchAnchor_GivesUpAfterRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)

	_, err := client.FetchAnchor(context.Background(), "always failing")
	assert.ErrorIs(t, err, domain.ErrHarvesterUnavailable)
}

func TestFetchAnchor_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)

	_, err := client.FetchAnchor(context.Background(), "garbled")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestFetchCandidates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/candidates", r.URL.Path)
		assert.Equal(t, "samsung a10", r.URL.Query().Get("query"))

		json.NewEncoder(w).Encode(wireCandidates{
			Candidates: []wireListing{
				{Title: "Samsung Galaxy A10 (Blue)", Price: 9000, Source: "Flipkart", RawText: "coupon"},
				{Title: "Samsung Galaxy A10 (Black)", Price: 8800, Source: "Flipkart"},
			},
			Total: 2,
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)

	listings, err := client.FetchCandidates(context.Background(), "samsung a10")
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "Samsung Galaxy A10 (Blue)", listings[0].Title)
	assert.Equal(t, "coupon", listings[0].RawText)
	assert.Equal(t, 8800, listings[1].Price)
}

func TestFetchCandidates_EmptyPool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wireCandidates{Candidates: nil, Total: 0})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)

	listings, err := client.FetchCandidates(context.Background(), "obscure gadget")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestFetchAnchor_NoAPIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Key"]
		assert.False(t, present, "X-API-Key header should be absent without a key")
		json.NewEncoder(w).Encode(wireListing{Title: "Anything", Price: 1, Source: "Amazon"})
	}))
	defer server.Close()

	client := NewClient("", server.URL, 5*time.Second)

	_, err := client.FetchAnchor(context.Background(), "query")
	require.NoError(t, err)
}
