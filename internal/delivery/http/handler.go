package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealscope/backend/internal/domain"
	"github.com/dealscope/backend/internal/usecase"
)

// Resolver runs one cross-retailer resolution per query.
type Resolver interface {
	Resolve(ctx context.Context, query string) (*domain.Comparison, error)
}

// BundleOptimizer prices a multi-item cart across both retailers.
type BundleOptimizer interface {
	Optimize(ctx context.Context, items []string) (*domain.BundleResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver Resolver
	bundles  BundleOptimizer
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver Resolver, bundles BundleOptimizer, cache domain.CacheRepository, cacheTTL time.Duration) *Handler {
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	return &Handler{
		resolver: resolver,
		bundles:  bundles,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dealscope-backend",
		"version": "1.0.0",
	})
}

// listingPayload is the wire shape of one listing per retailer side.
// Price is a digit string for frontend compatibility.
type listingPayload struct {
	Title          string `json:"title"`
	Price          string `json:"price"`
	Link           string `json:"link"`
	Source         string `json:"source,omitempty"`
	EffectivePrice int    `json:"effective_price,omitempty"`
	OfferText      string `json:"offer_text,omitempty"`
}

// searchResponse is the full search payload. ai_advice is produced by an
// external advisory collaborator and is absent here.
type searchResponse struct {
	Products   []listingPayload   `json:"products"`
	Confidence float64            `json:"confidence"`
	Financials *domain.Financials `json:"financials"`
}

// Search handles GET /api/v1/search?query=
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Missing search query parameter.",
		})
		return
	}

	// Memoize full responses on normalized query text.
	cacheKey := normalizeCacheKey(query)
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
		if response, ok := cached.(*searchResponse); ok {
			log.Printf("[SEARCH] Serving %q from cache", query)
			c.JSON(http.StatusOK, response)
			return
		}
	}

	comparison, err := h.resolver.Resolve(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid search query.",
			})
			return
		}
		log.Printf("[SEARCH] Resolution failed for %q: %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "An internal error occurred.",
		})
		return
	}

	response := &searchResponse{
		Products: []listingPayload{
			toListingPayload(comparison.Anchor),
			toListingPayload(comparison.Best),
		},
		Confidence: comparison.Confidence,
		Financials: bestFinancials(query, comparison),
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, response, h.cacheTTL); err != nil {
		log.Printf("[SEARCH] Failed to cache %q: %v", query, err)
	}

	c.JSON(http.StatusOK, response)
}

// bundleRequest is the POST body for bundle optimization
type bundleRequest struct {
	Items []string `json:"items" binding:"required"`
}

// BundleSearch handles POST /api/v1/search/bundle
func (h *Handler) BundleSearch(c *gin.Context) {
	var req bundleRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid items array.",
		})
		return
	}

	result, err := h.bundles.Optimize(c.Request.Context(), req.Items)
	if err != nil {
		log.Printf("[BUNDLE] Optimization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Bundle search failed.",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// toListingPayload serializes a listing, NotFound sentinel included.
func toListingPayload(listing domain.Listing) listingPayload {
	return listingPayload{
		Title:          listing.Title,
		Price:          strconv.Itoa(listing.Price),
		Link:           listing.Link,
		Source:         listing.Source,
		EffectivePrice: listing.EffectivePrice,
		OfferText:      listing.OfferText,
	}
}

// bestFinancials computes ownership costs from the cheaper resolved side.
func bestFinancials(query string, comparison *domain.Comparison) *domain.Financials {
	best := 0
	if !comparison.Anchor.IsNotFound() && comparison.Anchor.Price > 0 {
		best = comparison.Anchor.Price
	}
	if !comparison.Best.IsNotFound() && comparison.Best.Price > 0 {
		if best == 0 || comparison.Best.Price < best {
			best = comparison.Best.Price
		}
	}
	if best == 0 {
		return nil
	}
	return usecase.ComputeFinancials(query, best)
}

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// normalizeCacheKey normalizes query text so "Dell XPS" and " dell xps "
// share one cache entry.
func normalizeCacheKey(query string) string {
	key := strings.ToLower(query)
	key = nonAlphanumericRegex.ReplaceAllString(key, "")
	key = multipleSpacesRegex.ReplaceAllString(key, " ")
	return "search:" + strings.TrimSpace(key)
}
