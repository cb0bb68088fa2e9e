package usecase

import (
	"context"
	"log"

	"github.com/dealscope/backend/internal/domain"
)

// ResolverConfig holds configuration for the resolver service
type ResolverConfig struct {
	MaxCandidates       int
	PriceVarianceLimit  float64
	ConfidenceThreshold float64
	ClampNegativePrices bool
	EnableDebugLogging  bool
}

// ResolverService sequences one cross-retailer resolution: anchor and
// candidate acquisition, model filtering, matching, and offer parsing.
type ResolverService struct {
	harvester          domain.Harvester
	filter             *ModelFilter
	matcher            *MatcherService
	offers             *OfferParser
	maxCandidates      int
	enableDebugLogging bool
}

// NewResolverService creates a new resolver service with dependencies
func NewResolverService(harvester domain.Harvester, config ResolverConfig) *ResolverService {
	maxCandidates := config.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 10
	}

	return &ResolverService{
		harvester: harvester,
		filter:    NewModelFilter(config.EnableDebugLogging),
		matcher: NewMatcherService(MatcherConfig{
			PriceVarianceLimit:  config.PriceVarianceLimit,
			ConfidenceThreshold: config.ConfidenceThreshold,
			EnableDebugLogging:  config.EnableDebugLogging,
		}),
		offers:             NewOfferParser(config.ClampNegativePrices),
		maxCandidates:      maxCandidates,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Resolve runs one full resolution for a query. Either retailer failing is
// downgraded to that side's NotFound sentinel; it never aborts the other
// side's pipeline. The returned Comparison always carries well-formed
// listings, never nils.
func (s *ResolverService) Resolve(ctx context.Context, query string) (*domain.Comparison, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	anchor, candidates := s.fetchBothSides(ctx, query)

	// A wrong-model anchor must never propagate downstream.
	if anchor != nil && !s.filter.MatchesModel(query, anchor.Title) {
		if s.enableDebugLogging {
			log.Printf("[RESOLVE] Anchor mismatch: searched %q, found %q. Discarding.", query, anchor.Title)
		}
		anchor = nil
	}

	// The pool is bounded at harvest time; anything past the cap is never
	// seen, not even by the model filter.
	if len(candidates) > s.maxCandidates {
		candidates = candidates[:s.maxCandidates]
	}
	candidates = s.filterCandidates(query, candidates)

	match := s.matcher.SelectBestMatch(anchor, candidates)

	comparison := &domain.Comparison{
		Anchor:     domain.NotFoundListing(""),
		Best:       match.Best,
		Confidence: match.Confidence,
	}

	if anchor != nil {
		comparison.Anchor = s.applyOffers(*anchor)
	}
	if !comparison.Best.IsNotFound() {
		comparison.Best = s.applyOffers(comparison.Best)
	}

	return comparison, nil
}

// fetchBothSides issues the two harvester calls concurrently and joins them.
// The calls carry no shared state; a failure on one side only empties that
// side.
func (s *ResolverService) fetchBothSides(ctx context.Context, query string) (*domain.Listing, []domain.Listing) {
	type anchorResult struct {
		listing *domain.Listing
		err     error
	}
	type candidatesResult struct {
		listings []domain.Listing
		err      error
	}

	anchorCh := make(chan anchorResult, 1)
	candidatesCh := make(chan candidatesResult, 1)

	go func() {
		listing, err := s.harvester.FetchAnchor(ctx, query)
		anchorCh <- anchorResult{listing, err}
	}()
	go func() {
		listings, err := s.harvester.FetchCandidates(ctx, query)
		candidatesCh <- candidatesResult{listings, err}
	}()

	ar := <-anchorCh
	cr := <-candidatesCh

	if ar.err != nil {
		log.Printf("[RESOLVE] Anchor harvest failed for %q: %v", query, ar.err)
		ar.listing = nil
	}
	if cr.err != nil {
		log.Printf("[RESOLVE] Candidate harvest failed for %q: %v", query, cr.err)
		cr.listings = nil
	}

	return ar.listing, cr.listings
}

// filterCandidates applies the model filter to the pool. When any candidate
// passes, only the passing ones survive (strict mode); when none pass, the
// unfiltered pool is kept (loose fallback). The two modes are never mixed.
func (s *ResolverService) filterCandidates(query string, candidates []domain.Listing) []domain.Listing {
	var strict []domain.Listing
	for _, candidate := range candidates {
		if s.filter.MatchesModel(query, candidate.Title) {
			strict = append(strict, candidate)
		}
	}

	if len(strict) > 0 {
		if s.enableDebugLogging {
			log.Printf("[RESOLVE] Filtered to %d strict matches out of %d", len(strict), len(candidates))
		}
		return strict
	}

	if s.enableDebugLogging && len(candidates) > 0 {
		log.Printf("[RESOLVE] No strict model matches; keeping loose pool of %d", len(candidates))
	}
	return candidates
}

// applyOffers parses the listing's own promotional text against its own
// price, attaches the result, and drops the raw text, which is never
// retained downstream.
func (s *ResolverService) applyOffers(listing domain.Listing) domain.Listing {
	offer := s.offers.ParseOffers(listing.RawText, listing.Price)
	listing.EffectivePrice = offer.EffectivePrice
	listing.OfferText = offer.Description
	listing.RawText = ""
	return listing
}
