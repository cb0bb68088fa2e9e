package usecase

import (
	"log"
	"math"

	"github.com/dealscope/backend/internal/domain"
)

// Scoring weights and gates for cross-retailer matching
const (
	defaultPriceVarianceLimit  = 0.6  // price gap above this forces a zero score
	defaultConfidenceThreshold = 0.20 // minimum winning score to accept a match
	textWeight                 = 0.7  // title similarity share of the score
	priceWeight                = 0.3  // price proximity share of the score
)

// MatcherConfig holds configuration for the matcher service
type MatcherConfig struct {
	PriceVarianceLimit  float64
	ConfidenceThreshold float64
	EnableDebugLogging  bool
}

// MatcherService picks the candidate listing most likely to be the same
// physical product as the anchor, with no shared identifier across retailers.
type MatcherService struct {
	priceVarianceLimit  float64
	confidenceThreshold float64
	enableDebugLogging  bool
}

// NewMatcherService creates a new matcher service with the given configuration
func NewMatcherService(config MatcherConfig) *MatcherService {
	limit := config.PriceVarianceLimit
	if limit <= 0 {
		limit = defaultPriceVarianceLimit
	}

	threshold := config.ConfidenceThreshold
	if threshold <= 0 {
		threshold = defaultConfidenceThreshold
	}

	return &MatcherService{
		priceVarianceLimit:  limit,
		confidenceThreshold: threshold,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// SelectBestMatch scores every candidate against the anchor and returns the
// winner, or the NotFound sentinel when no candidate clears the confidence
// threshold. Ties go to the first-encountered candidate (stable input order).
// Without an anchor there is nothing to score against, so the first candidate
// is returned unscored on the weaker fallback path.
func (s *MatcherService) SelectBestMatch(anchor *domain.Listing, candidates []domain.Listing) domain.MatchResult {
	if len(candidates) == 0 {
		return domain.MatchResult{Best: domain.NotFoundListing("")}
	}

	if anchor == nil || anchor.IsNotFound() {
		return domain.MatchResult{
			Best:     candidates[0],
			Fallback: true,
		}
	}

	best := domain.NotFoundListing("")
	highestScore := -1.0

	for _, candidate := range candidates {
		score := s.scoreCandidate(candidate, *anchor)

		if s.enableDebugLogging {
			log.Printf("[MATCH] Candidate: ₹%d | Score: %.2f | Title: %q", candidate.Price, score, candidate.Title)
		}

		// Strictly greater keeps the first candidate on ties.
		if score > highestScore {
			highestScore = score
			best = candidate
		}
	}

	if highestScore < s.confidenceThreshold {
		if s.enableDebugLogging {
			log.Printf("[MATCH] No confident match (best score %.2f)", highestScore)
		}
		return domain.MatchResult{Best: domain.NotFoundListing("")}
	}

	return domain.MatchResult{Best: best, Confidence: highestScore}
}

// scoreCandidate computes the weighted match score in [0,1].
// A price gap above the variance limit presumes a different item entirely
// (accessory, bundle, wrong variant) and zeroes the score no matter how
// similar the titles are.
func (s *MatcherService) scoreCandidate(candidate, anchor domain.Listing) float64 {
	if anchor.Price <= 0 {
		return 0
	}

	priceDiffRatio := math.Abs(float64(candidate.Price-anchor.Price)) / float64(anchor.Price)
	if priceDiffRatio > s.priceVarianceLimit {
		return 0
	}

	textScore := TitleSimilarity(candidate.Title, anchor.Title)
	priceScore := 1 - priceDiffRatio

	return textScore*textWeight + priceScore*priceWeight
}
