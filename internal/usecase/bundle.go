package usecase

import (
	"context"
	"sync"

	"github.com/dealscope/backend/internal/domain"
)

// BundleService prices a multi-item cart across both retailers and works out
// whether splitting the cart beats buying everything from one store.
type BundleService struct {
	resolver *ResolverService
}

// NewBundleService creates a new bundle service
func NewBundleService(resolver *ResolverService) *BundleService {
	return &BundleService{resolver: resolver}
}

// Optimize resolves every item concurrently, totals each retailer's cart,
// and builds the cheapest mixed "smart split" strategy. An item unavailable
// at one retailer invalidates that retailer's single-store total; an item
// unavailable everywhere invalidates the split total too.
func (s *BundleService) Optimize(ctx context.Context, items []string) (*domain.BundleResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	comparisons := make([]*domain.Comparison, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item string) {
			defer wg.Done()
			// Per-item resolution failures surface as NotFound sides below.
			comparison, err := s.resolver.Resolve(ctx, item)
			if err != nil {
				comparison = &domain.Comparison{
					Anchor: domain.NotFoundListing(""),
					Best:   domain.NotFoundListing(""),
				}
			}
			comparisons[i] = comparison
		}(i, item)
	}
	wg.Wait()

	result := &domain.BundleResult{
		AnchorValid:    true,
		CandidateValid: true,
		SplitValid:     true,
	}

	for i, comparison := range comparisons {
		anchorPrice, anchorOK := usablePrice(comparison.Anchor)
		bestPrice, bestOK := usablePrice(comparison.Best)

		if !anchorOK {
			result.AnchorValid = false
		} else {
			result.AnchorTotal += anchorPrice
		}
		if !bestOK {
			result.CandidateValid = false
		} else {
			result.CandidateTotal += bestPrice
		}

		entry := domain.BundleItem{Item: items[i], BuyFrom: "Unavailable"}
		switch {
		case anchorOK && (!bestOK || anchorPrice < bestPrice):
			entry.BuyFrom = comparison.Anchor.Source
			entry.Price = anchorPrice
			entry.Link = comparison.Anchor.Link
			result.SmartSplit += anchorPrice
		case bestOK:
			entry.BuyFrom = comparison.Best.Source
			entry.Price = bestPrice
			entry.Link = comparison.Best.Link
			result.SmartSplit += bestPrice
		default:
			result.SplitValid = false
		}
		result.Strategy = append(result.Strategy, entry)
	}

	// Savings of the split cart versus the cheapest complete single store.
	cheapestStore := -1
	if result.AnchorValid {
		cheapestStore = result.AnchorTotal
	}
	if result.CandidateValid && (cheapestStore < 0 || result.CandidateTotal < cheapestStore) {
		cheapestStore = result.CandidateTotal
	}
	if result.SplitValid && cheapestStore >= 0 && cheapestStore > result.SmartSplit {
		result.Savings = cheapestStore - result.SmartSplit
	}

	return result, nil
}

// usablePrice reports a listing's price when the side resolved to a real
// product with a non-zero price.
func usablePrice(listing domain.Listing) (int, bool) {
	if listing.IsNotFound() || listing.Price <= 0 {
		return 0, false
	}
	return listing.Price, true
}
