package usecase

import (
	"log"
	"strings"
)

// genericWords are brand names, device classes and generation qualifiers that
// never identify a specific model. Tokens surviving this list are the "model
// tokens" (e.g. "a10", "3520", "m2") that pin a query to one product.
var genericWords = map[string]bool{
	// Brands
	"samsung": true, "iphone": true, "dell": true, "hp": true,
	"lenovo": true, "apple": true, "macbook": true,
	// Device classes
	"mobile": true, "phone": true, "laptop": true,
	// Generation / variant qualifiers
	"gen": true, "5g": true, "4g": true, "pro": true, "air": true,
}

// ModelFilter decides whether a listing title plausibly refers to the same
// model the user searched for. It vetoes off-model anchors and pre-filters
// the candidate pool.
type ModelFilter struct {
	enableDebugLogging bool
}

// NewModelFilter creates a new model filter
func NewModelFilter(enableDebugLogging bool) *ModelFilter {
	return &ModelFilter{enableDebugLogging: enableDebugLogging}
}

// MatchesModel reports whether the title contains every model token of the
// query as a case-insensitive substring. A query with no model tokens (e.g.
// "samsung phone") has nothing to disambiguate and matches loosely.
// The title is not punctuation-normalized; containment is on the raw
// lowercased text.
func (f *ModelFilter) MatchesModel(query, title string) bool {
	titleLower := strings.ToLower(title)
	tokens := ModelTokens(query)

	if len(tokens) == 0 {
		return true
	}

	for _, token := range tokens {
		if !strings.Contains(titleLower, token) {
			if f.enableDebugLogging {
				log.Printf("[FILTER] Title %q missing model token %q", title, token)
			}
			return false
		}
	}

	return true
}

// ModelTokens extracts the product-defining tokens from a query: whitespace
// split, lowercased, generic words dropped, single characters dropped.
func ModelTokens(query string) []string {
	words := strings.Fields(strings.ToLower(query))

	var tokens []string
	for _, word := range words {
		if genericWords[word] {
			continue
		}
		if len(word) < 2 {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}
