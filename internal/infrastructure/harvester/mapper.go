package harvester

import "github.com/dealscope/backend/internal/domain"

// wireListing is the harvester service's wire representation of one listing.
// raw_text_for_offers is the card's inner text, kept only long enough for
// offer parsing.
type wireListing struct {
	Title   string `json:"title"`
	Price   int    `json:"price"`
	Link    string `json:"link"`
	Source  string `json:"source"`
	RawText string `json:"raw_text_for_offers"`
}

// wireCandidates is the harvester service's candidate-pool envelope.
type wireCandidates struct {
	Candidates []wireListing `json:"candidates"`
	Total      int           `json:"total"`
}

// MapToListing converts a harvester wire listing to the domain model.
// Negative prices are scrape glitches and collapse to the unavailable value.
func MapToListing(wire *wireListing) domain.Listing {
	price := wire.Price
	if price < 0 {
		price = 0
	}

	return domain.Listing{
		Title:   wire.Title,
		Price:   price,
		Link:    wire.Link,
		Source:  wire.Source,
		RawText: wire.RawText,
	}
}
