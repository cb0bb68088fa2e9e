package domain

// Listing represents a single scraped product listing from one retailer.
// Price is in whole currency units (rupees); 0 together with the NotFound
// title means the listing is the explicit "not found" sentinel, never nil.
type Listing struct {
	Title          string `json:"title"`
	Price          int    `json:"price"`
	Link           string `json:"link"`
	Source         string `json:"source"` // e.g., "Amazon", "Flipkart"
	RawText        string `json:"-"`      // page text for offer parsing, consumed once
	EffectivePrice int    `json:"effective_price,omitempty"`
	OfferText      string `json:"offer_text,omitempty"`
}

// NotFoundTitle marks the sentinel listing used whenever a retailer side
// could not be resolved. Callers branch on IsNotFound, never on nil.
const NotFoundTitle = "Not Found"

// NotFoundListing returns the sentinel for an unresolved retailer side.
func NotFoundListing(source string) Listing {
	return Listing{
		Title:  NotFoundTitle,
		Price:  0,
		Link:   "#",
		Source: source,
	}
}

// IsNotFound reports whether the listing is the unresolved sentinel.
func (l Listing) IsNotFound() bool {
	return l.Title == NotFoundTitle && l.Price == 0
}

// MatchResult is the outcome of scoring a candidate pool against an anchor.
// Best is the NotFound sentinel when no candidate scored above the
// confidence threshold. Fallback marks the weaker anchorless path where the
// first candidate is returned unscored.
type MatchResult struct {
	Best       Listing `json:"best"`
	Confidence float64 `json:"confidence"` // 0-1 weighted score
	Fallback   bool    `json:"fallback,omitempty"`
}

// OfferResult holds the interpretation of promotional text for one listing.
type OfferResult struct {
	Discount       int    `json:"discount"`
	EffectivePrice int    `json:"effectivePrice"`
	Description    string `json:"description"`
	Clamped        bool   `json:"clamped,omitempty"` // stacked discounts exceeded the listed price
}

// Comparison is one full cross-retailer resolution for a query.
type Comparison struct {
	Anchor     Listing `json:"anchor"`
	Best       Listing `json:"best"`
	Confidence float64 `json:"confidence"`
}

// Financials estimates the true cost of ownership for a resolved product.
type Financials struct {
	IsHighResale     bool    `json:"isHighResale"`
	ResaleValue      int     `json:"resaleValue"`
	NetCost          int     `json:"netCost"`
	DailyCost        int     `json:"dailyCost"`
	MonthlyEMI       int     `json:"monthlyEMI"`
	DepreciationRate float64 `json:"depreciationRate"` // percent per year
}

// BundleItem is the per-item outcome of a bundle optimization.
type BundleItem struct {
	Item    string `json:"item"`
	BuyFrom string `json:"buyFrom"` // retailer tag or "Unavailable"
	Price   int    `json:"price"`
	Link    string `json:"link,omitempty"`
}

// BundleResult compares buying a cart from a single retailer against
// splitting it across both.
type BundleResult struct {
	AnchorTotal    int          `json:"anchorTotal"`
	CandidateTotal int          `json:"candidateTotal"`
	AnchorValid    bool         `json:"anchorValid"`    // false when any item was out of stock there
	CandidateValid bool         `json:"candidateValid"` // false when any item was out of stock there
	SmartSplit     int          `json:"smartSplitTotal"`
	SplitValid     bool         `json:"splitValid"`
	Savings        int          `json:"savings"`
	Strategy       []BundleItem `json:"strategy"`
}
