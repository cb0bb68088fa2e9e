package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dealscope/backend/internal/domain"
)

// Offer extraction constants
const (
	bankOfferRate      = 0.10
	bankOfferCeiling   = 1500 // bank discounts are rarely uncapped; safe estimate
	defaultCouponValue = 500
	cashbackRate       = 0.05
)

// noOffersDescription is returned when no rule fires
const noOffersDescription = "No major offers found"

// Package-level compiled regex patterns for performance
var (
	couponAmountRegex = regexp.MustCompile(`save ₹(\d+)`)
	flatAmountRegex   = regexp.MustCompile(`flat ₹(\d+)`)
)

// combineMode controls how a rule's discount folds into the running total.
type combineMode int

const (
	// replaceIfGreater adopts the rule's discount and label only when it
	// strictly beats the current running discount.
	replaceIfGreater combineMode = iota
	// accumulate adds the rule's discount on top of the running total and
	// appends its label instead of replacing it.
	accumulate
)

// offerRule is one independently testable promotional heuristic. Rules are
// evaluated in fixed table order over the lowercased raw text.
type offerRule struct {
	name     string
	trigger  func(text string) bool
	discount func(price int, text string) (float64, bool)
	label    string
	mode     combineMode
}

// offerRules is the ordered rule table. Order matters: the coupon rule
// accumulates on top of whatever the bank rule adopted, and later
// replace-if-greater rules compare against the combined total.
var offerRules = []offerRule{
	{
		name: "bank",
		trigger: func(text string) bool {
			return strings.Contains(text, "10% instant discount") ||
				strings.Contains(text, "10% off") ||
				strings.Contains(text, "bank offer") ||
				strings.Contains(text, "instant discount")
		},
		discount: func(price int, _ string) (float64, bool) {
			d := float64(price) * bankOfferRate
			if d > bankOfferCeiling {
				d = bankOfferCeiling
			}
			return d, true
		},
		label: "10% Bank Offer",
		mode:  replaceIfGreater,
	},
	{
		name: "coupon",
		trigger: func(text string) bool {
			return strings.Contains(text, "coupon")
		},
		discount: func(_ int, text string) (float64, bool) {
			if m := couponAmountRegex.FindStringSubmatch(text); m != nil {
				value, err := strconv.Atoi(m[1])
				if err == nil {
					return float64(value), true
				}
			}
			// Amount not stated; assume the common coupon value.
			return defaultCouponValue, true
		},
		label: "Coupon",
		mode:  accumulate,
	},
	{
		name: "cashback",
		trigger: func(text string) bool {
			return strings.Contains(text, "5% cashback") || strings.Contains(text, "axis bank")
		},
		discount: func(price int, _ string) (float64, bool) {
			return float64(price) * cashbackRate, true
		},
		label: "5% Axis Cashback",
		mode:  replaceIfGreater,
	},
	{
		name: "flat",
		trigger: func(text string) bool {
			return strings.Contains(text, "flat") && strings.Contains(text, "off")
		},
		discount: func(_ int, text string) (float64, bool) {
			m := flatAmountRegex.FindStringSubmatch(text)
			if m == nil {
				return 0, false
			}
			value, err := strconv.Atoi(m[1])
			if err != nil {
				return 0, false
			}
			return float64(value), true
		},
		label: "Flat Discount",
		mode:  replaceIfGreater,
	},
}

// OfferParser interprets scraped promotional text (bank offers, coupons,
// cashback, flat discounts) into an effective price.
type OfferParser struct {
	clampNegative bool
}

// NewOfferParser creates a new offer parser. When clampNegative is set,
// stacked discounts can never push the effective price below zero; the
// OfferResult is flagged instead.
func NewOfferParser(clampNegative bool) *OfferParser {
	return &OfferParser{clampNegative: clampNegative}
}

// ParseOffers runs the rule table over the raw listing text and folds the
// fired rules into a total discount and effective price. Both are floored to
// whole currency units. A listing with no text or no usable price cannot
// carry an offer.
func (p *OfferParser) ParseOffers(rawText string, price int) domain.OfferResult {
	if rawText == "" || price <= 0 {
		return domain.OfferResult{EffectivePrice: price, Description: noOffersDescription}
	}

	text := strings.ToLower(rawText)

	totalDiscount := 0.0
	description := ""

	for _, rule := range offerRules {
		if !rule.trigger(text) {
			continue
		}

		amount, ok := rule.discount(price, text)
		if !ok {
			continue
		}

		switch rule.mode {
		case accumulate:
			totalDiscount += amount
			if description == "" {
				description = rule.label + " Applied"
			} else {
				description = description + " + " + rule.label
			}
		case replaceIfGreater:
			if amount > totalDiscount {
				totalDiscount = amount
				description = rule.label
			}
		}
	}

	if totalDiscount == 0 {
		return domain.OfferResult{EffectivePrice: price, Description: noOffersDescription}
	}

	result := domain.OfferResult{
		Discount:       int(math.Floor(totalDiscount)),
		EffectivePrice: int(math.Floor(float64(price) - totalDiscount)),
		Description:    description,
	}

	if p.clampNegative && result.EffectivePrice < 0 {
		result.EffectivePrice = 0
		result.Clamped = true
	}

	return result
}
