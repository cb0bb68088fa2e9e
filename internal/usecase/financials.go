package usecase

import (
	"math"
	"strings"

	"github.com/dealscope/backend/internal/domain"
)

// Ownership-cost model constants
const (
	appleDepreciationRate   = 0.20 // Apple hardware holds value
	defaultDepreciationRate = 0.35
	ownershipYears          = 2
	ownershipDays           = 730
	emiInterestRate         = 0.14 // flat annual interest
	emiMonths               = 12
)

// ComputeFinancials estimates the true cost of owning the product over two
// years: resale value after depreciation, net ownership cost, real daily
// cost, and a 12-month EMI estimate. Returns nil when there is no usable
// price.
func ComputeFinancials(productName string, price int) *domain.Financials {
	if price <= 0 {
		return nil
	}

	nameLower := strings.ToLower(productName)
	isApple := strings.Contains(nameLower, "apple") ||
		strings.Contains(nameLower, "iphone") ||
		strings.Contains(nameLower, "macbook")

	rate := defaultDepreciationRate
	if isApple {
		rate = appleDepreciationRate
	}

	resaleValue := int(math.Floor(float64(price) * math.Pow(1-rate, ownershipYears)))
	netCost := price - resaleValue
	dailyCost := netCost / ownershipDays

	totalInterest := float64(price) * emiInterestRate
	monthlyEMI := int(math.Floor((float64(price) + totalInterest) / emiMonths))

	return &domain.Financials{
		IsHighResale:     isApple,
		ResaleValue:      resaleValue,
		NetCost:          netCost,
		DailyCost:        dailyCost,
		MonthlyEMI:       monthlyEMI,
		DepreciationRate: rate * 100,
	}
}
