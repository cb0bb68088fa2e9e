package usecase

import "testing"

func TestComputeFinancials(t *testing.T) {
	t.Run("apple hardware depreciates at 20%", func(t *testing.T) {
		got := ComputeFinancials("Apple iPhone 15", 100000)
		if got == nil {
			t.Fatal("expected financials, got nil")
		}

		if !got.IsHighResale {
			t.Error("expected IsHighResale for an iPhone")
		}
		if got.DepreciationRate != 20 {
			t.Errorf("DepreciationRate = %v, want 20", got.DepreciationRate)
		}
		// 100000 * 0.8^2
		if got.ResaleValue != 64000 {
			t.Errorf("ResaleValue = %d, want 64000", got.ResaleValue)
		}
		if got.NetCost != 36000 {
			t.Errorf("NetCost = %d, want 36000", got.NetCost)
		}
		if got.DailyCost != 36000/730 {
			t.Errorf("DailyCost = %d, want %d", got.DailyCost, 36000/730)
		}
		// (100000 + 14000) / 12
		if got.MonthlyEMI != 9500 {
			t.Errorf("MonthlyEMI = %d, want 9500", got.MonthlyEMI)
		}
	})

	t.Run("other brands depreciate at 35%", func(t *testing.T) {
		got := ComputeFinancials("Dell Inspiron 15 3520", 50000)
		if got == nil {
			t.Fatal("expected financials, got nil")
		}

		if got.IsHighResale {
			t.Error("IsHighResale should be false for non-Apple hardware")
		}
		if got.DepreciationRate != 35 {
			t.Errorf("DepreciationRate = %v, want 35", got.DepreciationRate)
		}
		// 50000 * 0.65^2 = 21125
		if got.ResaleValue != 21125 {
			t.Errorf("ResaleValue = %d, want 21125", got.ResaleValue)
		}
		if got.NetCost != 28875 {
			t.Errorf("NetCost = %d, want 28875", got.NetCost)
		}
		// (50000 + 7000) / 12 = 4750
		if got.MonthlyEMI != 4750 {
			t.Errorf("MonthlyEMI = %d, want 4750", got.MonthlyEMI)
		}
	})

	t.Run("macbook counts as apple", func(t *testing.T) {
		got := ComputeFinancials("MacBook Air M2", 90000)
		if got == nil || !got.IsHighResale {
			t.Errorf("got %+v, want high-resale financials", got)
		}
	})

	t.Run("no usable price yields nil", func(t *testing.T) {
		if got := ComputeFinancials("Dell Inspiron", 0); got != nil {
			t.Errorf("got %+v, want nil for zero price", got)
		}
		if got := ComputeFinancials("Dell Inspiron", -5); got != nil {
			t.Errorf("got %+v, want nil for negative price", got)
		}
	})
}
