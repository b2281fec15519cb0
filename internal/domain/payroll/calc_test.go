package payroll

import (
	"errors"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestComputeHourlyEmployee(t *testing.T) {
	b := Compute(40, 31.25, 0)
	if b.GrossPay != 1250.00 {
		t.Fatalf("expected gross 1250.00, got %v", b.GrossPay)
	}
	if b.TaxDeduction != 250.00 {
		t.Fatalf("expected tax 250.00, got %v", b.TaxDeduction)
	}
	if b.OtherDeductions != 62.50 {
		t.Fatalf("expected other 62.50, got %v", b.OtherDeductions)
	}
	if b.NetPay != 937.50 {
		t.Fatalf("expected net 937.50, got %v", b.NetPay)
	}
}

func TestDeriveHourlyRateFromSalary(t *testing.T) {
	// 120000 / 52 = 2307.6923 (4dp), / 40 = 57.6923 -> 57.69 (2dp)
	rate, err := DeriveHourlyRate(nil, ptr(120000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 57.69 {
		t.Fatalf("expected derived rate 57.69, got %v", rate)
	}

	b := Compute(40, rate, 0)
	if b.GrossPay != 2307.60 {
		t.Fatalf("expected gross 2307.60, got %v", b.GrossPay)
	}
	if b.TaxDeduction != 461.52 {
		t.Fatalf("expected tax 461.52, got %v", b.TaxDeduction)
	}
	if b.OtherDeductions != 115.38 {
		t.Fatalf("expected other 115.38, got %v", b.OtherDeductions)
	}
	if b.NetPay != 1730.70 {
		t.Fatalf("expected net 1730.70, got %v", b.NetPay)
	}
}

func TestDeriveHourlyRatePrefersExplicitRate(t *testing.T) {
	rate, err := DeriveHourlyRate(ptr(45.50), ptr(120000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 45.50 {
		t.Fatalf("expected explicit rate 45.50, got %v", rate)
	}
}

func TestDeriveHourlyRateIgnoresNonPositiveRate(t *testing.T) {
	rate, err := DeriveHourlyRate(ptr(0), ptr(104000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 104000 / 52 = 2000.0000, / 40 = 50.00
	if rate != 50.00 {
		t.Fatalf("expected 50.00, got %v", rate)
	}
}

func TestDeriveHourlyRateMissingPayInfo(t *testing.T) {
	if _, err := DeriveHourlyRate(nil, nil); !errors.Is(err, ErrPayInfoMissing) {
		t.Fatalf("expected ErrPayInfoMissing, got %v", err)
	}
}

func TestComputeIncludesBonus(t *testing.T) {
	b := Compute(40, 25, 100)
	// gross 1000, tax 200, other 50, net = 1000 + 100 - 200 - 50
	if b.NetPay != 850.00 {
		t.Fatalf("expected net 850.00, got %v", b.NetPay)
	}
}

func TestRoundTotalsSnapsFloatDrift(t *testing.T) {
	// 0.1 + 0.2 accumulates to 0.30000000000000004 in float64.
	s := PreviewSummary{
		TotalGrossPay:        0.1 + 0.2,
		TotalTaxDeduction:    0.1 + 0.2,
		TotalOtherDeductions: 0.1 + 0.2,
		TotalNetPay:          0.1 + 0.2,
	}
	s.roundTotals()
	if s.TotalGrossPay != 0.3 {
		t.Fatalf("expected gross total 0.3, got %v", s.TotalGrossPay)
	}
	if s.TotalTaxDeduction != 0.3 {
		t.Fatalf("expected tax total 0.3, got %v", s.TotalTaxDeduction)
	}
	if s.TotalOtherDeductions != 0.3 {
		t.Fatalf("expected other total 0.3, got %v", s.TotalOtherDeductions)
	}
	if s.TotalNetPay != 0.3 {
		t.Fatalf("expected net total 0.3, got %v", s.TotalNetPay)
	}
}

func TestComputeRoundsHalfUp(t *testing.T) {
	// 37.5 * 33.25 = 1246.875 -> 1246.88; tax 249.376 -> 249.38;
	// other 62.344 -> 62.34; net 1246.88 - 249.38 - 62.34 = 935.16
	b := Compute(37.5, 33.25, 0)
	if b.GrossPay != 1246.88 {
		t.Fatalf("expected gross 1246.88, got %v", b.GrossPay)
	}
	if b.TaxDeduction != 249.38 {
		t.Fatalf("expected tax 249.38, got %v", b.TaxDeduction)
	}
	if b.OtherDeductions != 62.34 {
		t.Fatalf("expected other 62.34, got %v", b.OtherDeductions)
	}
	if b.NetPay != 935.16 {
		t.Fatalf("expected net 935.16, got %v", b.NetPay)
	}
}
