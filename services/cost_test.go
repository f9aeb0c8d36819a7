// ABOUTME: Tests for the CAPEX/OPEX/TCO cost translation
// ABOUTME: Hand-computed scenarios against the built-in tier table

package services

import (
	"errors"
	"math"
	"testing"

	"github.com/fronthaul-tools/capacity-planner/models"
)

func TestTranslateSameTier(t *testing.T) {
	// Peak and optimized land on the same 10G tier: no hardware or power
	// delta, only the capacity license shrinks.
	// license = (10 - 6.5) * 25000 = 87500
	table := models.DefaultTierTable()
	translator := NewCostTranslator(table)
	tier, _ := table.Find(10)

	cost, err := translator.Translate(tier, tier, 10, 6.5, 25000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cost.HardwareDeltaINR != 0 {
		t.Errorf("Expected hardware delta 0, got %.2f", cost.HardwareDeltaINR)
	}
	if cost.LicenseDeltaINR != 87500 {
		t.Errorf("Expected license delta 87500, got %.2f", cost.LicenseDeltaINR)
	}
	if cost.TotalCapexINR != 87500 {
		t.Errorf("Expected CAPEX 87500, got %.2f", cost.TotalCapexINR)
	}
	if cost.PowerDeltaKW != 0 {
		t.Errorf("Expected power delta 0, got %.4f", cost.PowerDeltaKW)
	}
	if cost.AnnualOpexINR != 0 {
		t.Errorf("Expected annual OPEX 0, got %.2f", cost.AnnualOpexINR)
	}
	if cost.FiveYearTCOINR != 87500 {
		t.Errorf("Expected 5-year TCO 87500, got %.2f", cost.FiveYearTCOINR)
	}
}

func TestTranslateTierDowngrade(t *testing.T) {
	// Peak provisioning wants 10G (170000), optimized fits 5G (120000).
	// hardware = 50000
	// license  = (8.2 - 3.0) * 25000 = 130000
	// power    = (10 - 5) * 2.5 / 1000 = 0.0125 kW
	// opex     = 0.0125 * 8760 * 8.5 * 1.2 = 1116.90
	// tco      = 180000 + 5 * 1116.90 = 185584.50
	table := models.DefaultTierTable()
	translator := NewCostTranslator(table)
	peakTier, _ := table.Find(10)
	optTier, _ := table.Find(5)

	cost, err := translator.Translate(peakTier, optTier, 8.2, 3.0, 25000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cost.HardwareDeltaINR != 50000 {
		t.Errorf("Expected hardware delta 50000, got %.2f", cost.HardwareDeltaINR)
	}
	if cost.LicenseDeltaINR != 130000 {
		t.Errorf("Expected license delta 130000, got %.2f", cost.LicenseDeltaINR)
	}
	if math.Abs(cost.PowerDeltaKW-0.0125) > 1e-9 {
		t.Errorf("Expected power delta 0.0125 kW, got %.6f", cost.PowerDeltaKW)
	}
	if math.Abs(cost.AnnualOpexINR-1116.90) > 0.01 {
		t.Errorf("Expected annual OPEX 1116.90, got %.2f", cost.AnnualOpexINR)
	}
	if math.Abs(cost.FiveYearTCOINR-185584.50) > 0.01 {
		t.Errorf("Expected 5-year TCO 185584.50, got %.2f", cost.FiveYearTCOINR)
	}
}

func TestTranslateUnknownTier(t *testing.T) {
	table := models.DefaultTierTable()
	translator := NewCostTranslator(table)
	optTier, _ := table.Find(10)

	_, err := translator.Translate(models.SpeedTier{SpeedGbps: 7}, optTier, 10, 6.5, 25000)
	var lookupErr *models.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Expected LookupError for unknown tier, got %v", err)
	}
	if lookupErr.SpeedGbps != 7 {
		t.Errorf("Expected lookup error for 7G, got %gG", lookupErr.SpeedGbps)
	}
}
