package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dediosardie/dns-maynilad-vmms/config"
	"github.com/dediosardie/dns-maynilad-vmms/models"
)

func TestAnalyzeFuelEfficiencyUnconfigured(t *testing.T) {
	svc := NewAnalysisService(&config.Config{})
	if svc.IsConfigured() {
		t.Fatalf("expected service unconfigured without an API key")
	}
	_, err := svc.AnalyzeFuelEfficiency(context.Background(), nil, nil, nil)
	if !errors.Is(err, ErrAnalysisNotConfigured) {
		t.Fatalf("expected ErrAnalysisNotConfigured, got %v", err)
	}
}

func TestPrepareFuelDataSummary(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: "v1", Make: "Toyota", Model: "Hilux", PlateNumber: "ABC-1234"},
		{ID: "v2", Make: "Isuzu", Model: "D-Max", PlateNumber: "XYZ-9876"},
	}
	drivers := []models.Driver{
		{ID: "d1", FullName: "Juan Dela Cruz"},
	}
	transactions := []models.FuelTransaction{
		{VehicleID: "v1", DriverID: "d1", Liters: 40, Cost: 2400},
		{VehicleID: "v1", DriverID: "d1", Liters: 60, Cost: 3600},
	}

	summary := prepareFuelDataSummary(transactions, vehicles, drivers)

	if !strings.Contains(summary, "Total Transactions: 2") {
		t.Fatalf("expected transaction count in summary:\n%s", summary)
	}
	if !strings.Contains(summary, "Total Fuel Consumed: 100.00 liters") {
		t.Fatalf("expected total liters in summary:\n%s", summary)
	}
	if !strings.Contains(summary, "Average Cost Per Liter: 60.00") {
		t.Fatalf("expected average cost per liter in summary:\n%s", summary)
	}
	if !strings.Contains(summary, "Toyota Hilux (ABC-1234): 2 transactions") {
		t.Fatalf("expected per-vehicle stats in summary:\n%s", summary)
	}
	// Vehicles with no transactions are omitted.
	if strings.Contains(summary, "XYZ-9876") {
		t.Fatalf("expected idle vehicle omitted from summary:\n%s", summary)
	}
	if !strings.Contains(summary, "Juan Dela Cruz: 2 transactions") {
		t.Fatalf("expected per-driver stats in summary:\n%s", summary)
	}
}

func TestPrepareFuelDataSummaryEmpty(t *testing.T) {
	summary := prepareFuelDataSummary(nil, nil, nil)
	if !strings.Contains(summary, "Total Transactions: 0") {
		t.Fatalf("expected zero-transaction summary:\n%s", summary)
	}
	if !strings.Contains(summary, "Average Cost Per Liter: 0.00") {
		t.Fatalf("expected zero average without division:\n%s", summary)
	}
}
