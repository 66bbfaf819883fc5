package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/services"
	"github.com/dediosardie/dns-maynilad-vmms/utils"
)

type ReportController struct {
	db        *gorm.DB
	disposals *services.DisposalService
}

func NewReportController(db *gorm.DB, disposals *services.DisposalService) *ReportController {
	return &ReportController{db: db, disposals: disposals}
}

type FleetReport struct {
	TotalVehicles       int64                   `json:"total_vehicles"`
	ActiveVehicles      int64                   `json:"active_vehicles"`
	InMaintenance       int64                   `json:"in_maintenance"`
	Disposed            int64                   `json:"disposed"`
	UtilizationRate     float64                 `json:"utilization_rate"`
	AverageFleetAge     float64                 `json:"average_fleet_age"`
	TotalDrivers        int64                   `json:"total_drivers"`
	ActiveDrivers       int64                   `json:"active_drivers"`
	TripsInProgress     int64                   `json:"trips_in_progress"`
	TripsCompleted      int64                   `json:"trips_completed"`
	TotalDistanceKm     float64                 `json:"total_distance_km"`
	MaintenanceCost     float64                 `json:"maintenance_cost"`
	PendingMaintenance  int64                   `json:"pending_maintenance"`
	FuelCost            float64                 `json:"fuel_cost"`
	FuelLiters          float64                 `json:"fuel_liters"`
	OpenIncidents       int64                   `json:"open_incidents"`
	IncidentsBySeverity map[string]int64        `json:"incidents_by_severity"`
	ExpiringDocuments   int64                   `json:"expiring_documents"`
	Disposal            *services.DisposalStats `json:"disposal"`
}

// GetDashboard aggregates the fleet-wide numbers shown on the reporting
// dashboard. Cost figures are scoped to the current calendar year.
func (rc *ReportController) GetDashboard(c *gin.Context) {
	now := time.Now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	report := FleetReport{IncidentsBySeverity: map[string]int64{}}

	rc.db.Model(&models.Vehicle{}).Count(&report.TotalVehicles)
	rc.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusActive).Count(&report.ActiveVehicles)
	rc.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusMaintenance).Count(&report.InMaintenance)
	rc.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusDisposed).Count(&report.Disposed)
	if report.TotalVehicles > 0 {
		report.UtilizationRate = float64(report.ActiveVehicles) / float64(report.TotalVehicles) * 100
	}

	var avgYear float64
	rc.db.Model(&models.Vehicle{}).
		Where("status != ?", models.VehicleStatusDisposed).
		Select("COALESCE(AVG(year), 0)").Scan(&avgYear)
	if avgYear > 0 {
		report.AverageFleetAge = float64(now.Year()) - avgYear
	}

	rc.db.Model(&models.Driver{}).Count(&report.TotalDrivers)
	rc.db.Model(&models.Driver{}).Where("status = ?", models.DriverStatusActive).Count(&report.ActiveDrivers)

	rc.db.Model(&models.Trip{}).Where("status = ?", models.TripStatusInProgress).Count(&report.TripsInProgress)
	rc.db.Model(&models.Trip{}).Where("status = ?", models.TripStatusCompleted).Count(&report.TripsCompleted)
	rc.db.Model(&models.Trip{}).
		Where("status = ?", models.TripStatusCompleted).
		Select("COALESCE(SUM(distance_km), 0)").Scan(&report.TotalDistanceKm)

	rc.db.Model(&models.Maintenance{}).
		Where("status = ? AND scheduled_date >= ?", models.MaintenanceStatusCompleted, yearStart).
		Select("COALESCE(SUM(cost), 0)").Scan(&report.MaintenanceCost)
	rc.db.Model(&models.Maintenance{}).Where("status = ?", models.MaintenanceStatusPending).Count(&report.PendingMaintenance)

	rc.db.Model(&models.FuelTransaction{}).
		Where("transaction_date >= ?", yearStart).
		Select("COALESCE(SUM(cost), 0)").Scan(&report.FuelCost)
	rc.db.Model(&models.FuelTransaction{}).
		Where("transaction_date >= ?", yearStart).
		Select("COALESCE(SUM(liters), 0)").Scan(&report.FuelLiters)

	rc.db.Model(&models.Incident{}).
		Where("status IN ?", []models.IncidentStatus{models.IncidentStatusReported, models.IncidentStatusUnderReview}).
		Count(&report.OpenIncidents)
	for _, severity := range []models.IncidentSeverity{
		models.SeverityMinor, models.SeverityModerate, models.SeveritySevere, models.SeverityCritical,
	} {
		var count int64
		rc.db.Model(&models.Incident{}).Where("severity = ?", severity).Count(&count)
		report.IncidentsBySeverity[string(severity)] = count
	}

	rc.db.Model(&models.ComplianceDocument{}).
		Where("status IN ?", []models.DocumentStatus{models.DocumentStatusExpiringSoon, models.DocumentStatusExpired}).
		Count(&report.ExpiringDocuments)

	disposalStats, err := rc.disposals.Stats(c.Request.Context())
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to compute disposal statistics")
		return
	}
	report.Disposal = disposalStats

	c.JSON(http.StatusOK, report)
}

type MonthlyCost struct {
	Month           string  `json:"month"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	FuelCost        float64 `json:"fuel_cost"`
}

// GetCostTrends returns per-month maintenance and fuel spend for the trailing
// twelve months.
func (rc *ReportController) GetCostTrends(c *gin.Context) {
	now := time.Now()
	trends := make([]MonthlyCost, 0, 12)

	for i := 11; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		entry := MonthlyCost{Month: monthStart.Format("2006-01")}
		rc.db.Model(&models.Maintenance{}).
			Where("status = ? AND scheduled_date >= ? AND scheduled_date < ?", models.MaintenanceStatusCompleted, monthStart, monthEnd).
			Select("COALESCE(SUM(cost), 0)").Scan(&entry.MaintenanceCost)
		rc.db.Model(&models.FuelTransaction{}).
			Where("transaction_date >= ? AND transaction_date < ?", monthStart, monthEnd).
			Select("COALESCE(SUM(cost), 0)").Scan(&entry.FuelCost)

		trends = append(trends, entry)
	}

	c.JSON(http.StatusOK, trends)
}

type VehicleCostSummary struct {
	VehicleID       string  `json:"vehicle_id"`
	PlateNumber     string  `json:"plate_number"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	FuelCost        float64 `json:"fuel_cost"`
	TotalCost       float64 `json:"total_cost"`
}

// GetVehicleCosts ranks vehicles by total operating cost, most expensive
// first. High-cost vehicles are the usual disposal candidates.
func (rc *ReportController) GetVehicleCosts(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := rc.db.Where("status != ?", models.VehicleStatusDisposed).Find(&vehicles).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch vehicles")
		return
	}

	summaries := make([]VehicleCostSummary, 0, len(vehicles))
	for _, v := range vehicles {
		summary := VehicleCostSummary{VehicleID: v.ID, PlateNumber: v.PlateNumber}
		rc.db.Model(&models.Maintenance{}).
			Where("vehicle_id = ? AND status = ?", v.ID, models.MaintenanceStatusCompleted).
			Select("COALESCE(SUM(cost), 0)").Scan(&summary.MaintenanceCost)
		rc.db.Model(&models.FuelTransaction{}).
			Where("vehicle_id = ?", v.ID).
			Select("COALESCE(SUM(cost), 0)").Scan(&summary.FuelCost)
		summary.TotalCost = summary.MaintenanceCost + summary.FuelCost
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].TotalCost > summaries[j].TotalCost
	})

	c.JSON(http.StatusOK, summaries)
}
