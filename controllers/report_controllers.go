package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arjunmehra/delivery-analytics/analytics"
	"github.com/arjunmehra/delivery-analytics/utils"
)

// Default parameters for the year-bound reports. Callers can override all
// of them through query params so reruns stay reproducible.
const (
	defaultActiveYear   = 2023
	defaultQuietYear    = 2024
	defaultRankingYear  = 2023
	defaultMinOrders    = 750
	defaultSpendCutoff  = 100000
	dateParamLayout     = "2006-01-02"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// snapshot loads a fresh immutable snapshot for this request.
func (rc *ReportController) snapshot(c *gin.Context) (*analytics.Snapshot, bool) {
	snap, err := analytics.Load(rc.DB)
	if err != nil {
		utils.ErrorLogger.Printf("snapshot load failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return snap, true
}

func (rc *ReportController) GetTopDishes(c *gin.Context) {
	customer := c.Query("customer")
	if customer == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("customer query param is required"))
		return
	}
	asOf, err := dateParam(c, "as_of", time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	rows := analytics.TopDishesForCustomer(snap, customer, asOf)
	utils.RespondJSON(c, http.StatusOK, "Top dishes retrieved successfully", rows)
}

func (rc *ReportController) GetTimeSlots(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Time slot popularity retrieved successfully",
		analytics.PopularTimeSlots(snap))
}

func (rc *ReportController) GetOrderValue(c *gin.Context) {
	minOrders, err := intParam(c, "min_orders", defaultMinOrders)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Average order value retrieved successfully",
		analytics.HighFrequencyCustomerValue(snap, minOrders))
}

func (rc *ReportController) GetHighValueCustomers(c *gin.Context) {
	threshold, err := floatParam(c, "threshold", defaultSpendCutoff)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "High value customers retrieved successfully",
		analytics.HighValueCustomers(snap, threshold))
}

func (rc *ReportController) GetUndelivered(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Undelivered orders retrieved successfully",
		analytics.UndeliveredOrdersByRestaurant(snap))
}

func (rc *ReportController) GetRestaurantRanking(c *gin.Context) {
	asOf, err := dateParam(c, "as_of", time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant revenue ranking retrieved successfully",
		analytics.RestaurantRevenueRanking(snap, asOf))
}

func (rc *ReportController) GetPopularDishByCity(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Popular dishes by city retrieved successfully",
		analytics.MostPopularDishByCity(snap))
}

func (rc *ReportController) GetChurn(c *gin.Context) {
	activeYear, err := intParam(c, "active_year", defaultActiveYear)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	quietYear, err := intParam(c, "quiet_year", defaultQuietYear)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Churned customers retrieved successfully",
		analytics.ChurnedCustomers(snap, activeYear, quietYear))
}

func (rc *ReportController) GetCancellationComparison(c *gin.Context) {
	yearA, err := intParam(c, "year_a", defaultActiveYear)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	yearB, err := intParam(c, "year_b", defaultQuietYear)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cancellation rate comparison retrieved successfully",
		analytics.CancellationRateComparison(snap, yearA, yearB))
}

func (rc *ReportController) GetRiderAvgTime(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rider delivery times retrieved successfully",
		analytics.RiderAverageDeliveryTime(snap))
}

func (rc *ReportController) GetRestaurantGrowth(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant growth retrieved successfully",
		analytics.MonthlyRestaurantGrowth(snap))
}

func (rc *ReportController) GetSegmentation(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer segmentation retrieved successfully",
		analytics.CustomerSegmentation(snap))
}

func (rc *ReportController) GetRiderEarnings(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rider earnings retrieved successfully",
		analytics.RiderMonthlyEarnings(snap))
}

func (rc *ReportController) GetRiderRatings(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rider ratings retrieved successfully",
		analytics.RiderRatings(snap))
}

func (rc *ReportController) GetPeakDay(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Peak order days retrieved successfully",
		analytics.PeakOrderDay(snap))
}

func (rc *ReportController) GetLifetimeValue(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer lifetime value retrieved successfully",
		analytics.CustomerLifetimeValue(snap))
}

func (rc *ReportController) GetSalesTrend(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Monthly sales trend retrieved successfully",
		analytics.MonthlySalesTrend(snap))
}

func (rc *ReportController) GetRiderEfficiency(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	summary := analytics.RiderEfficiency(snap)
	if summary == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no delivered orders yet"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rider efficiency retrieved successfully", summary)
}

func (rc *ReportController) GetSeasonalItems(c *gin.Context) {
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Seasonal item popularity retrieved successfully",
		analytics.SeasonalItemPopularity(snap))
}

func (rc *ReportController) GetCityRanking(c *gin.Context) {
	year, err := intParam(c, "year", defaultRankingYear)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, ok := rc.snapshot(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "City revenue ranking retrieved successfully",
		analytics.CityRevenueRanking(snap, year))
}

func dateParam(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateParamLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s, want YYYY-MM-DD: %s", name, raw)
	}
	return t, nil
}

func intParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}

func floatParam(c *gin.Context, name string, fallback float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}
