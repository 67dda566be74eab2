package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arjunmehra/delivery-analytics/controllers"
	"github.com/arjunmehra/delivery-analytics/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reportController := controllers.NewReportController(db)
	exportController := controllers.NewExportController(db)

	reports := r.Group("/reports")
	{
		reports.GET("/top-dishes", reportController.GetTopDishes)
		reports.GET("/time-slots", reportController.GetTimeSlots)
		reports.GET("/order-value", reportController.GetOrderValue)
		reports.GET("/high-value-customers", reportController.GetHighValueCustomers)
		reports.GET("/undelivered", reportController.GetUndelivered)
		reports.GET("/restaurant-ranking", reportController.GetRestaurantRanking)
		reports.GET("/popular-dish-by-city", reportController.GetPopularDishByCity)
		reports.GET("/churn", reportController.GetChurn)
		reports.GET("/cancellation", reportController.GetCancellationComparison)
		reports.GET("/rider-avg-time", reportController.GetRiderAvgTime)
		reports.GET("/restaurant-growth", reportController.GetRestaurantGrowth)
		reports.GET("/segmentation", reportController.GetSegmentation)
		reports.GET("/rider-earnings", reportController.GetRiderEarnings)
		reports.GET("/rider-ratings", reportController.GetRiderRatings)
		reports.GET("/peak-day", reportController.GetPeakDay)
		reports.GET("/clv", reportController.GetLifetimeValue)
		reports.GET("/sales-trend", reportController.GetSalesTrend)
		reports.GET("/rider-efficiency", reportController.GetRiderEfficiency)
		reports.GET("/seasonal-items", reportController.GetSeasonalItems)
		reports.GET("/city-ranking", reportController.GetCityRanking)

		// Rendering is the only expensive surface, keep it throttled hard.
		exports := reports.Group("")
		exports.Use(middlewares.NewStrictRateLimiter())
		exports.GET("/sales-trend/chart", exportController.GetSalesTrendChart)
		exports.GET("/summary/pdf", exportController.GetSummaryPDF)
	}

	return r
}
