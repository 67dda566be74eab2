package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/arjunmehra/delivery-analytics/analytics"
	"github.com/arjunmehra/delivery-analytics/utils"
)

type ExportController struct {
	DB *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

// GetSalesTrendChart renders the monthly sales trend as a PNG bar chart.
func (ec *ExportController) GetSalesTrendChart(c *gin.Context) {
	snap, err := analytics.Load(ec.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	trend := analytics.MonthlySalesTrend(snap)
	if len(trend) == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("no sales data to chart"))
		return
	}

	bars := make([]chart.Value, 0, len(trend))
	for _, row := range trend {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d-%02d", row.Year, int(row.Month)),
			Value: row.TotalSales,
		})
	}

	graph := chart.BarChart{
		Title:    "Monthly Sales",
		Width:    140 * len(bars),
		Height:   512,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		utils.ErrorLogger.Printf("chart render failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GetSummaryPDF renders a one-page summary: totals, the monthly trend and
// the top customers by lifetime value.
func (ec *ExportController) GetSummaryPDF(c *gin.Context) {
	snap, err := analytics.Load(ec.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	trend := analytics.MonthlySalesTrend(snap)
	clv := analytics.CustomerLifetimeValue(snap)

	var totalRevenue float64
	for _, row := range trend {
		totalRevenue += row.TotalSales
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "Delivery Analytics Summary")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(190, 7, fmt.Sprintf("Orders: %d", snap.Orders()))
	pdf.Ln(6)
	pdf.Cell(190, 7, fmt.Sprintf("Revenue: %.2f", totalRevenue))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "Monthly sales")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	for _, row := range trend {
		pdf.Cell(40, 6, fmt.Sprintf("%d-%02d", row.Year, int(row.Month)))
		pdf.Cell(60, 6, fmt.Sprintf("%.2f", row.TotalSales))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "Top customers by lifetime value")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	for i, row := range clv {
		if i == 5 {
			break
		}
		pdf.Cell(80, 6, row.CustomerName)
		pdf.Cell(60, 6, fmt.Sprintf("%.2f", row.TotalSpent))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.ErrorLogger.Printf("pdf render failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
