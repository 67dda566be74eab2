package analytics

import (
	"sort"
	"time"

	"github.com/arjunmehra/delivery-analytics/utils"
)

type TimeSlotRow struct {
	Slot   string `json:"slot"`
	Orders int    `json:"orders"`

	slot int
}

// PopularTimeSlots buckets orders into the twelve fixed 2-hour windows of
// the day and counts each, busiest first. Orders with an unparseable time
// of day are skipped; the loader rejects those anyway.
func PopularTimeSlots(s *Snapshot) []TimeSlotRow {
	counts := make(map[int]int)
	for i := range s.orders {
		minutes, err := ClockMinutes(s.orders[i].OrderTime)
		if err != nil {
			continue
		}
		counts[TimeSlot(minutes)]++
	}

	rows := make([]TimeSlotRow, 0, len(counts))
	for slot, n := range counts {
		rows = append(rows, TimeSlotRow{Slot: SlotLabel(slot), Orders: n, slot: slot})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Orders != rows[j].Orders {
			return rows[i].Orders > rows[j].Orders
		}
		return rows[i].slot < rows[j].slot
	})
	return rows
}

type TrendRow struct {
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	TotalSales float64    `json:"total_sales"`
	PrevSales  *float64   `json:"prev_sales"`
}

// MonthlySalesTrend totals revenue per calendar month in chronological
// order, with each row carrying the previous month's total (nil for the
// first month on record).
func MonthlySalesTrend(s *Snapshot) []TrendRow {
	sums := make(map[int]float64)
	for i := range s.orders {
		o := &s.orders[i]
		sums[monthKey(o.OrderDate.Year(), o.OrderDate.Month())] += o.TotalAmount
	}

	rows := make([]TrendRow, 0, len(sums))
	for k, sum := range sums {
		rows = append(rows, TrendRow{
			Year:       k / 12,
			Month:      time.Month(k%12 + 1),
			TotalSales: utils.Round2(sum),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return monthKey(rows[i].Year, rows[i].Month) < monthKey(rows[j].Year, rows[j].Month)
	})

	prev := Lag(rows,
		func(a, b TrendRow) bool { return true },
		func(r TrendRow) float64 { return r.TotalSales })
	for i := range rows {
		rows[i].PrevSales = prev[i]
	}
	return rows
}

type SeasonRow struct {
	Item   string `json:"item"`
	Season string `json:"season"`
	Orders int    `json:"orders"`
}

// SeasonalItemPopularity counts orders per item and season, sorted by item
// and then popularity.
func SeasonalItemPopularity(s *Snapshot) []SeasonRow {
	type key struct {
		item   string
		season string
	}
	counts := make(map[key]int)
	for i := range s.orders {
		o := &s.orders[i]
		counts[key{o.OrderItem, Season(o.OrderDate.Month())}]++
	}

	rows := make([]SeasonRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, SeasonRow{Item: k.item, Season: k.season, Orders: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Item != rows[j].Item {
			return rows[i].Item < rows[j].Item
		}
		if rows[i].Orders != rows[j].Orders {
			return rows[i].Orders > rows[j].Orders
		}
		return rows[i].Season < rows[j].Season
	})
	return rows
}
