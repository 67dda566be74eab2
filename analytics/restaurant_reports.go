package analytics

import (
	"sort"
	"time"

	"github.com/arjunmehra/delivery-analytics/utils"
)

type UndeliveredRow struct {
	RestaurantID   uint   `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	City           string `json:"city"`
	Orders         int    `json:"orders"`
}

// UndeliveredOrdersByRestaurant counts orders that never reached the
// customer: either no delivery record exists or its status is not
// Delivered. Restaurants with nothing undelivered are omitted.
func UndeliveredOrdersByRestaurant(s *Snapshot) []UndeliveredRow {
	counts := make(map[uint]int)
	for i := range s.orders {
		o := &s.orders[i]
		if !s.delivered(o.ID) {
			counts[o.RestaurantID]++
		}
	}

	rows := make([]UndeliveredRow, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, UndeliveredRow{
			RestaurantID:   id,
			RestaurantName: s.restaurantName(id),
			City:           s.restaurantCity(id),
			Orders:         n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Orders != rows[j].Orders {
			return rows[i].Orders > rows[j].Orders
		}
		return rows[i].RestaurantID < rows[j].RestaurantID
	})
	return rows
}

type RevenueRankRow struct {
	City           string  `json:"city"`
	RestaurantID   uint    `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	Revenue        float64 `json:"revenue"`
	Rank           int     `json:"rank"`
}

// RestaurantRevenueRanking dense-ranks restaurants inside their city by
// revenue over the trailing year ending at asOf.
func RestaurantRevenueRanking(s *Snapshot, asOf time.Time) []RevenueRankRow {
	revenue := make(map[uint]float64)
	for i := range s.orders {
		o := &s.orders[i]
		if withinTrailingYear(o.OrderDate, asOf) {
			revenue[o.RestaurantID] += o.TotalAmount
		}
	}

	rows := make([]RevenueRankRow, 0, len(revenue))
	for id, sum := range revenue {
		rows = append(rows, RevenueRankRow{
			City:           s.restaurantCity(id),
			RestaurantID:   id,
			RestaurantName: s.restaurantName(id),
			Revenue:        utils.Round2(sum),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].City != rows[j].City {
			return rows[i].City < rows[j].City
		}
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].RestaurantID < rows[j].RestaurantID
	})

	ranks := DenseRanks(rows,
		func(a, b RevenueRankRow) bool { return a.City == b.City },
		func(a, b RevenueRankRow) bool { return a.Revenue == b.Revenue })
	for i := range rows {
		rows[i].Rank = ranks[i]
	}
	return rows
}

type CityDishRow struct {
	City   string `json:"city"`
	Dish   string `json:"dish"`
	Orders int    `json:"orders"`
}

// MostPopularDishByCity keeps the top-ranked dish of every city; ties all
// survive since they share rank 1.
func MostPopularDishByCity(s *Snapshot) []CityDishRow {
	type key struct {
		city string
		dish string
	}
	counts := make(map[key]int)
	for i := range s.orders {
		o := &s.orders[i]
		counts[key{s.restaurantCity(o.RestaurantID), o.OrderItem}]++
	}

	rows := make([]CityDishRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, CityDishRow{City: k.city, Dish: k.dish, Orders: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].City != rows[j].City {
			return rows[i].City < rows[j].City
		}
		if rows[i].Orders != rows[j].Orders {
			return rows[i].Orders > rows[j].Orders
		}
		return rows[i].Dish < rows[j].Dish
	})

	ranks := DenseRanks(rows,
		func(a, b CityDishRow) bool { return a.City == b.City },
		func(a, b CityDishRow) bool { return a.Orders == b.Orders })
	out := rows[:0]
	for i := range rows {
		if ranks[i] == 1 {
			out = append(out, rows[i])
		}
	}
	return out
}

// CancellationYear is one restaurant's order outcome for a single year.
// Rate is nil when the restaurant had no orders that year.
type CancellationYear struct {
	TotalOrders  int      `json:"total_orders"`
	NotDelivered int      `json:"not_delivered"`
	Rate         *float64 `json:"rate"`
}

type CancellationRow struct {
	RestaurantID   uint              `json:"restaurant_id"`
	RestaurantName string            `json:"restaurant_name"`
	First          *CancellationYear `json:"first_year"`
	Second         *CancellationYear `json:"second_year"`
}

// CancellationRateComparison computes per-restaurant not-delivered
// percentages for two years and full-outer-joins them on restaurant, so a
// restaurant active in only one year still appears with a nil other side.
func CancellationRateComparison(s *Snapshot, firstYear, secondYear int) []CancellationRow {
	yearStats := func(year int) map[uint]*CancellationYear {
		out := make(map[uint]*CancellationYear)
		for i := range s.orders {
			o := &s.orders[i]
			if o.OrderDate.Year() != year {
				continue
			}
			y := out[o.RestaurantID]
			if y == nil {
				y = &CancellationYear{}
				out[o.RestaurantID] = y
			}
			y.TotalOrders++
			if !s.delivered(o.ID) {
				y.NotDelivered++
			}
		}
		for _, y := range out {
			if y.TotalOrders > 0 {
				rate := utils.Round2(float64(y.NotDelivered) / float64(y.TotalOrders) * 100)
				y.Rate = &rate
			}
		}
		return out
	}

	first := yearStats(firstYear)
	second := yearStats(secondYear)

	seen := make(map[uint]struct{})
	rows := make([]CancellationRow, 0)
	for id := range first {
		seen[id] = struct{}{}
		rows = append(rows, CancellationRow{
			RestaurantID:   id,
			RestaurantName: s.restaurantName(id),
			First:          first[id],
			Second:         second[id],
		})
	}
	for id := range second {
		if _, ok := seen[id]; ok {
			continue
		}
		rows = append(rows, CancellationRow{
			RestaurantID:   id,
			RestaurantName: s.restaurantName(id),
			Second:         second[id],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RestaurantID < rows[j].RestaurantID })
	return rows
}

type GrowthRow struct {
	RestaurantID   uint       `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	Year           int        `json:"year"`
	Month          time.Month `json:"month"`
	Orders         int        `json:"orders"`
	PrevOrders     *int       `json:"prev_orders"`
	GrowthPct      *float64   `json:"growth_pct"`
}

// MonthlyRestaurantGrowth counts delivered orders per restaurant-month and
// derives the month-over-month growth percentage via an ordered lag.
// GrowthPct is nil for a restaurant's first month and when the previous
// month's count is zero, since the ratio is undefined there.
func MonthlyRestaurantGrowth(s *Snapshot) []GrowthRow {
	type key struct {
		restaurant uint
		month      int
	}
	counts := make(map[key]int)
	for i := range s.orders {
		o := &s.orders[i]
		if !s.delivered(o.ID) {
			continue
		}
		counts[key{o.RestaurantID, monthKey(o.OrderDate.Year(), o.OrderDate.Month())}]++
	}

	rows := make([]GrowthRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, GrowthRow{
			RestaurantID:   k.restaurant,
			RestaurantName: s.restaurantName(k.restaurant),
			Year:           k.month / 12,
			Month:          time.Month(k.month%12 + 1),
			Orders:         n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RestaurantID != rows[j].RestaurantID {
			return rows[i].RestaurantID < rows[j].RestaurantID
		}
		return monthKey(rows[i].Year, rows[i].Month) < monthKey(rows[j].Year, rows[j].Month)
	})

	prev := Lag(rows,
		func(a, b GrowthRow) bool { return a.RestaurantID == b.RestaurantID },
		func(r GrowthRow) int { return r.Orders })
	for i := range rows {
		rows[i].PrevOrders = prev[i]
		if prev[i] == nil || *prev[i] == 0 {
			continue
		}
		pct := utils.Round2(float64(rows[i].Orders-*prev[i]) / float64(*prev[i]) * 100)
		rows[i].GrowthPct = &pct
	}
	return rows
}

type PeakDayRow struct {
	RestaurantID   uint   `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Weekday        string `json:"weekday"`
	Orders         int    `json:"orders"`
}

// PeakOrderDay finds each restaurant's busiest day of the week; tied days
// all survive since they share rank 1.
func PeakOrderDay(s *Snapshot) []PeakDayRow {
	type key struct {
		restaurant uint
		weekday    time.Weekday
	}
	counts := make(map[key]int)
	for i := range s.orders {
		o := &s.orders[i]
		counts[key{o.RestaurantID, o.OrderDate.Weekday()}]++
	}

	rows := make([]PeakDayRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, PeakDayRow{
			RestaurantID:   k.restaurant,
			RestaurantName: s.restaurantName(k.restaurant),
			Weekday:        k.weekday.String(),
			Orders:         n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RestaurantID != rows[j].RestaurantID {
			return rows[i].RestaurantID < rows[j].RestaurantID
		}
		if rows[i].Orders != rows[j].Orders {
			return rows[i].Orders > rows[j].Orders
		}
		return rows[i].Weekday < rows[j].Weekday
	})

	ranks := DenseRanks(rows,
		func(a, b PeakDayRow) bool { return a.RestaurantID == b.RestaurantID },
		func(a, b PeakDayRow) bool { return a.Orders == b.Orders })
	out := rows[:0]
	for i := range rows {
		if ranks[i] == 1 {
			out = append(out, rows[i])
		}
	}
	return out
}

type CityRevenueRow struct {
	City    string  `json:"city"`
	Revenue float64 `json:"revenue"`
	Rank    int     `json:"rank"`
}

// CityRevenueRanking dense-ranks cities by their order revenue in the given
// calendar year.
func CityRevenueRanking(s *Snapshot, year int) []CityRevenueRow {
	revenue := make(map[string]float64)
	for i := range s.orders {
		o := &s.orders[i]
		if o.OrderDate.Year() != year {
			continue
		}
		revenue[s.restaurantCity(o.RestaurantID)] += o.TotalAmount
	}

	rows := make([]CityRevenueRow, 0, len(revenue))
	for city, sum := range revenue {
		rows = append(rows, CityRevenueRow{City: city, Revenue: utils.Round2(sum)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].City < rows[j].City
	})

	ranks := DenseRanks(rows,
		func(a, b CityRevenueRow) bool { return true },
		func(a, b CityRevenueRow) bool { return a.Revenue == b.Revenue })
	for i := range rows {
		rows[i].Rank = ranks[i]
	}
	return rows
}
