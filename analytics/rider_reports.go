package analytics

import (
	"sort"
	"time"

	"github.com/arjunmehra/delivery-analytics/models"
	"github.com/arjunmehra/delivery-analytics/utils"
)

// EarningsRate is the rider's cut of a delivered order's value.
const EarningsRate = 0.08

type RiderTimeRow struct {
	RiderID    uint    `json:"rider_id"`
	RiderName  string  `json:"rider_name"`
	Deliveries int     `json:"deliveries"`
	AvgMinutes float64 `json:"avg_minutes"`
}

// RiderAverageDeliveryTime averages, per rider, the minutes between order
// placement and delivery for delivered orders. Deliveries without a rider,
// a delivery time or a matching order are skipped.
func RiderAverageDeliveryTime(s *Snapshot) []RiderTimeRow {
	type acc struct {
		n   int
		sum int
	}
	byRider := make(map[uint]*acc)
	s.eachDeliveredLeg(func(riderID uint, minutes int, _ float64, _ time.Time) {
		a := byRider[riderID]
		if a == nil {
			a = &acc{}
			byRider[riderID] = a
		}
		a.n++
		a.sum += minutes
	})

	rows := make([]RiderTimeRow, 0, len(byRider))
	for id, a := range byRider {
		rows = append(rows, RiderTimeRow{
			RiderID:    id,
			RiderName:  s.riderName(id),
			Deliveries: a.n,
			AvgMinutes: utils.Round2(float64(a.sum) / float64(a.n)),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RiderID < rows[j].RiderID })
	return rows
}

type EarningsRow struct {
	RiderID   uint       `json:"rider_id"`
	RiderName string     `json:"rider_name"`
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	Earnings  float64    `json:"earnings"`
}

// RiderMonthlyEarnings pays each rider 8% of the order value they delivered,
// aggregated per calendar month of the order.
func RiderMonthlyEarnings(s *Snapshot) []EarningsRow {
	type key struct {
		rider uint
		month int
	}
	sums := make(map[key]float64)
	s.eachDeliveredLeg(func(riderID uint, _ int, amount float64, orderDate time.Time) {
		sums[key{riderID, monthKey(orderDate.Year(), orderDate.Month())}] += amount
	})

	rows := make([]EarningsRow, 0, len(sums))
	for k, sum := range sums {
		rows = append(rows, EarningsRow{
			RiderID:   k.rider,
			RiderName: s.riderName(k.rider),
			Year:      k.month / 12,
			Month:     time.Month(k.month%12 + 1),
			Earnings:  utils.Round2(sum * EarningsRate),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RiderID != rows[j].RiderID {
			return rows[i].RiderID < rows[j].RiderID
		}
		return monthKey(rows[i].Year, rows[i].Month) < monthKey(rows[j].Year, rows[j].Month)
	})
	return rows
}

type RatingRow struct {
	RiderID    uint   `json:"rider_id"`
	RiderName  string `json:"rider_name"`
	Stars      int    `json:"stars"`
	Deliveries int    `json:"deliveries"`
}

// RiderRatings grades every delivered order by speed: under 15 minutes is
// 5 stars, 15 to 20 inclusive is 4, slower is 3, then counts per rider.
func RiderRatings(s *Snapshot) []RatingRow {
	type key struct {
		rider uint
		stars int
	}
	counts := make(map[key]int)
	s.eachDeliveredLeg(func(riderID uint, minutes int, _ float64, _ time.Time) {
		stars := 3
		switch {
		case minutes < 15:
			stars = 5
		case minutes <= 20:
			stars = 4
		}
		counts[key{riderID, stars}]++
	})

	rows := make([]RatingRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, RatingRow{
			RiderID:    k.rider,
			RiderName:  s.riderName(k.rider),
			Stars:      k.stars,
			Deliveries: n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RiderID != rows[j].RiderID {
			return rows[i].RiderID < rows[j].RiderID
		}
		return rows[i].Stars > rows[j].Stars
	})
	return rows
}

type EfficiencySummary struct {
	FastestAvgMinutes float64 `json:"fastest_avg_minutes"`
	SlowestAvgMinutes float64 `json:"slowest_avg_minutes"`
}

// RiderEfficiency reports the best and worst per-rider average delivery
// time across the fleet. Nil when nothing has been delivered yet.
func RiderEfficiency(s *Snapshot) *EfficiencySummary {
	averages := RiderAverageDeliveryTime(s)
	if len(averages) == 0 {
		return nil
	}
	out := &EfficiencySummary{
		FastestAvgMinutes: averages[0].AvgMinutes,
		SlowestAvgMinutes: averages[0].AvgMinutes,
	}
	for _, r := range averages[1:] {
		if r.AvgMinutes < out.FastestAvgMinutes {
			out.FastestAvgMinutes = r.AvgMinutes
		}
		if r.AvgMinutes > out.SlowestAvgMinutes {
			out.SlowestAvgMinutes = r.AvgMinutes
		}
	}
	return out
}

// eachDeliveredLeg visits every delivered order that has both a rider and a
// delivery time, handing the callback the wrap-corrected duration, the
// order value and the order date.
func (s *Snapshot) eachDeliveredLeg(fn func(riderID uint, minutes int, amount float64, orderDate time.Time)) {
	for i := range s.deliveries {
		d := &s.deliveries[i]
		if d.Status != models.StatusDelivered || d.RiderID == nil || d.DeliveryTime == nil {
			continue
		}
		order := s.orderByID[d.OrderID]
		if order == nil {
			continue
		}
		minutes, err := DeliveryMinutes(order.OrderTime, *d.DeliveryTime)
		if err != nil {
			continue
		}
		fn(*d.RiderID, minutes, order.TotalAmount, order.OrderDate)
	}
}
