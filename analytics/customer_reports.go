package analytics

import (
	"sort"
	"time"

	"github.com/arjunmehra/delivery-analytics/utils"
)

type DishRankRow struct {
	CustomerName string `json:"customer_name"`
	Dish         string `json:"dish"`
	Orders       int    `json:"orders"`
	Rank         int    `json:"rank"`
}

// TopDishesForCustomer counts the named customer's orders per dish over the
// trailing year ending at asOf and keeps the five best dense ranks. Ties
// share a rank, so more than five rows may come back.
func TopDishesForCustomer(s *Snapshot, customerName string, asOf time.Time) []DishRankRow {
	counts := make(map[string]int)
	for i := range s.orders {
		o := &s.orders[i]
		if s.customerName(o.CustomerID) != customerName {
			continue
		}
		if !withinTrailingYear(o.OrderDate, asOf) {
			continue
		}
		counts[o.OrderItem]++
	}

	rows := make([]DishRankRow, 0, len(counts))
	for dish, n := range counts {
		rows = append(rows, DishRankRow{CustomerName: customerName, Dish: dish, Orders: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Orders != rows[j].Orders {
			return rows[i].Orders > rows[j].Orders
		}
		return rows[i].Dish < rows[j].Dish
	})

	ranks := DenseRanks(rows,
		func(a, b DishRankRow) bool { return true },
		func(a, b DishRankRow) bool { return a.Orders == b.Orders })

	out := make([]DishRankRow, 0, len(rows))
	for i := range rows {
		if ranks[i] > 5 {
			break
		}
		rows[i].Rank = ranks[i]
		out = append(out, rows[i])
	}
	return out
}

type OrderValueRow struct {
	CustomerID    uint    `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// HighFrequencyCustomerValue averages the order value of customers who
// placed more than minOrders orders.
func HighFrequencyCustomerValue(s *Snapshot, minOrders int) []OrderValueRow {
	type acc struct {
		n   int
		sum float64
	}
	byCustomer := make(map[uint]*acc)
	for i := range s.orders {
		o := &s.orders[i]
		a := byCustomer[o.CustomerID]
		if a == nil {
			a = &acc{}
			byCustomer[o.CustomerID] = a
		}
		a.n++
		a.sum += o.TotalAmount
	}

	rows := make([]OrderValueRow, 0)
	for id, a := range byCustomer {
		if a.n <= minOrders {
			continue
		}
		rows = append(rows, OrderValueRow{
			CustomerID:    id,
			CustomerName:  s.customerName(id),
			Orders:        a.n,
			AvgOrderValue: utils.Round2(a.sum / float64(a.n)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgOrderValue != rows[j].AvgOrderValue {
			return rows[i].AvgOrderValue > rows[j].AvgOrderValue
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows
}

type HighValueCustomerRow struct {
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	TotalSpent   float64 `json:"total_spent"`
}

// HighValueCustomers lists customers whose lifetime spend exceeds threshold,
// biggest spenders first.
func HighValueCustomers(s *Snapshot, threshold float64) []HighValueCustomerRow {
	spend := make(map[uint]float64)
	for i := range s.orders {
		spend[s.orders[i].CustomerID] += s.orders[i].TotalAmount
	}

	rows := make([]HighValueCustomerRow, 0)
	for id, total := range spend {
		if total <= threshold {
			continue
		}
		rows = append(rows, HighValueCustomerRow{
			CustomerID:   id,
			CustomerName: s.customerName(id),
			TotalSpent:   utils.Round2(total),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpent != rows[j].TotalSpent {
			return rows[i].TotalSpent > rows[j].TotalSpent
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows
}

type ChurnRow struct {
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
}

// ChurnedCustomers lists customers who ordered in activeYear but placed
// nothing in quietYear.
func ChurnedCustomers(s *Snapshot, activeYear, quietYear int) []ChurnRow {
	active := make(map[uint]struct{})
	quiet := make(map[uint]struct{})
	for i := range s.orders {
		o := &s.orders[i]
		switch o.OrderDate.Year() {
		case activeYear:
			active[o.CustomerID] = struct{}{}
		case quietYear:
			quiet[o.CustomerID] = struct{}{}
		}
	}

	rows := make([]ChurnRow, 0)
	for id := range active {
		if _, ok := quiet[id]; ok {
			continue
		}
		rows = append(rows, ChurnRow{CustomerID: id, CustomerName: s.customerName(id)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })
	return rows
}

type SegmentRow struct {
	Segment string  `json:"segment"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// CustomerSegmentation labels a customer Gold when their total spend beats
// the global average order value, Silver otherwise, and aggregates orders
// and revenue per segment. Gold sorts first.
func CustomerSegmentation(s *Snapshot) []SegmentRow {
	if len(s.orders) == 0 {
		return nil
	}

	var total float64
	type acc struct {
		n   int
		sum float64
	}
	byCustomer := make(map[uint]*acc)
	for i := range s.orders {
		o := &s.orders[i]
		total += o.TotalAmount
		a := byCustomer[o.CustomerID]
		if a == nil {
			a = &acc{}
			byCustomer[o.CustomerID] = a
		}
		a.n++
		a.sum += o.TotalAmount
	}
	globalAOV := total / float64(len(s.orders))

	gold := SegmentRow{Segment: "Gold"}
	silver := SegmentRow{Segment: "Silver"}
	for _, a := range byCustomer {
		if a.sum > globalAOV {
			gold.Orders += a.n
			gold.Revenue += a.sum
		} else {
			silver.Orders += a.n
			silver.Revenue += a.sum
		}
	}
	gold.Revenue = utils.Round2(gold.Revenue)
	silver.Revenue = utils.Round2(silver.Revenue)
	return []SegmentRow{gold, silver}
}

type LifetimeValueRow struct {
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	TotalSpent   float64 `json:"total_spent"`
}

// CustomerLifetimeValue sums every customer's spend across all their orders.
func CustomerLifetimeValue(s *Snapshot) []LifetimeValueRow {
	spend := make(map[uint]float64)
	for i := range s.orders {
		spend[s.orders[i].CustomerID] += s.orders[i].TotalAmount
	}

	rows := make([]LifetimeValueRow, 0, len(spend))
	for id, total := range spend {
		rows = append(rows, LifetimeValueRow{
			CustomerID:   id,
			CustomerName: s.customerName(id),
			TotalSpent:   utils.Round2(total),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpent != rows[j].TotalSpent {
			return rows[i].TotalSpent > rows[j].TotalSpent
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows
}
