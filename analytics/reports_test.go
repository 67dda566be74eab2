package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arjunmehra/delivery-analytics/models"
)

func td(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func clockp(s string) *string { return &s }

func riderp(id uint) *uint { return &id }

func delivered(id, orderID uint, deliveryTime string, riderID uint) models.Delivery {
	return models.Delivery{
		ID:           id,
		OrderID:      orderID,
		Status:       models.StatusDelivered,
		DeliveryTime: clockp(deliveryTime),
		RiderID:      riderp(riderID),
	}
}

func TestTopDishesForCustomer(t *testing.T) {
	asOf := td(2024, time.June, 1)
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "Spice Route", City: "Mumbai"}},
		[]models.Customer{
			{ID: 1, Name: "Arjun Mehta"},
			{ID: 2, Name: "Sneha Iyer"},
		},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "Pizza", OrderDate: td(2023, time.September, 5), OrderTime: "12:00:00", TotalAmount: 300},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "Pizza", OrderDate: td(2024, time.January, 10), OrderTime: "12:00:00", TotalAmount: 300},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "Burger", OrderDate: td(2024, time.March, 2), OrderTime: "12:00:00", TotalAmount: 150},
			// Outside the trailing year, must not count.
			{ID: 4, CustomerID: 1, RestaurantID: 1, OrderItem: "Pizza", OrderDate: td(2022, time.December, 25), OrderTime: "12:00:00", TotalAmount: 300},
			// Another customer, must not count.
			{ID: 5, CustomerID: 2, RestaurantID: 1, OrderItem: "Pizza", OrderDate: td(2024, time.February, 1), OrderTime: "12:00:00", TotalAmount: 300},
		},
		nil,
	)

	rows := TopDishesForCustomer(snap, "Arjun Mehta", asOf)

	assert.Equal(t, []DishRankRow{
		{CustomerName: "Arjun Mehta", Dish: "Pizza", Orders: 2, Rank: 1},
		{CustomerName: "Arjun Mehta", Dish: "Burger", Orders: 1, Rank: 2},
	}, rows)
}

func TestTopDishesForCustomerKeepsFiveRanks(t *testing.T) {
	asOf := td(2024, time.June, 1)
	dishes := []string{"A", "B", "C", "D", "E", "F", "G"}
	var orders []models.Order
	id := uint(1)
	for i, dish := range dishes {
		// Dish i ordered 7-i times, so every dish has a distinct count.
		for n := 0; n < len(dishes)-i; n++ {
			orders = append(orders, models.Order{
				ID: id, CustomerID: 1, RestaurantID: 1, OrderItem: dish,
				OrderDate: td(2024, time.January, 1+n), OrderTime: "12:00:00", TotalAmount: 100,
			})
			id++
		}
	}
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "Arjun Mehta"}},
		nil, orders, nil,
	)

	rows := TopDishesForCustomer(snap, "Arjun Mehta", asOf)

	assert.Len(t, rows, 5)
	for _, row := range rows {
		assert.LessOrEqual(t, row.Rank, 5)
	}
}

func TestTopDishesUnknownCustomer(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil, nil, nil)
	assert.Empty(t, TopDishesForCustomer(snap, "Nobody", td(2024, time.June, 1)))
}

func TestPopularTimeSlots(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "00:30:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "01:59:00", TotalAmount: 100},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 3), OrderTime: "13:05:00", TotalAmount: 100},
			{ID: 4, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 4), OrderTime: "23:59:00", TotalAmount: 100},
		},
		nil,
	)

	rows := PopularTimeSlots(snap)

	assert.Len(t, rows, 3)
	assert.Equal(t, "00:00 - 02:00", rows[0].Slot)
	assert.Equal(t, 2, rows[0].Orders)
	total := 0
	for _, row := range rows {
		total += row.Orders
	}
	assert.Equal(t, 4, total, "every order lands in exactly one bucket")
}

func TestHighFrequencyCustomerValue(t *testing.T) {
	orders := []models.Order{
		{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
		{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 200},
		{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 3), OrderTime: "12:00:00", TotalAmount: 250},
		// Customer 2 places exactly minOrders orders, which is not enough.
		{ID: 4, CustomerID: 2, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 4), OrderTime: "12:00:00", TotalAmount: 500},
		{ID: 5, CustomerID: 2, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 5), OrderTime: "12:00:00", TotalAmount: 500},
	}
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "Heavy"}, {ID: 2, Name: "Light"}},
		nil, orders, nil,
	)

	rows := HighFrequencyCustomerValue(snap, 2)

	assert.Equal(t, []OrderValueRow{
		{CustomerID: 1, CustomerName: "Heavy", Orders: 3, AvgOrderValue: 183.33},
	}, rows)
}

func TestHighValueCustomers(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "Big"}, {ID: 2, Name: "Small"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 700},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 400},
			{ID: 3, CustomerID: 2, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 3), OrderTime: "12:00:00", TotalAmount: 900},
		},
		nil,
	)

	rows := HighValueCustomers(snap, 1000)

	assert.Equal(t, []HighValueCustomerRow{
		{CustomerID: 1, CustomerName: "Big", TotalSpent: 1100},
	}, rows)
}

func TestUndeliveredOrdersByRestaurant(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{
			{ID: 1, Name: "Spice Route", City: "Mumbai"},
			{ID: 2, Name: "Dosa Corner", City: "Bengaluru"},
		},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "V"}},
		[]models.Order{
			// No delivery record at all: undelivered.
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
			// Delivery exists but still pending: undelivered.
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 100},
			// Properly delivered.
			{ID: 3, CustomerID: 1, RestaurantID: 2, OrderItem: "A", OrderDate: td(2024, time.January, 3), OrderTime: "12:00:00", TotalAmount: 100},
		},
		[]models.Delivery{
			{ID: 1, OrderID: 2, Status: "Pending"},
			delivered(2, 3, "12:30:00", 1),
		},
	)

	rows := UndeliveredOrdersByRestaurant(snap)

	assert.Equal(t, []UndeliveredRow{
		{RestaurantID: 1, RestaurantName: "Spice Route", City: "Mumbai", Orders: 2},
	}, rows)
}

func TestRestaurantRevenueRanking(t *testing.T) {
	asOf := td(2024, time.June, 1)
	snap := NewSnapshot(
		[]models.Restaurant{
			{ID: 1, Name: "A", City: "Mumbai"},
			{ID: 2, Name: "B", City: "Mumbai"},
			{ID: 3, Name: "C", City: "Bengaluru"},
		},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "X", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 500},
			{ID: 2, CustomerID: 1, RestaurantID: 2, OrderItem: "X", OrderDate: td(2024, time.February, 1), OrderTime: "12:00:00", TotalAmount: 800},
			{ID: 3, CustomerID: 1, RestaurantID: 3, OrderItem: "X", OrderDate: td(2024, time.March, 1), OrderTime: "12:00:00", TotalAmount: 300},
			// Outside the trailing year.
			{ID: 4, CustomerID: 1, RestaurantID: 1, OrderItem: "X", OrderDate: td(2022, time.January, 1), OrderTime: "12:00:00", TotalAmount: 9999},
		},
		nil,
	)

	rows := RestaurantRevenueRanking(snap, asOf)

	assert.Equal(t, []RevenueRankRow{
		{City: "Bengaluru", RestaurantID: 3, RestaurantName: "C", Revenue: 300, Rank: 1},
		{City: "Mumbai", RestaurantID: 2, RestaurantName: "B", Revenue: 800, Rank: 1},
		{City: "Mumbai", RestaurantID: 1, RestaurantName: "A", Revenue: 500, Rank: 2},
	}, rows)
}

func TestMostPopularDishByCityTies(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "A", City: "Mumbai"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "Pizza", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "Burger", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "Dosa", OrderDate: td(2024, time.January, 3), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 4, CustomerID: 1, RestaurantID: 1, OrderItem: "Pizza", OrderDate: td(2024, time.January, 4), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 5, CustomerID: 1, RestaurantID: 1, OrderItem: "Burger", OrderDate: td(2024, time.January, 5), OrderTime: "12:00:00", TotalAmount: 100},
		},
		nil,
	)

	rows := MostPopularDishByCity(snap)

	// Pizza and Burger tie at 2 orders, both keep rank 1; Dosa drops out.
	assert.Equal(t, []CityDishRow{
		{City: "Mumbai", Dish: "Burger", Orders: 2},
		{City: "Mumbai", Dish: "Pizza", Orders: 2},
	}, rows)
}

func TestChurnedCustomers(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{
			{ID: 1, Name: "Stayed"},
			{ID: 2, Name: "Churned"},
			{ID: 3, Name: "NewIn2024"},
		},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.March, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.March, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 3, CustomerID: 2, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.July, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 4, CustomerID: 3, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.July, 1), OrderTime: "12:00:00", TotalAmount: 100},
		},
		nil,
	)

	rows := ChurnedCustomers(snap, 2023, 2024)

	assert.Equal(t, []ChurnRow{{CustomerID: 2, CustomerName: "Churned"}}, rows)
}

func TestCancellationRateComparison(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{
			{ID: 1, Name: "BothYears", City: "X"},
			{ID: 2, Name: "Only2023", City: "X"},
			{ID: 3, Name: "Only2024", City: "X"},
		},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "V"}},
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.February, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 4, CustomerID: 1, RestaurantID: 2, OrderItem: "A", OrderDate: td(2023, time.June, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 5, CustomerID: 1, RestaurantID: 3, OrderItem: "A", OrderDate: td(2024, time.June, 1), OrderTime: "12:00:00", TotalAmount: 100},
		},
		[]models.Delivery{
			delivered(1, 1, "12:30:00", 1),
			// Order 2 cancelled, order 3 delivered, orders 4 and 5 have no delivery.
			{ID: 2, OrderID: 2, Status: "Cancelled"},
			delivered(3, 3, "12:30:00", 1),
		},
	)

	rows := CancellationRateComparison(snap, 2023, 2024)

	assert.Len(t, rows, 3)

	both := rows[0]
	assert.Equal(t, uint(1), both.RestaurantID)
	assert.Equal(t, 2, both.First.TotalOrders)
	assert.Equal(t, 1, both.First.NotDelivered)
	assert.Equal(t, 50.0, *both.First.Rate)
	assert.Equal(t, 1, both.Second.TotalOrders)
	assert.Equal(t, 0.0, *both.Second.Rate)

	only2023 := rows[1]
	assert.Equal(t, uint(2), only2023.RestaurantID)
	assert.Equal(t, 100.0, *only2023.First.Rate)
	assert.Nil(t, only2023.Second, "missing year side must stay nil")

	only2024 := rows[2]
	assert.Equal(t, uint(3), only2024.RestaurantID)
	assert.Nil(t, only2024.First)
	assert.Equal(t, 100.0, *only2024.Second.Rate)
}

func TestRiderAverageDeliveryTime(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "Vikram Singh"}},
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "23:50:00", TotalAmount: 100},
		},
		[]models.Delivery{
			delivered(1, 1, "00:10:00", 1),
		},
	)

	rows := RiderAverageDeliveryTime(snap)

	assert.Equal(t, []RiderTimeRow{
		{RiderID: 1, RiderName: "Vikram Singh", Deliveries: 1, AvgMinutes: 20},
	}, rows)
}

func TestRiderAverageDeliveryTimeSkipsUndelivered(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "V"}},
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
		},
		[]models.Delivery{
			{ID: 1, OrderID: 1, Status: "Pending", RiderID: riderp(1)},
		},
	)

	assert.Empty(t, RiderAverageDeliveryTime(snap))
}

func TestMonthlyRestaurantGrowth(t *testing.T) {
	orders := []models.Order{
		{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.January, 5), OrderTime: "12:00:00", TotalAmount: 100},
		{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.January, 20), OrderTime: "12:00:00", TotalAmount: 100},
		{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.February, 7), OrderTime: "12:00:00", TotalAmount: 100},
		{ID: 4, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.March, 7), OrderTime: "12:00:00", TotalAmount: 100},
		{ID: 5, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.March, 9), OrderTime: "12:00:00", TotalAmount: 100},
		{ID: 6, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.March, 11), OrderTime: "12:00:00", TotalAmount: 100},
	}
	deliveries := make([]models.Delivery, 0, len(orders))
	for i, o := range orders {
		deliveries = append(deliveries, delivered(uint(i+1), o.ID, "12:30:00", 1))
	}
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "V"}},
		orders, deliveries,
	)

	rows := MonthlyRestaurantGrowth(snap)

	assert.Len(t, rows, 3)

	jan := rows[0]
	assert.Equal(t, 2, jan.Orders)
	assert.Nil(t, jan.PrevOrders, "first month has no prior period")
	assert.Nil(t, jan.GrowthPct)

	feb := rows[1]
	assert.Equal(t, 1, feb.Orders)
	assert.Equal(t, 2, *feb.PrevOrders)
	assert.Equal(t, -50.0, *feb.GrowthPct)

	mar := rows[2]
	assert.Equal(t, 3, mar.Orders)
	assert.Equal(t, 1, *mar.PrevOrders)
	assert.Equal(t, 200.0, *mar.GrowthPct)
}

func TestMonthlyRestaurantGrowthIgnoresUndelivered(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.January, 5), OrderTime: "12:00:00", TotalAmount: 100},
		},
		nil,
	)

	assert.Empty(t, MonthlyRestaurantGrowth(snap))
}

func TestCustomerSegmentation(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "Gold"}, {ID: 2, Name: "Silver"}},
		nil,
		[]models.Order{
			// Global AOV = (500+500+100)/3 = 366.67; customer 1 spent 1000,
			// customer 2 spent 100.
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 500},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 500},
			{ID: 3, CustomerID: 2, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 3), OrderTime: "12:00:00", TotalAmount: 100},
		},
		nil,
	)

	rows := CustomerSegmentation(snap)

	assert.Equal(t, []SegmentRow{
		{Segment: "Gold", Orders: 2, Revenue: 1000},
		{Segment: "Silver", Orders: 1, Revenue: 100},
	}, rows)
}

func TestRiderMonthlyEarnings(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "V"}},
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 500},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 15), OrderTime: "12:00:00", TotalAmount: 250},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.February, 1), OrderTime: "12:00:00", TotalAmount: 100},
		},
		[]models.Delivery{
			delivered(1, 1, "12:30:00", 1),
			delivered(2, 2, "12:30:00", 1),
			delivered(3, 3, "12:30:00", 1),
		},
	)

	rows := RiderMonthlyEarnings(snap)

	assert.Equal(t, []EarningsRow{
		{RiderID: 1, RiderName: "V", Year: 2024, Month: time.January, Earnings: 60},
		{RiderID: 1, RiderName: "V", Year: 2024, Month: time.February, Earnings: 8},
	}, rows)
}

func TestRiderRatings(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "V"}},
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 3), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 4, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 4), OrderTime: "12:00:00", TotalAmount: 100},
		},
		[]models.Delivery{
			delivered(1, 1, "12:14:00", 1), // 14 min, 5 stars
			delivered(2, 2, "12:15:00", 1), // 15 min, 4 stars
			delivered(3, 3, "12:20:00", 1), // 20 min, 4 stars
			delivered(4, 4, "12:21:00", 1), // 21 min, 3 stars
		},
	)

	rows := RiderRatings(snap)

	assert.Equal(t, []RatingRow{
		{RiderID: 1, RiderName: "V", Stars: 5, Deliveries: 1},
		{RiderID: 1, RiderName: "V", Stars: 4, Deliveries: 2},
		{RiderID: 1, RiderName: "V", Stars: 3, Deliveries: 1},
	}, rows)
}

func TestPeakOrderDay(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			// 2024-01-01 was a Monday.
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 8), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 100},
		},
		nil,
	)

	rows := PeakOrderDay(snap)

	assert.Equal(t, []PeakDayRow{
		{RestaurantID: 1, RestaurantName: "R", Weekday: "Monday", Orders: 2},
	}, rows)
}

func TestCustomerLifetimeValueMatchesOrderSums(t *testing.T) {
	orders := []models.Order{
		{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.January, 1), OrderTime: "12:00:00", TotalAmount: 320},
		{ID: 2, CustomerID: 2, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.February, 1), OrderTime: "12:00:00", TotalAmount: 150},
		{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.March, 1), OrderTime: "12:00:00", TotalAmount: 280},
	}
	reversed := []models.Order{orders[2], orders[1], orders[0]}

	restaurants := []models.Restaurant{{ID: 1, Name: "R", City: "X"}}
	customers := []models.Customer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	forward := CustomerLifetimeValue(NewSnapshot(restaurants, customers, nil, orders, nil))
	backward := CustomerLifetimeValue(NewSnapshot(restaurants, customers, nil, reversed, nil))

	assert.Equal(t, forward, backward, "result must not depend on row order")
	assert.Equal(t, []LifetimeValueRow{
		{CustomerID: 1, CustomerName: "A", TotalSpent: 600},
		{CustomerID: 2, CustomerName: "B", TotalSpent: 150},
	}, forward)
}

func TestMonthlySalesTrend(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2023, time.December, 10), OrderTime: "12:00:00", TotalAmount: 400},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 5), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 20), OrderTime: "12:00:00", TotalAmount: 200},
		},
		nil,
	)

	rows := MonthlySalesTrend(snap)

	assert.Len(t, rows, 2)
	assert.Equal(t, 2023, rows[0].Year)
	assert.Equal(t, time.December, rows[0].Month)
	assert.Equal(t, 400.0, rows[0].TotalSales)
	assert.Nil(t, rows[0].PrevSales)

	assert.Equal(t, 2024, rows[1].Year)
	assert.Equal(t, time.January, rows[1].Month)
	assert.Equal(t, 300.0, rows[1].TotalSales)
	assert.Equal(t, 400.0, *rows[1].PrevSales)
}

func TestRiderEfficiency(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		[]models.Rider{{ID: 1, Name: "Fast"}, {ID: 2, Name: "Slow"}},
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "A", OrderDate: td(2024, time.January, 2), OrderTime: "12:00:00", TotalAmount: 100},
		},
		[]models.Delivery{
			delivered(1, 1, "12:10:00", 1),
			delivered(2, 2, "12:45:00", 2),
		},
	)

	summary := RiderEfficiency(snap)

	assert.NotNil(t, summary)
	assert.Equal(t, 10.0, summary.FastestAvgMinutes)
	assert.Equal(t, 45.0, summary.SlowestAvgMinutes)
}

func TestRiderEfficiencyEmptySnapshot(t *testing.T) {
	assert.Nil(t, RiderEfficiency(NewSnapshot(nil, nil, nil, nil, nil)))
}

func TestSeasonalItemPopularity(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "Dosa", OrderDate: td(2024, time.May, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "Dosa", OrderDate: td(2024, time.June, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 3, CustomerID: 1, RestaurantID: 1, OrderItem: "Dosa", OrderDate: td(2024, time.December, 1), OrderTime: "12:00:00", TotalAmount: 100},
			{ID: 4, CustomerID: 1, RestaurantID: 1, OrderItem: "Biryani", OrderDate: td(2024, time.July, 1), OrderTime: "12:00:00", TotalAmount: 100},
		},
		nil,
	)

	rows := SeasonalItemPopularity(snap)

	assert.Equal(t, []SeasonRow{
		{Item: "Biryani", Season: "Summer", Orders: 1},
		{Item: "Dosa", Season: "Spring", Orders: 2},
		{Item: "Dosa", Season: "Winter", Orders: 1},
	}, rows)
}

func TestCityRevenueRanking(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{
			{ID: 1, Name: "A", City: "Mumbai"},
			{ID: 2, Name: "B", City: "Bengaluru"},
			{ID: 3, Name: "C", City: "Delhi"},
		},
		[]models.Customer{{ID: 1, Name: "C"}},
		nil,
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "X", OrderDate: td(2023, time.January, 1), OrderTime: "12:00:00", TotalAmount: 500},
			{ID: 2, CustomerID: 1, RestaurantID: 2, OrderItem: "X", OrderDate: td(2023, time.February, 1), OrderTime: "12:00:00", TotalAmount: 500},
			{ID: 3, CustomerID: 1, RestaurantID: 3, OrderItem: "X", OrderDate: td(2023, time.March, 1), OrderTime: "12:00:00", TotalAmount: 200},
			// Wrong year, must be ignored.
			{ID: 4, CustomerID: 1, RestaurantID: 3, OrderItem: "X", OrderDate: td(2024, time.March, 1), OrderTime: "12:00:00", TotalAmount: 9000},
		},
		nil,
	)

	rows := CityRevenueRanking(snap, 2023)

	assert.Equal(t, []CityRevenueRow{
		{City: "Bengaluru", Revenue: 500, Rank: 1},
		{City: "Mumbai", Revenue: 500, Rank: 1},
		{City: "Delhi", Revenue: 200, Rank: 2},
	}, rows)
}

func TestReportsAreIdempotent(t *testing.T) {
	snap := NewSnapshot(
		[]models.Restaurant{{ID: 1, Name: "R", City: "X"}},
		[]models.Customer{{ID: 1, Name: "Arjun Mehta"}},
		[]models.Rider{{ID: 1, Name: "V"}},
		[]models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "Pizza", OrderDate: td(2024, time.January, 1), OrderTime: "13:00:00", TotalAmount: 300},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "Burger", OrderDate: td(2024, time.February, 1), OrderTime: "21:00:00", TotalAmount: 150},
		},
		[]models.Delivery{
			delivered(1, 1, "13:25:00", 1),
		},
	)
	asOf := td(2024, time.June, 1)

	assert.Equal(t, TopDishesForCustomer(snap, "Arjun Mehta", asOf), TopDishesForCustomer(snap, "Arjun Mehta", asOf))
	assert.Equal(t, PopularTimeSlots(snap), PopularTimeSlots(snap))
	assert.Equal(t, UndeliveredOrdersByRestaurant(snap), UndeliveredOrdersByRestaurant(snap))
	assert.Equal(t, MonthlySalesTrend(snap), MonthlySalesTrend(snap))
	assert.Equal(t, RiderAverageDeliveryTime(snap), RiderAverageDeliveryTime(snap))
}
