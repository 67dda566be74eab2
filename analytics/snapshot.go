package analytics

import (
	"gorm.io/gorm"

	"github.com/arjunmehra/delivery-analytics/models"
)

// Snapshot is an immutable view of the five entity collections with the
// foreign-key indexes every report needs, built once per load. Reports only
// read from it, so any number of them can run against the same snapshot
// without coordination.
type Snapshot struct {
	restaurants []models.Restaurant
	customers   []models.Customer
	riders      []models.Rider
	orders      []models.Order
	deliveries  []models.Delivery

	restaurantByID  map[uint]*models.Restaurant
	customerByID    map[uint]*models.Customer
	riderByID       map[uint]*models.Rider
	orderByID       map[uint]*models.Order
	deliveryByOrder map[uint]*models.Delivery
}

// NewSnapshot indexes the given collections. The slices are not copied;
// callers hand over ownership.
func NewSnapshot(
	restaurants []models.Restaurant,
	customers []models.Customer,
	riders []models.Rider,
	orders []models.Order,
	deliveries []models.Delivery,
) *Snapshot {
	s := &Snapshot{
		restaurants:     restaurants,
		customers:       customers,
		riders:          riders,
		orders:          orders,
		deliveries:      deliveries,
		restaurantByID:  make(map[uint]*models.Restaurant, len(restaurants)),
		customerByID:    make(map[uint]*models.Customer, len(customers)),
		riderByID:       make(map[uint]*models.Rider, len(riders)),
		orderByID:       make(map[uint]*models.Order, len(orders)),
		deliveryByOrder: make(map[uint]*models.Delivery, len(deliveries)),
	}
	for i := range restaurants {
		s.restaurantByID[restaurants[i].ID] = &restaurants[i]
	}
	for i := range customers {
		s.customerByID[customers[i].ID] = &customers[i]
	}
	for i := range riders {
		s.riderByID[riders[i].ID] = &riders[i]
	}
	for i := range orders {
		s.orderByID[orders[i].ID] = &orders[i]
	}
	for i := range deliveries {
		s.deliveryByOrder[deliveries[i].OrderID] = &deliveries[i]
	}
	return s
}

// Load reads all five tables into a fresh snapshot.
func Load(db *gorm.DB) (*Snapshot, error) {
	var (
		restaurants []models.Restaurant
		customers   []models.Customer
		riders      []models.Rider
		orders      []models.Order
		deliveries  []models.Delivery
	)
	if err := db.Order("id").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&riders).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return NewSnapshot(restaurants, customers, riders, orders, deliveries), nil
}

// Orders returns the number of orders in the snapshot.
func (s *Snapshot) Orders() int { return len(s.orders) }

func (s *Snapshot) restaurantName(id uint) string {
	if r := s.restaurantByID[id]; r != nil {
		return r.Name
	}
	return ""
}

func (s *Snapshot) restaurantCity(id uint) string {
	if r := s.restaurantByID[id]; r != nil {
		return r.City
	}
	return ""
}

func (s *Snapshot) customerName(id uint) string {
	if c := s.customerByID[id]; c != nil {
		return c.Name
	}
	return ""
}

func (s *Snapshot) riderName(id uint) string {
	if r := s.riderByID[id]; r != nil {
		return r.Name
	}
	return ""
}

// delivered reports whether the order has a delivery record marked Delivered.
func (s *Snapshot) delivered(orderID uint) bool {
	d := s.deliveryByOrder[orderID]
	return d != nil && d.Status == models.StatusDelivered
}
