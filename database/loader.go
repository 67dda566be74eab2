package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/arjunmehra/delivery-analytics/models"
	"github.com/arjunmehra/delivery-analytics/utils"
)

// Dataset is one full bulk load. Slices are inserted in foreign-key order:
// customers, restaurants, orders, riders, deliveries.
type Dataset struct {
	Customers   []models.Customer
	Restaurants []models.Restaurant
	Orders      []models.Order
	Riders      []models.Rider
	Deliveries  []models.Delivery
}

// IntegrityError reports a row whose foreign key points at nothing.
type IntegrityError struct {
	Entity string
	ID     uint
	Ref    string
	RefID  uint
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s %d references missing %s %d", e.Entity, e.ID, e.Ref, e.RefID)
}

// Migrate creates the five tables in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Restaurant{},
		&models.Rider{},
		&models.Order{},
		&models.Delivery{},
	)
}

// LoadDataset validates referential integrity and inserts the whole dataset
// inside one transaction. The snapshot is immutable afterwards; there is no
// incremental load path.
func LoadDataset(db *gorm.DB, ds *Dataset) error {
	if err := validate(ds); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(ds.Customers) > 0 {
			if err := tx.CreateInBatches(ds.Customers, 500).Error; err != nil {
				return err
			}
		}
		if len(ds.Restaurants) > 0 {
			if err := tx.CreateInBatches(ds.Restaurants, 500).Error; err != nil {
				return err
			}
		}
		if len(ds.Orders) > 0 {
			if err := tx.CreateInBatches(ds.Orders, 500).Error; err != nil {
				return err
			}
		}
		if len(ds.Riders) > 0 {
			if err := tx.CreateInBatches(ds.Riders, 500).Error; err != nil {
				return err
			}
		}
		if len(ds.Deliveries) > 0 {
			if err := tx.CreateInBatches(ds.Deliveries, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("dataset loaded: %d customers, %d restaurants, %d orders, %d riders, %d deliveries",
			len(ds.Customers), len(ds.Restaurants), len(ds.Orders), len(ds.Riders), len(ds.Deliveries))
	}
	return nil
}

func validate(ds *Dataset) error {
	customers := idSet(len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.ID] = struct{}{}
	}
	restaurants := idSet(len(ds.Restaurants))
	for _, r := range ds.Restaurants {
		restaurants[r.ID] = struct{}{}
	}
	riders := idSet(len(ds.Riders))
	for _, r := range ds.Riders {
		riders[r.ID] = struct{}{}
	}
	orders := idSet(len(ds.Orders))

	for _, o := range ds.Orders {
		if _, ok := customers[o.CustomerID]; !ok {
			return &IntegrityError{Entity: "order", ID: o.ID, Ref: "customer", RefID: o.CustomerID}
		}
		if _, ok := restaurants[o.RestaurantID]; !ok {
			return &IntegrityError{Entity: "order", ID: o.ID, Ref: "restaurant", RefID: o.RestaurantID}
		}
		if o.TotalAmount <= 0 {
			return fmt.Errorf("order %d: total_amount must be positive, got %.2f", o.ID, o.TotalAmount)
		}
		if o.OrderTime == "" {
			return fmt.Errorf("order %d: order_time is required", o.ID)
		}
		orders[o.ID] = struct{}{}
	}

	for _, d := range ds.Deliveries {
		if _, ok := orders[d.OrderID]; !ok {
			return &IntegrityError{Entity: "delivery", ID: d.ID, Ref: "order", RefID: d.OrderID}
		}
		if d.RiderID != nil {
			if _, ok := riders[*d.RiderID]; !ok {
				return &IntegrityError{Entity: "delivery", ID: d.ID, Ref: "rider", RefID: *d.RiderID}
			}
		}
	}
	return nil
}

func idSet(n int) map[uint]struct{} {
	return make(map[uint]struct{}, n)
}
