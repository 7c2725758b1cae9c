package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the inventory bounded context. Intended to
// replace adapter-level automigrate in deployments that manage DDL centrally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&inventoryRecord{})
}

// Inventory schema mirrors the inventory Postgres adapter.
type inventoryRecord struct {
	SKU       string    `gorm:"primaryKey;column:sku;size:128"`
	Name      string    `gorm:"column:name"`
	Available int       `gorm:"column:available"`
	Location  string    `gorm:"column:location"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (inventoryRecord) TableName() string { return "inventory_records" }
