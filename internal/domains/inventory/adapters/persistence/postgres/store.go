package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/orderops/shipsplit/internal/domains/inventory/domain"
	"github.com/orderops/shipsplit/internal/domains/inventory/ports"
)

var _ ports.Store = (*Store)(nil)

// Store persists the inventory mapping in PostgreSQL using GORM. The guarded
// UPDATE makes Reserve atomic without an application-level lock.
type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed store. Caller manages the DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	store := &Store{db: db}
	if db != nil {
		_ = db.AutoMigrate(&inventoryRecord{})
	}
	return store
}

// inventoryRecord maps the inventory entity to its relational table.
type inventoryRecord struct {
	SKU       string    `gorm:"primaryKey;column:sku;size:128"`
	Name      string    `gorm:"column:name"`
	Available int       `gorm:"column:available"`
	Location  string    `gorm:"column:location"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (inventoryRecord) TableName() string { return "inventory_records" }

// Reserve decrements available stock with a guarded update so the quantity
// can never go negative, even under concurrent callers.
func (s *Store) Reserve(ctx context.Context, sku string, quantity int) (bool, error) {
	if err := s.ensureDB(); err != nil {
		return false, err
	}
	if sku == "" || quantity <= 0 {
		return false, nil
	}
	result := s.db.WithContext(ctx).
		Model(&inventoryRecord{}).
		Where("sku = ? AND available >= ?", sku, quantity).
		UpdateColumn("available", gorm.Expr("available - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ReplaceAll swaps the whole table in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, records []domain.Record) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&inventoryRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		rows := make([]inventoryRecord, 0, len(records))
		for _, record := range records {
			rows = append(rows, toRecord(record))
		}
		return tx.CreateInBatches(rows, 200).Error
	})
}

// List returns the current mapping ordered by SKU.
func (s *Store) List(ctx context.Context) ([]domain.Record, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []inventoryRecord
	if err := s.db.WithContext(ctx).Order("sku").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	return records, nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres inventory store not configured")
	}
	return nil
}

func toRecord(record domain.Record) inventoryRecord {
	return inventoryRecord{
		SKU:       record.SKU,
		Name:      record.Name,
		Available: record.Available,
		Location:  record.Location,
	}
}

func (r inventoryRecord) toDomain() domain.Record {
	return domain.Record{
		SKU:       r.SKU,
		Name:      r.Name,
		Available: r.Available,
		Location:  r.Location,
	}
}
