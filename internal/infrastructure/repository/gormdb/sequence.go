package gormdb

import (
	"context"
	"fmt"

	"github.com/mrops-br/product-ms/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productSequenceName = "product"

// ProductSequence is a domain.ProductSequence stored in the sequences table,
// so ids keep increasing across restarts and across instances sharing the database.
type ProductSequence struct {
	db *gorm.DB
}

// NewProductSequence creates a database-backed product sequence
func NewProductSequence(db *gorm.DB) *ProductSequence {
	return &ProductSequence{db: db}
}

// Next returns the current value and advances the sequence
func (s *ProductSequence) Next(ctx context.Context) (int64, error) {
	var value int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := sequenceRecord{Name: productSequenceName, Value: domain.FirstProductSequence}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		// the increment takes the write lock before the read
		if err := tx.Model(&sequenceRecord{}).
			Where("name = ?", productSequenceName).
			Update("value", gorm.Expr("value + 1")).Error; err != nil {
			return err
		}

		var current sequenceRecord
		if err := tx.Where("name = ?", productSequenceName).First(&current).Error; err != nil {
			return err
		}
		value = current.Value - 1
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance product sequence: %w", err)
	}
	return value, nil
}
