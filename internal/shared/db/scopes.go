package db

import (
	"math"

	"gorm.io/gorm"
)

// Paginate applies LIMIT/OFFSET for a 1-based page. A page whose offset
// does not fit in an int selects nothing.
func Paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if limit > 0 && page-1 > math.MaxInt/limit {
			return tx.Where("1 = 0")
		}
		return tx.Offset((page - 1) * limit).Limit(limit)
	}
}

// NewestFirst orders by created_at then id, both descending, so rows created
// within the same millisecond keep a stable order.
func NewestFirst() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC").Order("id DESC")
	}
}
