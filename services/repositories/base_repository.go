package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository holds the shared gorm handle embedded by every repository.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}
