package repositories

import (
	"errors"
	"fmt"

	"solifin/internal/models"

	"gorm.io/gorm"
)

// ErrPackNotFound reports a pack that does not exist or is inactive.
var ErrPackNotFound = errors.New("pack not found")

// PackRepository reads membership packs and records purchases.
type PackRepository interface {
	ListActive() ([]models.Pack, error)
	GetActiveByID(id uint) (*models.Pack, error)
	CreateUserPack(purchase *models.UserPack) error
}

type packRepository struct {
	db *gorm.DB
}

// NewPackRepository creates a PackRepository over the given database.
func NewPackRepository(db *gorm.DB) PackRepository {
	return &packRepository{db: db}
}

func (r *packRepository) ListActive() ([]models.Pack, error) {
	var packs []models.Pack
	if err := r.db.Where("is_active = ?", true).Order("price_usd ASC").Find(&packs).Error; err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	return packs, nil
}

func (r *packRepository) GetActiveByID(id uint) (*models.Pack, error) {
	var pack models.Pack
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&pack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	return &pack, nil
}

func (r *packRepository) CreateUserPack(purchase *models.UserPack) error {
	if err := r.db.Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to record pack purchase: %w", err)
	}
	return nil
}
