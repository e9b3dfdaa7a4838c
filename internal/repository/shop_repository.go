package repository

import (
	"context"

	"gorm.io/gorm"

	"farm_market/internal/models"
)

// ShopFilter narrows List. A zero OwnerID lists every shop.
type ShopFilter struct {
	OwnerID uint
}

type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	FindByID(ctx context.Context, id uint) (*models.Shop, error)
	List(ctx context.Context, filter ShopFilter) ([]models.Shop, error)
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

// Create inserts the shop. A taken name yields ErrDuplicateKey.
func (r *shopRepository) Create(ctx context.Context, shop *models.Shop) error {
	return translate(r.db.WithContext(ctx).Omit("Owner", "Products").Create(shop).Error)
}

func (r *shopRepository) FindByID(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, translate(err)
	}
	return &shop, nil
}

// List returns shops with their owner preloaded, oldest first.
func (r *shopRepository) List(ctx context.Context, filter ShopFilter) ([]models.Shop, error) {
	query := r.db.WithContext(ctx).Preload("Owner")
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}

	shops := []models.Shop{}
	if err := query.Order("id").Find(&shops).Error; err != nil {
		return nil, translate(err)
	}
	return shops, nil
}
