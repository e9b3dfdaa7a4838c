package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"farm_market/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	ListByShop(ctx context.Context, shopID uint) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	SearchByName(ctx context.Context, term string) ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Omit("Shop").Create(product).Error)
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// Save writes every column of an existing product in a single UPDATE. A row
// deleted in the meantime yields ErrNotFound and is never re-inserted.
func (r *productRepository) Save(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(product).
		Select("*").
		Omit("Shop", "CreatedAt", "DeletedAt").
		Updates(product)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row outright. Its image is deleted first, so a
// soft-deleted row would be left pointing at nothing.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.Product{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) ListByShop(ctx context.Context, shopID uint) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("shop_id = ?", shopID))
}

func (r *productRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx))
}

// SearchByName matches term as a case-insensitive substring of the name,
// across every shop.
func (r *productRepository) SearchByName(ctx context.Context, term string) ([]models.Product, error) {
	pattern := "%" + escapeLike(term) + "%"
	return r.find(r.db.WithContext(ctx).Where("name ILIKE ?", pattern))
}

func (r *productRepository) find(query *gorm.DB) ([]models.Product, error) {
	products := []models.Product{}
	if err := query.Preload("Shop").Order("id").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
