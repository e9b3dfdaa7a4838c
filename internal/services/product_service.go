package services

import (
	"context"
	"errors"
	"strings"

	logrus "github.com/sirupsen/logrus"

	"farm_market/internal/auth"
	"farm_market/internal/imagestore"
	"farm_market/internal/logger"
	"farm_market/internal/metrics"
	"farm_market/internal/models"
	"farm_market/internal/repository"
)

// ProductService owns the product lifecycle: authorization, validation, the
// record write and the image side effects, in that order.
type ProductService struct {
	shops    repository.ShopRepository
	products repository.ProductRepository
	images   *ImageLifecycle
	log      *logrus.Logger
}

func NewProductService(
	shops repository.ShopRepository,
	products repository.ProductRepository,
	images *ImageLifecycle,
	log *logrus.Logger,
) *ProductService {
	return &ProductService{shops: shops, products: products, images: images, log: log}
}

// Create adds a product to one of the actor's shops. Fields are checked only
// after ownership. With an image, the upload happens first; if it fails
// nothing is written.
func (s *ProductService) Create(ctx context.Context, actor *auth.Actor, in ProductInput, img *imagestore.Image) (_ *models.Product, err error) {
	defer func() { metrics.RecordMutation("product", "create", outcome(err)) }()

	if err := CheckRole(actor, ActionCreateProduct); err != nil {
		return nil, err
	}
	shop, err := s.parentShop(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionCreateProduct, shop); err != nil {
		return nil, err
	}
	product, err := in.product()
	if err != nil {
		return nil, err
	}
	product.ShopID = shop.ID

	if img != nil {
		ref, err := s.images.Upload(ctx, img)
		if err != nil {
			return nil, err
		}
		product.ImageURL = ref
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.images.Discard(ctx, product.ImageURL, "product create failed")
		return nil, internal("could not create product", err)
	}

	logger.FromCtx(ctx, s.log).WithFields(logrus.Fields{
		"product_id": product.ID,
		"shop_id":    shop.ID,
		"user_id":    actor.UserID,
		"has_image":  product.HasImage(),
	}).Info("product created")

	product.Shop = shop
	return product, nil
}

// Update applies a partial update. Field and image checks run only once the
// actor owns the product. A new image is uploaded before the record is saved
// and the previous image is deleted only after the save succeeded.
func (s *ProductService) Update(ctx context.Context, actor *auth.Actor, productID uint, upd ProductUpdate, img *imagestore.Image) (_ *models.Product, err error) {
	defer func() { metrics.RecordMutation("product", "update", outcome(err)) }()

	product, shop, err := s.authorizeExisting(ctx, actor, ActionUpdateProduct, productID)
	if err != nil {
		return nil, err
	}
	patch, err := upd.patch()
	if err != nil {
		return nil, err
	}

	newRef := ""
	if img != nil {
		if newRef, err = s.images.Upload(ctx, img); err != nil {
			return nil, err
		}
	}

	oldRef := product.ImageURL
	patch.apply(product)
	switch {
	case newRef != "":
		product.ImageURL = newRef
	case patch.clearImage:
		product.ImageURL = ""
	}

	if err := s.products.Save(ctx, product); err != nil {
		s.images.Discard(ctx, newRef, "product update failed")
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("product")
		}
		return nil, internal("could not update product", err)
	}

	if oldRef != product.ImageURL {
		s.images.Discard(ctx, oldRef, "image replaced")
	}

	logger.FromCtx(ctx, s.log).WithFields(logrus.Fields{
		"product_id":    product.ID,
		"user_id":       actor.UserID,
		"image_changed": oldRef != product.ImageURL,
	}).Info("product updated")

	product.Shop = shop
	return product, nil
}

// Delete removes the product's image, then the record. An image store
// failure never blocks the record deletion.
func (s *ProductService) Delete(ctx context.Context, actor *auth.Actor, productID uint) (err error) {
	defer func() { metrics.RecordMutation("product", "delete", outcome(err)) }()

	product, _, err := s.authorizeExisting(ctx, actor, ActionDeleteProduct, productID)
	if err != nil {
		return err
	}

	s.images.Discard(ctx, product.ImageURL, "product deleted")
	if err := s.products.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("product")
		}
		return internal("could not delete product", err)
	}

	logger.FromCtx(ctx, s.log).WithFields(logrus.Fields{
		"product_id": product.ID,
		"user_id":    actor.UserID,
	}).Info("product deleted")
	return nil
}

// ListByShop returns one shop's products to any authenticated caller.
func (s *ProductService) ListByShop(ctx context.Context, actor *auth.Actor, shopID uint) ([]models.Product, error) {
	if err := CheckRole(actor, ActionListShopProducts); err != nil {
		return nil, err
	}
	if _, err := s.parentShop(ctx, shopID); err != nil {
		return nil, err
	}
	products, err := s.products.ListByShop(ctx, shopID)
	if err != nil {
		return nil, internal("could not list products", err)
	}
	return products, nil
}

// Search matches name substrings case-insensitively across every shop.
func (s *ProductService) Search(ctx context.Context, actor *auth.Actor, term string) ([]models.Product, error) {
	if err := CheckRole(actor, ActionSearchProducts); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, Validation("name query parameter is required")
	}
	products, err := s.products.SearchByName(ctx, term)
	if err != nil {
		return nil, internal("could not search products", err)
	}
	return products, nil
}

// ListCatalog returns every product for price comparison. Farmers only.
func (s *ProductService) ListCatalog(ctx context.Context, actor *auth.Actor) ([]models.Product, error) {
	if err := CheckRole(actor, ActionListCatalog); err != nil {
		return nil, err
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, internal("could not list products", err)
	}
	return products, nil
}

// authorizeExisting loads a product and its shop and runs the predicate.
// The role check runs before any lookup.
func (s *ProductService) authorizeExisting(ctx context.Context, actor *auth.Actor, action Action, productID uint) (*models.Product, *models.Shop, error) {
	if err := CheckRole(actor, action); err != nil {
		return nil, nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, notFound("product")
		}
		return nil, nil, internal("could not load product", err)
	}

	shop, err := s.shops.FindByID(ctx, product.ShopID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, internal("could not load shop", err)
	}
	if err := Authorize(actor, action, shop); err != nil {
		return nil, nil, err
	}
	return product, shop, nil
}

func (s *ProductService) parentShop(ctx context.Context, shopID uint) (*models.Shop, error) {
	if shopID == 0 {
		return nil, notFound("shop")
	}
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("shop")
		}
		return nil, internal("could not load shop", err)
	}
	return shop, nil
}
