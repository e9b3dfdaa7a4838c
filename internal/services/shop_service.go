package services

import (
	"context"
	"errors"

	logrus "github.com/sirupsen/logrus"

	"farm_market/internal/auth"
	"farm_market/internal/logger"
	"farm_market/internal/metrics"
	"farm_market/internal/models"
	"farm_market/internal/repository"
)

type ShopService struct {
	shops repository.ShopRepository
	log   *logrus.Logger
}

func NewShopService(shops repository.ShopRepository, log *logrus.Logger) *ShopService {
	return &ShopService{shops: shops, log: log}
}

// Create opens a shop owned by the actor. Shop names are unique.
func (s *ShopService) Create(ctx context.Context, actor *auth.Actor, in ShopInput) (_ *models.Shop, err error) {
	defer func() { metrics.RecordMutation("shop", "create", outcome(err)) }()

	if err := CheckRole(actor, ActionCreateShop); err != nil {
		return nil, err
	}
	in.normalize()
	if err := check(in); err != nil {
		return nil, err
	}

	shop := &models.Shop{
		Name:          in.Name,
		Location:      in.Location,
		ContactNumber: in.ContactNumber,
		OwnerID:       actor.UserID,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(KindDuplicateKey, "shop name already taken", err)
		}
		return nil, internal("could not create shop", err)
	}

	logger.FromCtx(ctx, s.log).WithFields(logrus.Fields{
		"shop_id": shop.ID,
		"user_id": actor.UserID,
	}).Info("shop created")
	return shop, nil
}

// List returns every shop with its owner.
func (s *ShopService) List(ctx context.Context, actor *auth.Actor) ([]models.Shop, error) {
	if err := CheckRole(actor, ActionListShops); err != nil {
		return nil, err
	}
	shops, err := s.shops.List(ctx, repository.ShopFilter{})
	if err != nil {
		return nil, internal("could not list shops", err)
	}
	return shops, nil
}

// ListMine returns the shops owned by the actor.
func (s *ShopService) ListMine(ctx context.Context, actor *auth.Actor) ([]models.Shop, error) {
	if err := CheckRole(actor, ActionListMyShops); err != nil {
		return nil, err
	}
	shops, err := s.shops.List(ctx, repository.ShopFilter{OwnerID: actor.UserID})
	if err != nil {
		return nil, internal("could not list shops", err)
	}
	return shops, nil
}
