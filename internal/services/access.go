package services

import (
	"farm_market/internal/auth"
	"farm_market/internal/models"
)

// Action is an operation subject to the authorization predicate.
type Action string

const (
	ActionViewProfile      Action = "profile.view"
	ActionListShops        Action = "shop.list"
	ActionListMyShops      Action = "shop.list_mine"
	ActionCreateShop       Action = "shop.create"
	ActionCreateProduct    Action = "product.create"
	ActionUpdateProduct    Action = "product.update"
	ActionDeleteProduct    Action = "product.delete"
	ActionListShopProducts Action = "product.list_shop"
	ActionSearchProducts   Action = "product.search"
	ActionListCatalog      Action = "product.list_all"
)

type requirement struct {
	role  models.Role // empty: any authenticated role
	owned bool        // the parent shop must belong to the actor
}

var requirements = map[Action]requirement{
	ActionViewProfile:      {},
	ActionListShops:        {},
	ActionListMyShops:      {role: models.RoleShopper},
	ActionCreateShop:       {role: models.RoleShopper},
	ActionCreateProduct:    {role: models.RoleShopper, owned: true},
	ActionUpdateProduct:    {role: models.RoleShopper, owned: true},
	ActionDeleteProduct:    {role: models.RoleShopper, owned: true},
	ActionListShopProducts: {},
	ActionSearchProducts:   {},
	ActionListCatalog:      {role: models.RoleFarmer},
}

// CheckRole applies the identity rules: a caller must be present and, where
// the action names one, hold the required role. It runs before any lookup.
func CheckRole(actor *auth.Actor, action Action) error {
	if actor == nil || actor.UserID == 0 {
		return ErrUnauthenticated
	}
	req, ok := requirements[action]
	if !ok {
		return newError(KindRoleDenied, "unknown action "+string(action), nil)
	}
	if req.role != "" && actor.Role != req.role {
		return newError(KindRoleDenied, "access denied. "+string(req.role)+"s only", nil)
	}
	return nil
}

// Authorize is the full predicate for an action on a shop's resources, first
// failure wins: authenticated, role, parent shop exists, actor owns it. shop
// is nil when the parent shop does not exist. Authorize has no side effects.
func Authorize(actor *auth.Actor, action Action, shop *models.Shop) error {
	if err := CheckRole(actor, action); err != nil {
		return err
	}
	if !requirements[action].owned {
		return nil
	}
	if shop == nil {
		return notFound("shop")
	}
	if !shop.OwnedBy(actor.UserID) {
		return ErrOwnershipDenied
	}
	return nil
}
