package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm_market/internal/auth"
	"farm_market/internal/models"
)

func TestAuthorize(t *testing.T) {
	shop := testShop()

	tests := []struct {
		name   string
		actor  *auth.Actor
		action Action
		shop   *models.Shop
		want   Kind
	}{
		{"no actor", nil, ActionCreateProduct, shop, KindUnauthenticated},
		{"zero user id", &auth.Actor{Role: models.RoleShopper}, ActionCreateProduct, shop, KindUnauthenticated},
		{"farmer creating product", farmer, ActionCreateProduct, shop, KindRoleDenied},
		{"farmer on missing shop", farmer, ActionUpdateProduct, nil, KindRoleDenied},
		{"shop missing", owner, ActionUpdateProduct, nil, KindNotFound},
		{"not owner", stranger, ActionDeleteProduct, shop, KindOwnershipDenied},
		{"owner", owner, ActionDeleteProduct, shop, ""},
		{"shopper catalog", owner, ActionListCatalog, nil, KindRoleDenied},
		{"farmer catalog", farmer, ActionListCatalog, nil, ""},
		{"farmer search", farmer, ActionSearchProducts, nil, ""},
		{"farmer creating shop", farmer, ActionCreateShop, nil, KindRoleDenied},
		{"shopper creating shop", stranger, ActionCreateShop, nil, ""},
		{"unknown action", owner, Action("shop.delete"), shop, KindRoleDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.shop)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestAuthorize_ReportsFirstFailure(t *testing.T) {
	// A farmer on a missing shop fails on role, not existence.
	err := Authorize(farmer, ActionCreateProduct, nil)
	assert.ErrorIs(t, err, ErrRoleDenied)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", notFound("product"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRoleDenied)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, "ok", outcome(nil))
}

func TestProductUpdate_Patch(t *testing.T) {
	t.Run("AppliesOnlyProvidedFields", func(t *testing.T) {
		patch, err := ProductUpdate{
			Description: ptr("fresh"),
			Amount:      ptr(`{"value": 5, "unit": "units"}`),
		}.patch()
		require.NoError(t, err)

		p := testProduct(oldImage)
		patch.apply(p)

		assert.Equal(t, "Tomatoes", p.Name)
		assert.Equal(t, "fresh", p.Description)
		assert.Equal(t, models.Amount{Value: 5, Unit: models.UnitUnits}, p.Amount)
		assert.Equal(t, 120.0, p.Price)
		assert.Equal(t, oldImage, p.ImageURL)
	})

	t.Run("Empty", func(t *testing.T) {
		patch, err := ProductUpdate{}.patch()
		require.NoError(t, err)
		assert.Equal(t, productPatch{}, patch)
	})

	t.Run("Malformed", func(t *testing.T) {
		for name, upd := range map[string]ProductUpdate{
			"blank name":     {Name: ptr(" ")},
			"word price":     {Price: ptr("cheap")},
			"negative price": {Price: ptr("-1")},
			"amount":         {Amount: ptr(`{"value": 1, "unit": "lb"}`)},
			"clear image":    {ClearImage: "yes please"},
		} {
			_, err := upd.patch()
			assert.ErrorIs(t, err, ErrValidationFailed, name)
		}
	})
}

func TestCheck_ReportsFieldsByJSONName(t *testing.T) {
	err := check(ShopInput{Name: "Green"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "contactNumber, location")

	err = check(RegisterInput{Username: "w", Email: "w@example.com", Password: "p", Location: "Nyeri", ContactNumber: "07", Role: "admin"})
	assert.Contains(t, err.Error(), "role must be one of: farmer, shopper")

	err = check(credentials{Email: "not-an-email", Password: "p"})
	assert.Contains(t, err.Error(), "email must be a valid email address")
}
