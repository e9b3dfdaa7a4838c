package models

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// Unit is the closed set of quantity units a product amount may use.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLitre      Unit = "L"
	UnitMillilitre Unit = "mL"
	UnitUnits      Unit = "units"
)

var units = map[Unit]struct{}{
	UnitKilogram:   {},
	UnitGram:       {},
	UnitLitre:      {},
	UnitMillilitre: {},
	UnitUnits:      {},
}

func (u Unit) Valid() bool {
	_, ok := units[u]
	return ok
}

// Amount is the quantity a product is sold in, e.g. 50 kg.
type Amount struct {
	Value float64 `json:"value" gorm:"not null"`
	Unit  Unit    `json:"unit" gorm:"type:varchar(8);not null"`
}

// Validate checks value is non-negative and unit is known.
func (a Amount) Validate() error {
	if a.Value < 0 {
		return fmt.Errorf("amount value must be >= 0, got %v", a.Value)
	}
	if !a.Unit.Valid() {
		return fmt.Errorf("amount unit %q must be one of kg, g, L, mL, units", a.Unit)
	}
	return nil
}

var errAmountObject = errors.New("amount must be a JSON object")

// ParseAmount decodes an amount sent as a JSON string such as
// {"value": 50, "unit": "kg"} and validates it.
func ParseAmount(raw string) (Amount, error) {
	if !gjson.Valid(raw) {
		return Amount{}, errAmountObject
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return Amount{}, errAmountObject
	}

	value, unit := doc.Get("value"), doc.Get("unit")
	if value.Type != gjson.Number {
		return Amount{}, errors.New("amount.value must be a number")
	}
	if unit.Type != gjson.String {
		return Amount{}, errors.New("amount.unit must be a string")
	}
	a := Amount{Value: value.Float(), Unit: Unit(unit.String())}
	return a, a.Validate()
}

type Product struct {
	gorm.Model
	Name        string  `json:"name" gorm:"index;not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	Category    string  `json:"category"`
	Amount      Amount  `json:"amount" gorm:"embedded;embeddedPrefix:amount_"`
	ShopID      uint    `json:"shopId" gorm:"index;not null"`
	// ImageURL is the image store reference; empty when the product has no image.
	ImageURL string `json:"image,omitempty"`

	Shop *Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
}

// HasImage reports whether an image store object backs the product.
func (p *Product) HasImage() bool {
	return p.ImageURL != ""
}
