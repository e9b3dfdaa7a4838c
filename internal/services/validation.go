package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"farm_market/internal/models"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct's validate tags. Missing fields are reported
// together, sorted by name; otherwise the first malformed field is.
func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Validation("%v", err)
	}

	var missing []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Validation("missing required field(s): %s", strings.Join(missing, ", "))
	}
	return Validation("%s", describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return fmt.Sprintf("%s must be a number", fe.Field())
	case "boolean":
		return fmt.Sprintf("%s must be true or false", fe.Field())
	case "min":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

type RegisterInput struct {
	Username      string      `json:"username" validate:"required"`
	Email         string      `json:"email" validate:"required,email"`
	Password      string      `json:"password" validate:"required"`
	Location      string      `json:"location" validate:"required"`
	ContactNumber string      `json:"contactNumber" validate:"required"`
	Role          models.Role `json:"role" validate:"required,oneof=farmer shopper"`
}

func (in *RegisterInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	in.Location = strings.TrimSpace(in.Location)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ShopInput struct {
	Name          string `json:"name" validate:"required"`
	Location      string `json:"location" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
}

func (in *ShopInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
}

// ProductInput is a create request as submitted. Price and Amount stay raw
// until the actor has been authorized against the target shop.
type ProductInput struct {
	ShopID      uint   `json:"shopId"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required,numeric"`
	Category    string `json:"category"`
	Amount      string `json:"amount" validate:"required"`
}

// product validates the input and builds the record it describes.
func (in ProductInput) product() (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)
	in.Amount = strings.TrimSpace(in.Amount)
	if err := check(in); err != nil {
		return nil, err
	}

	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	amount, err := models.ParseAmount(in.Amount)
	if err != nil {
		return nil, Validation("%s", err.Error())
	}
	return &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Category:    in.Category,
		Amount:      amount,
		ShopID:      in.ShopID,
	}, nil
}

// ProductUpdate is a partial update as submitted: nil fields keep their
// current value. ClearImage drops the current image when no new image is
// supplied.
type ProductUpdate struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	Price       *string `json:"price" validate:"omitnil,numeric"`
	Category    *string `json:"category"`
	Amount      *string `json:"amount"`
	ClearImage  string  `json:"clearImage" validate:"omitempty,boolean"`
}

// productPatch is a validated ProductUpdate.
type productPatch struct {
	name        *string
	description *string
	price       *float64
	category    *string
	amount      *models.Amount
	clearImage  bool
}

func (u ProductUpdate) patch() (productPatch, error) {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		u.Name = &name
	}
	if u.Price != nil {
		price := strings.TrimSpace(*u.Price)
		u.Price = &price
	}
	u.ClearImage = strings.TrimSpace(u.ClearImage)
	if err := check(u); err != nil {
		return productPatch{}, err
	}

	p := productPatch{name: u.Name, description: u.Description, category: u.Category}
	if u.Price != nil {
		price, err := parsePrice(*u.Price)
		if err != nil {
			return productPatch{}, err
		}
		p.price = &price
	}
	if u.Amount != nil {
		amount, err := models.ParseAmount(strings.TrimSpace(*u.Amount))
		if err != nil {
			return productPatch{}, Validation("%s", err.Error())
		}
		p.amount = &amount
	}
	if u.ClearImage != "" {
		p.clearImage, _ = strconv.ParseBool(u.ClearImage)
	}
	return p, nil
}

// apply copies the provided fields onto p. The image is handled separately.
func (u productPatch) apply(p *models.Product) {
	if u.name != nil {
		p.Name = *u.name
	}
	if u.description != nil {
		p.Description = *u.description
	}
	if u.price != nil {
		p.Price = *u.price
	}
	if u.category != nil {
		p.Category = *u.category
	}
	if u.amount != nil {
		p.Amount = *u.amount
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, Validation("price must be a number")
	}
	if err := validate.Var(price, "gte=0"); err != nil {
		return 0, Validation("price must be a non-negative number")
	}
	return price, nil
}
