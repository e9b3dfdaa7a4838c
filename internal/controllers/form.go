package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farm_market/internal/imagestore"
	"farm_market/internal/services"
)

const imageField = "image"

// productCreateForm holds a multipart create request. Values other than the
// target shop are passed on raw; the service checks them after ownership.
type productCreateForm struct {
	ShopID      uint   `form:"shopId" binding:"required"`
	Name        string `form:"name"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Category    string `form:"category"`
	Amount      string `form:"amount"`
}

// productUpdateForm holds a partial update. A nil field was absent from the
// form; a present but blank one is kept so it can clear the stored value.
type productUpdateForm struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Price       *string `form:"price"`
	Category    *string `form:"category"`
	Amount      *string `form:"amount"`
	ClearImage  string  `form:"clearImage"`
}

// readImage returns the uploaded image, or nil when the request carries none.
// Only the size cap is enforced here; content is checked before upload.
func readImage(c *gin.Context, maxBytes int64) (*imagestore.Image, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, services.Validation("could not read image: %v", err)
	}
	if fh.Size > maxBytes {
		return nil, services.Validation("image exceeds %d bytes", maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, services.Validation("could not read image: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, services.Validation("could not read image: %v", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, services.Validation("image exceeds %d bytes", maxBytes)
	}
	return &imagestore.Image{Filename: fh.Filename, Data: data}, nil
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, services.Validation("invalid %s", name)
	}
	return uint(id), nil
}

func productInput(c *gin.Context, maxImageBytes int64) (services.ProductInput, *imagestore.Image, error) {
	var form productCreateForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductInput{}, nil, services.Validation("%s", err.Error())
	}

	in := services.ProductInput{
		ShopID:      form.ShopID,
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		Amount:      form.Amount,
	}
	img, err := readImage(c, maxImageBytes)
	return in, img, err
}

func productUpdate(c *gin.Context, maxImageBytes int64) (services.ProductUpdate, *imagestore.Image, error) {
	var form productUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductUpdate{}, nil, services.Validation("%s", err.Error())
	}

	upd := services.ProductUpdate{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		Amount:      form.Amount,
		ClearImage:  form.ClearImage,
	}
	img, err := readImage(c, maxImageBytes)
	return upd, img, err
}
