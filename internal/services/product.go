package services

//go:generate mockgen -source=product.go -destination=product_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
)

// ProductWriter stores products.
type ProductWriter interface {
	Save(ctx context.Context, p models.Product) (*models.Product, error)
}

// AddProductInput is the data accepted by AddProduct. Stock and Price are
// pointers so that absent and zero can be told apart.
type AddProductInput struct {
	Name        string
	Description *string
	Stock       *int
	Type        *string
	Color       *string
	Price       *float64
}

// ProductService adds products to the catalogue.
type ProductService struct {
	writer ProductWriter
}

// NewProductService creates a new ProductService instance.
func NewProductService(writer ProductWriter) *ProductService {
	return &ProductService{writer: writer}
}

// AddProduct validates and stores a product. Stock may be zero; price may not.
func (svc *ProductService) AddProduct(ctx context.Context, in AddProductInput) (*models.Product, error) {
	if in.Name == "" || in.Stock == nil || in.Price == nil || *in.Price == 0 {
		return nil, fmt.Errorf("%w: name, stock and price are required", ErrValidation)
	}

	product, err := svc.writer.Save(ctx, models.Product{
		Name:        in.Name,
		Description: in.Description,
		Stock:       *in.Stock,
		Type:        in.Type,
		Color:       in.Color,
		Price:       *in.Price,
	})
	if err != nil {
		var dup *models.DuplicateError
		if errors.As(err, &dup) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, dup.Message)
		}
		logger.Log.Errorw("failed to save product", "name", in.Name, "err", err)
		return nil, err
	}

	return product, nil
}
