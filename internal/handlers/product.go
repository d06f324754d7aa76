package handlers

//go:generate mockgen -source=product.go -destination=product_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
)

// ProductAdder stores a new product.
type ProductAdder interface {
	AddProduct(ctx context.Context, in services.AddProductInput) (*models.Product, error)
}

// AddProductRequest is the body of the add product call
// swagger:model AddProductRequest
type AddProductRequest struct {
	// required: true
	// example: Umbrella
	Name string `json:"name" validate:"required"`

	// example: Folding umbrella
	Description *string `json:"description,omitempty"`

	// Units in stock, zero allowed
	// required: true
	// example: 10
	Stock *int `json:"stock" validate:"required"`

	// example: accessory
	Type *string `json:"type,omitempty"`

	// example: red
	Color *string `json:"color,omitempty"`

	// required: true
	// example: 19.9
	Price *float64 `json:"price" validate:"required"`
}

// AddProductResponse carries the inserted row
// swagger:model AddProductResponse
type AddProductResponse struct {
	// example: Product added successfully
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

// NewAddProductHandler returns an HTTP handler inserting a product.
// @Summary Add product
// @Tags products
// @Accept json
// @Produce json
// @Param addProductRequest body handlers.AddProductRequest true "Product"
// @Success 201 {object} handlers.AddProductResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or constraint violation"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/products [post]
func NewAddProductHandler(svc ProductAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddProductRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		product, err := svc.AddProduct(r.Context(), services.AddProductInput{
			Name:        req.Name,
			Description: req.Description,
			Stock:       req.Stock,
			Type:        req.Type,
			Color:       req.Color,
			Price:       req.Price,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation),
				errors.Is(err, services.ErrConflict):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, AddProductResponse{
			Message: "Product added successfully",
			Product: product,
		})
	}
}
