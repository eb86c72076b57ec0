package catalog

import "github.com/shopspring/decimal"

// Requests

type CreateProductRequest struct {
	Name             string          `json:"name" validate:"required,min=2,max=80"`
	Description      string          `json:"description" validate:"max=350"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	Category         string          `json:"category" validate:"required"`
	Stock            int64           `json:"stock" validate:"min=0"`
	RestockThreshold int64           `json:"restock_threshold" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=2,max=80"`
	Description      *string          `json:"description" validate:"omitempty,max=350"`
	Price            *decimal.Decimal `json:"price"`
	Category         *string          `json:"category"`
	Stock            *int64           `json:"stock" validate:"omitempty,min=0"`
	RestockThreshold *int64           `json:"restock_threshold" validate:"omitempty,min=0"`
}

// Responses

type ProductDTO struct {
	Product
	Available int64 `json:"available"`
}

type GetAllProductsResponse struct {
	Products []*ProductDTO `json:"products"`
	Count    int           `json:"count"`
}

func toProductDTO(p *Product) *ProductDTO {
	return &ProductDTO{
		Product:   *p,
		Available: p.Available(),
	}
}
