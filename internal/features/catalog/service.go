package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type service struct {
	store *Store
}

func NewService(store *Store) *service {
	return &service{
		store: store,
	}
}

func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*ProductDTO, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)

	product, err := NewProduct(
		newProduct.Name,
		newProduct.Description,
		newProduct.Category,
		newProduct.Price,
		newProduct.Stock,
		newProduct.RestockThreshold,
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.insertOne(product); err != nil {
		return nil, err
	}

	slog.Info(
		"product created",
		"product_id", product.ProductID,
		"name", product.Name,
	)

	return toProductDTO(product), nil
}

func (s *service) UpdateProduct(ctx context.Context, productID int64, update *UpdateProductRequest) (*ProductDTO, error) {
	err := s.store.mutate(productID, func(p *Product) error {
		if update.Price != nil && !update.Price.IsPositive() {
			return servererrors.New(
				http.StatusUnprocessableEntity,
				"price must be greater than zero",
				nil,
			)
		}

		// stock can never be pulled below the units already promised
		// to carts
		if update.Stock != nil && *update.Stock < p.Reserved {
			return servererrors.ErrProductHasReserved
		}

		if update.Name != nil {
			p.Name = strings.TrimSpace(*update.Name)
		}
		if update.Description != nil {
			p.Description = strings.TrimSpace(*update.Description)
		}
		if update.Price != nil {
			p.Price = *update.Price
		}
		if update.Category != nil {
			p.Category = *update.Category
		}
		if update.Stock != nil {
			p.Stock = *update.Stock
		}
		if update.RestockThreshold != nil {
			p.RestockThreshold = *update.RestockThreshold
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	product, err := s.store.findByID(productID)
	if err != nil {
		return nil, err
	}

	return toProductDTO(product), nil
}

func (s *service) deleteProduct(ctx context.Context, productID int64) error {
	if err := s.store.deleteOne(productID); err != nil {
		return err
	}

	slog.Info("product deleted", "product_id", productID)
	return nil
}

// FindProduct returns a copy of a product record for other features
// (cart snapshots, checkout). Counters on the copy are a consistent view,
// not a lock on the record.
func (s *service) FindProduct(ctx context.Context, productID int64) (*Product, error) {
	return s.store.findByID(productID)
}

func (s *service) getProduct(ctx context.Context, productID int64) (*ProductDTO, error) {
	product, err := s.store.findByID(productID)
	if err != nil {
		return nil, err
	}

	return toProductDTO(product), nil
}

func (s *service) getAllProducts(ctx context.Context, category string) []*ProductDTO {
	products := s.store.findAll(category)

	dtos := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}

	return dtos
}
