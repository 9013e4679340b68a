package service

import (
	"context"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/product/model"
)

type ServiceInterface interface {
	// Storefront
	ListActive(ctx context.Context, query *model.ProductListQuery) ([]model.Product, int, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Admin
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListAll(ctx context.Context, query *model.ProductListQuery) ([]model.Product, int, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	AddVariant(ctx context.Context, productID uuid.UUID, req *model.CreateVariantRequest) (*model.ProductVariant, error)
	AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (int, error)
}
