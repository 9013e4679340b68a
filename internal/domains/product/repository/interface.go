package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"artstore-backend/internal/domains/product/model"
)

// RepositoryInterface is the product/variant data access contract.
// Stock mutations are conditional updates so concurrent checkouts cannot
// drive a tracked variant's counter below zero.
type RepositoryInterface interface {
	// Products
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, query *model.ProductListQuery, activeOnly bool) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Variants
	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
	GetVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error)
	GetVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ProductVariant, error)
	GetVariantsByIDsWithTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.ProductVariant, error)
	AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (int, error)

	// DecrementStockWithTx decrements stock only when the variant does not
	// track quantity or has at least qty units. Returns
	// model.ErrInsufficientStock when no row qualified.
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, qty int) error

	// RestockWithTx returns qty units to a variant (refund with restock).
	RestockWithTx(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, qty int) error
}
