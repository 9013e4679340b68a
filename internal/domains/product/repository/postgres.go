package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"artstore-backend/internal/domains/product/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// =====================================================
// PRODUCTS
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, title, slug, description, artist, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.Artist,
		product.ImageURL,
		product.IsActive,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrSlugAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.getOne(ctx, "slug = $1", slug)
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT id, title, slug, description, artist, image_url, is_active, created_at, updated_at
		FROM products
		WHERE %s
	`, where)

	var p model.Product
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Artist,
		&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	variants, err := r.listVariants(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants

	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context, query *model.ProductListQuery, activeOnly bool) ([]model.Product, int, error) {
	where := "1=1"
	args := []interface{}{}
	argPos := 1

	if activeOnly {
		where += " AND is_active = true"
	}
	if query.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR artist ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+query.Search+"%")
		argPos++
	}

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", where)
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	listSQL := fmt.Sprintf(`
		SELECT id, title, slug, description, artist, image_url, is_active, created_at, updated_at
		FROM products
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, query.Limit, (query.Page-1)*query.Limit)

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Description, &p.Artist,
			&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	for i := range products {
		variants, err := r.listVariants(ctx, products[i].ID)
		if err != nil {
			return nil, 0, err
		}
		products[i].Variants = variants
	}

	return products, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET title = $2, slug = $3, description = $4, artist = $5,
		    image_url = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID, product.Title, product.Slug, product.Description,
		product.Artist, product.ImageURL, product.IsActive,
	).Scan(&product.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrProductNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrSlugAlreadyExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// =====================================================
// VARIANTS
// =====================================================

const variantColumns = `
	id, product_id, size, material, price_try, price_usd,
	desi, weight_kg, stock, sku, track_quantity, created_at, updated_at
`

func scanVariant(row pgx.Row, v *model.ProductVariant) error {
	return row.Scan(
		&v.ID, &v.ProductID, &v.Size, &v.Material, &v.PriceTRY, &v.PriceUSD,
		&v.Desi, &v.WeightKG, &v.Stock, &v.SKU, &v.TrackQuantity,
		&v.CreatedAt, &v.UpdatedAt,
	)
}

func (r *postgresRepository) listVariants(ctx context.Context, productID uuid.UUID) ([]model.ProductVariant, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM product_variants
		WHERE product_id = $1
		ORDER BY size, material
	`, variantColumns)

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var variants []model.ProductVariant
	for rows.Next() {
		var v model.ProductVariant
		if err := scanVariant(rows, &v); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}

	return variants, nil
}

func (r *postgresRepository) CreateVariant(ctx context.Context, variant *model.ProductVariant) error {
	query := `
		INSERT INTO product_variants (
			id, product_id, size, material, price_try, price_usd,
			desi, weight_kg, stock, sku, track_quantity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		variant.ID, variant.ProductID, variant.Size, variant.Material,
		variant.PriceTRY, variant.PriceUSD, variant.Desi, variant.WeightKG,
		variant.Stock, variant.SKU, variant.TrackQuantity,
	).Scan(&variant.CreatedAt, &variant.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return model.ErrSKUAlreadyExists
			}
			if pgErr.Code == "23503" {
				return model.ErrProductNotFound
			}
		}
		return fmt.Errorf("failed to create variant: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	query := fmt.Sprintf("SELECT %s FROM product_variants WHERE id = $1", variantColumns)

	var v model.ProductVariant
	if err := scanVariant(r.pool.QueryRow(ctx, query, id), &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}

	return &v, nil
}

func (r *postgresRepository) GetVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ProductVariant, error) {
	return r.variantsByIDs(ctx, r.pool, ids)
}

func (r *postgresRepository) GetVariantsByIDsWithTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.ProductVariant, error) {
	return r.variantsByIDs(ctx, tx, ids)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *postgresRepository) variantsByIDs(ctx context.Context, q querier, ids []uuid.UUID) ([]model.ProductVariant, error) {
	query := fmt.Sprintf("SELECT %s FROM product_variants WHERE id = ANY($1)", variantColumns)

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get variants: %w", err)
	}
	defer rows.Close()

	var variants []model.ProductVariant
	for rows.Next() {
		var v model.ProductVariant
		if err := scanVariant(rows, &v); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}

	return variants, nil
}

func (r *postgresRepository) AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (int, error) {
	query := `
		UPDATE product_variants
		SET stock = GREATEST(stock + $2, 0), updated_at = NOW()
		WHERE id = $1
		RETURNING stock
	`

	var stock int
	if err := r.pool.QueryRow(ctx, query, variantID, delta).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrVariantNotFound
		}
		return 0, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return stock, nil
}

// DecrementStockWithTx is a single conditional update so the stock check and
// the decrement cannot race: either the row still has enough stock and the
// update lands, or zero rows are affected and the caller aborts.
func (r *postgresRepository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, qty int) error {
	query := `
		UPDATE product_variants
		SET stock = CASE WHEN track_quantity THEN stock - $2 ELSE stock END,
		    updated_at = NOW()
		WHERE id = $1 AND (NOT track_quantity OR stock >= $2)
	`

	tag, err := tx.Exec(ctx, query, variantID, qty)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInsufficientStock
	}

	return nil
}

func (r *postgresRepository) RestockWithTx(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, qty int) error {
	query := `
		UPDATE product_variants
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, variantID, qty)
	if err != nil {
		return fmt.Errorf("failed to restock variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVariantNotFound
	}

	return nil
}
