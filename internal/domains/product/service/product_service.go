package service

import (
	"context"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/product/model"
	repo "artstore-backend/internal/domains/product/repository"
	"artstore-backend/internal/shared/utils"
)

type productService struct {
	repository repo.RepositoryInterface
}

func NewProductService(repository repo.RepositoryInterface) ServiceInterface {
	return &productService{repository: repository}
}

func (s *productService) ListActive(ctx context.Context, query *model.ProductListQuery) ([]model.Product, int, error) {
	query.Normalize()
	return s.repository.List(ctx, query, true)
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.repository.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, v := range req.Variants {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &model.Product{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        utils.GenerateSlug(req.Title),
		Description: req.Description,
		Artist:      req.Artist,
		ImageURL:    req.ImageURL,
		IsActive:    isActive,
	}

	if err := s.repository.Create(ctx, product); err != nil {
		return nil, err
	}

	for _, vr := range req.Variants {
		variant, err := s.buildVariant(product.ID, &vr)
		if err != nil {
			return nil, err
		}
		if err := s.repository.CreateVariant(ctx, variant); err != nil {
			return nil, err
		}
		product.Variants = append(product.Variants, *variant)
	}

	return product, nil
}

func (s *productService) buildVariant(productID uuid.UUID, req *model.CreateVariantRequest) (*model.ProductVariant, error) {
	trackQuantity := true
	if req.TrackQuantity != nil {
		trackQuantity = *req.TrackQuantity
	}

	return &model.ProductVariant{
		ID:            uuid.New(),
		ProductID:     productID,
		Size:          req.Size,
		Material:      req.Material,
		PriceTRY:      req.PriceTRY,
		PriceUSD:      req.PriceUSD,
		Desi:          req.Desi,
		WeightKG:      req.WeightKG,
		Stock:         req.Stock,
		SKU:           req.SKU,
		TrackQuantity: trackQuantity,
	}, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *productService) ListAll(ctx context.Context, query *model.ProductListQuery) ([]model.Product, int, error) {
	query.Normalize()
	return s.repository.List(ctx, query, false)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
		product.Slug = utils.GenerateSlug(*req.Title)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Artist != nil {
		product.Artist = req.Artist
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repository.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repository.Delete(ctx, id)
}

func (s *productService) AddVariant(ctx context.Context, productID uuid.UUID, req *model.CreateVariantRequest) (*model.ProductVariant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	variant, err := s.buildVariant(productID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repository.CreateVariant(ctx, variant); err != nil {
		return nil, err
	}

	return variant, nil
}

func (s *productService) AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (int, error) {
	return s.repository.AdjustStock(ctx, variantID, delta)
}
