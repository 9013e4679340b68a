package service

import (
	"context"

	"artstore-backend/internal/domains/cart/model"
	repo "artstore-backend/internal/domains/cart/repository"
	productRepo "artstore-backend/internal/domains/product/repository"
	"artstore-backend/internal/shared/utils"
)

type cartService struct {
	repository  repo.RepositoryInterface
	productRepo productRepo.RepositoryInterface
	events      EventRecorder
}

func NewCartService(
	r repo.RepositoryInterface,
	products productRepo.RepositoryInterface,
	events EventRecorder,
) ServiceInterface {
	return &cartService{
		repository:  r,
		productRepo: products,
		events:      events,
	}
}

func (s *cartService) Get(ctx context.Context, sessionID, region string) (*model.CartResponse, error) {
	cart, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return model.NewCartResponse(cart, region), nil
}

func (s *cartService) GetRaw(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.repository.Get(ctx, sessionID)
}

// AddItem snapshots the variant's current prices into the cart line and
// merges it. The snapshot is advisory only; checkout re-validates prices.
func (s *cartService) AddItem(ctx context.Context, sessionID, region string, req *model.AddItemRequest) (*model.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	variantID := utils.ParseStringToUUID(req.VariantID)
	variant, err := s.productRepo.GetVariantByID(ctx, variantID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Add(model.CartItem{
		ProductID: product.ID,
		VariantID: variant.ID,
		Name:      product.Title,
		Size:      variant.Size,
		Material:  variant.Material,
		PriceTRY:  variant.PriceTRY,
		PriceUSD:  variant.PriceUSD,
		Desi:      variant.Desi,
		WeightKG:  variant.WeightKG,
		Quantity:  req.Quantity,
	})

	if err := s.repository.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.events.RecordAddToCart(ctx, sessionID, product.ID, req.Quantity)

	return model.NewCartResponse(cart, region), nil
}

func (s *cartService) UpdateItem(ctx context.Context, sessionID, region, cartItemID string, qty int) (*model.CartResponse, error) {
	if qty < 1 {
		return nil, model.ErrInvalidQuantity
	}

	cart, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(cartItemID, qty); err != nil {
		return nil, err
	}

	if err := s.repository.Save(ctx, cart); err != nil {
		return nil, err
	}

	return model.NewCartResponse(cart, region), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, region, cartItemID string) (*model.CartResponse, error) {
	cart, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cart.Remove(cartItemID); err != nil {
		return nil, err
	}

	if err := s.repository.Save(ctx, cart); err != nil {
		return nil, err
	}

	return model.NewCartResponse(cart, region), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	return s.repository.Delete(ctx, sessionID)
}
