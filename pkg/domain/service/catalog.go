package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"campusstore/pkg/domain/model"
)

const AllCategories = "All"

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
}

type CatalogService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	Search(ctx context.Context, term, category string) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)

	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*model.Product, error)
	RemoveProduct(ctx context.Context, productID uuid.UUID) error
}

func NewCatalogService(repo model.ProductRepository, dispatcher EventDispatcher) CatalogService {
	return &catalogService{repo: repo, dispatcher: dispatcher}
}

type catalogService struct {
	repo       model.ProductRepository
	dispatcher EventDispatcher
}

func (s *catalogService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *catalogService) Get(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	return s.repo.Find(ctx, productID)
}

// Search matches a case-insensitive substring of the name within a category ("All" or empty for any).
func (s *catalogService) Search(ctx context.Context, term, category string) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	result := make([]model.Product, 0, len(products))
	for _, product := range products {
		if !strings.Contains(strings.ToLower(product.Name), term) {
			continue
		}
		if category != "" && category != AllCategories && product.Category != category {
			continue
		}
		result = append(result, product)
	}
	return result, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := []string{AllCategories}
	for _, product := range products {
		if product.Category == "" {
			continue
		}
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	return categories, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	productID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	product := input.toProduct(productID)
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: productID, Name: product.Name})
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*model.Product, error) {
	if _, err := s.repo.Find(ctx, productID); err != nil {
		return nil, err
	}

	product := input.toProduct(productID)
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: productID})
	return product, nil
}

func (s *catalogService) RemoveProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductRemoved{ProductID: productID})
	return nil
}

func (in ProductInput) toProduct(id uuid.UUID) *model.Product {
	return &model.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	}
}
