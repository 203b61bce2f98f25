package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mechstore/go-mechstore/app/apperrors"
	"github.com/mechstore/go-mechstore/app/models"
	"github.com/mechstore/go-mechstore/app/repositories"
)

// ProductService covers product and brand administration: unique sku/slug
// enforcement and category/brand referential checks ahead of the store's own
// constraints.
type ProductService struct {
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	brands     repositories.BrandRepositoryImpl
}

func NewProductService(
	products repositories.ProductRepositoryImpl,
	categories repositories.CategoryRepositoryImpl,
	brands repositories.BrandRepositoryImpl,
) *ProductService {
	return &ProductService{products: products, categories: categories, brands: brands}
}

type ProductSpecInput struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type CreateProductInput struct {
	Name        string             `json:"name" validate:"required"`
	Sku         string             `json:"sku" validate:"required"`
	Slug        string             `json:"slug" validate:"required"`
	Description string             `json:"description"`
	Price       *decimal.Decimal   `json:"price"`
	InStock     *bool              `json:"in_stock"`
	ImageURL    string             `json:"image_url"`
	OnSale      bool               `json:"on_sale"`
	SalePrice   *decimal.Decimal   `json:"sale_price"`
	CategoryID  uint               `json:"category_id" validate:"required"`
	BrandID     uint               `json:"brand_id" validate:"required"`
	Specs       []ProductSpecInput `json:"specs" validate:"dive"`
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.CategoryID == 0 {
		return nil, apperrors.InvalidReference("category id cannot be 0")
	}
	if in.BrandID == 0 {
		return nil, apperrors.InvalidReference("brand id cannot be 0")
	}

	category, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, apperrors.Store("failed to load category", err)
	}
	if category == nil {
		return nil, apperrors.InvalidReference("category %d does not exist", in.CategoryID)
	}
	brand, err := s.brands.GetByID(ctx, in.BrandID)
	if err != nil {
		return nil, apperrors.Store("failed to load brand", err)
	}
	if brand == nil {
		return nil, apperrors.InvalidReference("brand %d does not exist", in.BrandID)
	}

	if existing, err := s.products.GetBySlug(ctx, in.Slug); err != nil {
		return nil, apperrors.Store("failed to check product slug", err)
	} else if existing != nil {
		return nil, apperrors.Duplicate("product with slug %q already exists", in.Slug)
	}
	if existing, err := s.products.GetBySku(ctx, in.Sku); err != nil {
		return nil, apperrors.Store("failed to check product sku", err)
	} else if existing != nil {
		return nil, apperrors.Duplicate("product with sku %q already exists", in.Sku)
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}
	product := &models.Product{
		Name:        in.Name,
		Sku:         in.Sku,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		InStock:     inStock,
		ImageURL:    in.ImageURL,
		OnSale:      in.OnSale,
		SalePrice:   in.SalePrice,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
	}
	for _, spec := range in.Specs {
		product.Specs = append(product.Specs, models.ProductSpec{Key: spec.Key, Value: spec.Value})
	}

	if err := s.products.Create(ctx, product); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, apperrors.Duplicate("product with this sku or slug already exists")
		}
		return nil, apperrors.Store("failed to create product", err)
	}
	return product, nil
}

type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	InStock     *bool            `json:"in_stock"`
	ImageURL    *string          `json:"image_url"`
	OnSale      *bool            `json:"on_sale"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	CategoryID  *uint            `json:"category_id"`
	BrandID     *uint            `json:"brand_id"`
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product %d not found", id)
	}

	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			return nil, apperrors.InvalidReference("category id cannot be 0")
		}
		category, err := s.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, apperrors.Store("failed to load category", err)
		}
		if category == nil {
			return nil, apperrors.InvalidReference("category %d does not exist", *in.CategoryID)
		}
		product.CategoryID = *in.CategoryID
	}
	if in.BrandID != nil {
		if *in.BrandID == 0 {
			return nil, apperrors.InvalidReference("brand id cannot be 0")
		}
		brand, err := s.brands.GetByID(ctx, *in.BrandID)
		if err != nil {
			return nil, apperrors.Store("failed to load brand", err)
		}
		if brand == nil {
			return nil, apperrors.InvalidReference("brand %d does not exist", *in.BrandID)
		}
		product.BrandID = *in.BrandID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = in.Price
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.OnSale != nil {
		product.OnSale = *in.OnSale
	}
	if in.SalePrice != nil {
		product.SalePrice = in.SalePrice
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.Store("failed to update product", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product %d not found", id)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return nil, apperrors.Store("failed to delete product", err)
	}
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.Store("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product %q not found", slug)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	products, total, err := s.products.GetProducts(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Store("failed to list products", err)
	}
	return products, total, nil
}

type CreateBrandInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

func (s *ProductService) CreateBrand(ctx context.Context, in CreateBrandInput) (*models.Brand, error) {
	existing, err := s.brands.GetByName(ctx, in.Name)
	if err != nil {
		return nil, apperrors.Store("failed to check brand name", err)
	}
	if existing != nil {
		return nil, apperrors.Duplicate("brand %q already exists", in.Name)
	}

	brand := &models.Brand{Name: in.Name, Description: in.Description, LogoURL: in.LogoURL}
	if err := s.brands.Create(ctx, brand); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, apperrors.Duplicate("brand %q already exists", in.Name)
		}
		return nil, apperrors.Store("failed to create brand", err)
	}
	return brand, nil
}

func (s *ProductService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.brands.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store("failed to list brands", err)
	}
	return brands, nil
}

func (s *ProductService) DeleteBrand(ctx context.Context, id uint) error {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return apperrors.Store("failed to load brand", err)
	}
	if brand == nil {
		return apperrors.NotFound("brand %d not found", id)
	}
	return s.brands.Delete(ctx, id)
}
