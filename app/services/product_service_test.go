package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mechstore/go-mechstore/app/apperrors"
	"github.com/mechstore/go-mechstore/app/models"
	"github.com/mechstore/go-mechstore/app/repositories"
	"github.com/mechstore/go-mechstore/app/services"
)

func newProductService(t *testing.T) (*services.ProductService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := services.NewProductService(
		repositories.NewProductRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewBrandRepository(db),
	)
	return svc, db
}

func TestCreateProductWithSpecs(t *testing.T) {
	svc, db := newProductService(t)
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")

	created, err := svc.CreateProduct(context.Background(), services.CreateProductInput{
		Name:       "4F End Mill",
		Sku:        "NA-EM-4F-10",
		Slug:       "4f-end-mill",
		Price:      dec("25.00"),
		CategoryID: cat.ID,
		BrandID:    brand.ID,
		Specs: []services.ProductSpecInput{
			{Key: "Material", Value: "HSS"},
			{Key: "Diameter", Value: "10mm"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.InStock)

	loaded, err := svc.GetBySlug(context.Background(), "4f-end-mill")
	require.NoError(t, err)
	require.Len(t, loaded.Specs, 2)
	assert.Equal(t, "Material", loaded.Specs[0].Key)
}

func TestCreateProductRejectsBadReferences(t *testing.T) {
	svc, db := newProductService(t)
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")

	cases := []struct {
		name       string
		categoryID uint
		brandID    uint
	}{
		{"zero category", 0, brand.ID},
		{"missing category", 999, brand.ID},
		{"zero brand", cat.ID, 0},
		{"missing brand", cat.ID, 999},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), services.CreateProductInput{
				Name:       "Tap Set",
				Sku:        "NA-TAP-01",
				Slug:       "tap-set",
				CategoryID: tc.categoryID,
				BrandID:    tc.brandID,
			})
			require.Error(t, err)
			assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(err))
		})
	}
}

func TestCreateProductRejectsDuplicateSlugAndSku(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	_, err := svc.CreateProduct(ctx, services.CreateProductInput{
		Name:       "Other",
		Sku:        "OTHER-01",
		Slug:       "tap-set",
		CategoryID: cat.ID,
		BrandID:    brand.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicate, apperrors.KindOf(err))

	_, err = svc.CreateProduct(ctx, services.CreateProductInput{
		Name:       "Other",
		Sku:        "SKU-tap-set",
		Slug:       "other-slug",
		CategoryID: cat.ID,
		BrandID:    brand.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicate, apperrors.KindOf(err))
}

func TestUpdateProductPartial(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	onSale := true
	updated, err := svc.UpdateProduct(ctx, p.ID, services.UpdateProductInput{
		OnSale:    &onSale,
		SalePrice: dec("30.00"),
	})
	require.NoError(t, err)
	assert.True(t, updated.OnSale)
	assert.Equal(t, "Tap Set", updated.Name)
	require.NotNil(t, updated.Price)
	assert.True(t, updated.Price.Equal(*dec("40.00")))

	unit, priced := updated.EffectivePrice()
	require.True(t, priced)
	assert.True(t, unit.Equal(*dec("30.00")))
}

func TestUpdateProductRejectsMissingCategory(t *testing.T) {
	svc, db := newProductService(t)
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	_, err := svc.UpdateProduct(context.Background(), p.ID, services.UpdateProductInput{CategoryID: ptrUint(999)})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(err))
}

func TestDeleteProductRemovesSpecs(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")

	created, err := svc.CreateProduct(ctx, services.CreateProductInput{
		Name:       "Tap Set",
		Sku:        "NA-TAP-01",
		Slug:       "tap-set",
		CategoryID: cat.ID,
		BrandID:    brand.ID,
		Specs:      []services.ProductSpecInput{{Key: "Material", Value: "HSS"}},
	})
	require.NoError(t, err)

	_, err = svc.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)

	var specCount int64
	require.NoError(t, db.Model(&models.ProductSpec{}).Count(&specCount).Error)
	assert.Zero(t, specCount)

	_, err = svc.GetBySlug(ctx, "tap-set")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListProductsFilters(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()
	cutting := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	measuring := seedCategory(t, db, "Measuring Tools", "measuring-tools", nil)
	nachi := seedBrand(t, db, "Nachi")
	mitutoyo := seedBrand(t, db, "Mitutoyo")

	seedProduct(t, db, "Tap Set", "tap-set", cutting.ID, nachi.ID, dec("40.00"))
	seedProduct(t, db, "4F End Mill", "4f-end-mill", cutting.ID, nachi.ID, dec("25.00"))
	caliper := seedProduct(t, db, "Digital Caliper", "digital-caliper", measuring.ID, mitutoyo.ID, dec("89.00"))
	caliper.OnSale = true
	caliper.SalePrice = dec("75.00")
	require.NoError(t, db.Save(caliper).Error)

	byCategory, total, err := svc.ListProducts(ctx, repositories.ProductFilter{CategoryID: cutting.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, byCategory, 2)

	onSale := true
	sale, total, err := svc.ListProducts(ctx, repositories.ProductFilter{OnSale: &onSale})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sale, 1)
	assert.Equal(t, "Digital Caliper", sale[0].Name)

	byQuery, total, err := svc.ListProducts(ctx, repositories.ProductFilter{Query: "mill"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byQuery, 1)

	paged, total, err := svc.ListProducts(ctx, repositories.ProductFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, paged, 2)
}

func TestBrandLifecycle(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	brand, err := svc.CreateBrand(ctx, services.CreateBrandInput{Name: "Nachi"})
	require.NoError(t, err)

	_, err = svc.CreateBrand(ctx, services.CreateBrandInput{Name: "Nachi"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicate, apperrors.KindOf(err))

	brands, err := svc.ListBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 1)

	require.NoError(t, svc.DeleteBrand(ctx, brand.ID))
	err = svc.DeleteBrand(ctx, brand.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
