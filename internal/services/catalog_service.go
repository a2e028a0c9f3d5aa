package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200

	imageUploadExpiry = 15 * time.Minute
)

var ErrImageUploadsDisabled = apperrors.WithMessage(apperrors.ErrServiceUnavailable, "Image uploads are not configured")

type CatalogService struct {
	productRepo IProductRepository
	cache       IProductCache
	images      IImagePresigner
	logger      *zap.Logger
}

// NewCatalogService wires the catalog. cache may be a nil *CatalogCache and
// images may be nil when no bucket is configured.
func NewCatalogService(pr IProductRepository, cache IProductCache, images IImagePresigner, logger *zap.Logger) *CatalogService {
	return &CatalogService{productRepo: pr, cache: cache, images: images, logger: logger}
}

// ClampPage normalizes paging parameters.
func ClampPage(skip, limit int64) (int64, int64) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return skip, limit
}

func (s *CatalogService) ListProducts(ctx context.Context, category string, skip, limit int64) ([]models.Product, error) {
	skip, limit = ClampPage(skip, limit)

	cached, version, ok := s.cache.GetProductList(ctx, category, skip, limit)
	if ok {
		return cached, nil
	}

	products, err := s.productRepo.Find(ctx, category, skip, limit)
	if err != nil {
		return nil, err
	}
	s.cache.SetProductListAsync(version, category, skip, limit, products)
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	cached, version, ok := s.cache.GetProduct(ctx, id)
	if ok {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}
	s.cache.SetProductAsync(version, product)
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	now := time.Now().UTC()
	product := &models.Product{ID: uuid.NewString(), CreatedAt: now}
	applyInput(product, in)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.cache.InvalidateProduct(ctx, product.ID)

	s.logger.Info("product created", zap.String("product_id", product.ID))
	return product, nil
}

// UpdateProduct replaces every writable field of the product. id and
// created_at are preserved.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}

	applyInput(existing, in)
	existing.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Replace(ctx, existing); err != nil {
		return nil, mapProductErr(err)
	}
	s.cache.InvalidateProduct(ctx, id)
	return existing, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return mapProductErr(err)
	}
	s.cache.InvalidateProduct(ctx, id)

	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// PresignImageUpload returns a short-lived URL the admin UI can PUT the
// image to, plus the public URL to store in image_url.
func (s *CatalogService) PresignImageUpload(ctx context.Context, req models.ImageUploadRequest) (*models.ImageUploadResponse, error) {
	if s.images == nil {
		return nil, ErrImageUploadsDisabled
	}
	url, headers, key, err := s.images.PresignPut(ctx, req.Filename, req.ContentType, imageUploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign image upload: %w", err)
	}
	return &models.ImageUploadResponse{
		UploadURL: url,
		Headers:   headers,
		Key:       key,
		ImageURL:  s.images.PublicURL(key),
	}, nil
}

func applyInput(p *models.Product, in models.ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.Size = in.Size
	p.Color = in.Color
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
}

func mapProductErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrProductNotFound
	}
	return err
}
