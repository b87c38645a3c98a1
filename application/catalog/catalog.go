package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/kartanikah/wedding-commerce/cmd/config"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	productrepo "github.com/kartanikah/wedding-commerce/repository/product"
	redisrepo "github.com/kartanikah/wedding-commerce/repository/redis"
	tagrepo "github.com/kartanikah/wedding-commerce/repository/tag"
	txrepo "github.com/kartanikah/wedding-commerce/repository/tx"
	"github.com/kartanikah/wedding-commerce/thirdparty/storage"
	"github.com/kartanikah/wedding-commerce/utils/errors"
	"github.com/kartanikah/wedding-commerce/utils/logger"
)

type CatalogApp interface {
	ListProducts(ctx context.Context, page, perPage int) (*model.ProductListResponse, error)
	GetProduct(ctx context.Context, id uint64) (*model.ProductEntity, error)
	CreateProduct(ctx context.Context, req *model.CreateProductRequest, thumbnail *model.ImageUpload, gallery []model.ImageUpload) (*model.ProductEntity, error)
	UpdateProduct(ctx context.Context, id uint64, req *model.UpdateProductRequest, thumbnail *model.ImageUpload, gallery []model.ImageUpload) (*model.ProductEntity, error)
	DeleteProduct(ctx context.Context, id uint64) error
	ListTags(ctx context.Context) ([]model.TagEntity, error)
	CreateTag(ctx context.Context, name string) (*model.TagEntity, error)
}

type catalogAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	productRepo productrepo.ProductRepository
	tagRepo     tagrepo.TagRepository
	redisRepo   redisrepo.Repository
	storage     storage.ObjectStorage
}

func NewCatalogApp(config *config.Config, txRepo txrepo.TxRepository, productRepo productrepo.ProductRepository, tagRepo tagrepo.TagRepository, redisRepo redisrepo.Repository, objectStorage storage.ObjectStorage) CatalogApp {
	return &catalogAppImpl{
		config:      config,
		txRepo:      txRepo,
		productRepo: productRepo,
		tagRepo:     tagRepo,
		redisRepo:   redisRepo,
		storage:     objectStorage,
	}
}

func (s *catalogAppImpl) ListProducts(ctx context.Context, page, perPage int) (*model.ProductListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	items, total, err := s.productRepo.List(ctx, page, perPage)
	if err != nil {
		logger.Error("[ListProducts] list products", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *catalogAppImpl) GetProduct(ctx context.Context, id uint64) (*model.ProductEntity, error) {
	if cached, err := s.redisRepo.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	entity, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] get product", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	if err := s.redisRepo.SetProduct(ctx, entity, s.config.Redis.CacheTTL); err != nil {
		logger.Warn("[GetProduct] cache product", zap.Uint64("product_id", id), zap.String("error", err.Error()))
	}
	return entity, nil
}

func (s *catalogAppImpl) CreateProduct(ctx context.Context, req *model.CreateProductRequest, thumbnail *model.ImageUpload, gallery []model.ImageUpload) (*model.ProductEntity, error) {
	if req.Name == "" || req.Price <= 0 || thumbnail == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	bucket := s.config.Storage.ProductBucket
	uploadedKeys := make([]string, 0, len(gallery)+1)

	thumbKey := assetKey("thumb", *thumbnail)
	thumbURL, err := s.storage.Upload(ctx, bucket, thumbKey, thumbnail.Content, thumbnail.Size, thumbnail.ContentType)
	if err != nil {
		logger.Error("[CreateProduct] upload thumbnail", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorDetail(constant.ErrUploadFailed, "thumbnail")
	}
	uploadedKeys = append(uploadedKeys, thumbKey)

	galleryURLs := make(model.StringList, 0, len(gallery))
	for i, img := range gallery {
		key := assetKey("gallery", img)
		url, err := s.storage.Upload(ctx, bucket, key, img.Content, img.Size, img.ContentType)
		if err != nil {
			logger.Error("[CreateProduct] upload gallery image", zap.Int("index", i), zap.String("error", err.Error()))
			s.cleanup(ctx, bucket, uploadedKeys)
			return nil, errors.SetCustomErrorDetail(constant.ErrUploadFailed, fmt.Sprintf("gallery index %d", i))
		}
		uploadedKeys = append(uploadedKeys, key)
		galleryURLs = append(galleryURLs, url)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateProduct] begin tx", zap.String("error", err.Error()))
		s.cleanup(ctx, bucket, uploadedKeys)
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	productID, err := s.productRepo.InsertTx(ctx, tx, &model.ProductEntity{
		Name:         req.Name,
		Price:        req.Price,
		ThumbnailURL: thumbURL,
		GalleryURLs:  galleryURLs,
	})
	if err != nil {
		logger.Error("[CreateProduct] insert product", zap.String("error", err.Error()))
		s.cleanup(ctx, bucket, uploadedKeys)
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.replaceTagsTx(ctx, tx, productID, req.Tags); err != nil {
		logger.Error("[CreateProduct] attach tags", zap.String("error", err.Error()))
		s.cleanup(ctx, bucket, uploadedKeys)
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateProduct] commit tx", zap.String("error", err.Error()))
		s.cleanup(ctx, bucket, uploadedKeys)
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	created, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[CreateProduct] reload product", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return created, nil
}

func (s *catalogAppImpl) UpdateProduct(ctx context.Context, id uint64, req *model.UpdateProductRequest, thumbnail *model.ImageUpload, gallery []model.ImageUpload) (*model.ProductEntity, error) {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateProduct] get product", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	bucket := s.config.Storage.ProductBucket
	uploadedKeys := make([]string, 0, len(gallery)+1)

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}

	if thumbnail != nil {
		key := assetKey("thumb", *thumbnail)
		url, err := s.storage.Upload(ctx, bucket, key, thumbnail.Content, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			logger.Error("[UpdateProduct] upload thumbnail", zap.String("error", err.Error()))
			return nil, errors.SetCustomErrorDetail(constant.ErrUploadFailed, "thumbnail")
		}
		uploadedKeys = append(uploadedKeys, key)
		existing.ThumbnailURL = url
	}

	if len(gallery) > 0 {
		urls := make(model.StringList, 0, len(gallery))
		for i, img := range gallery {
			key := assetKey("gallery", img)
			url, err := s.storage.Upload(ctx, bucket, key, img.Content, img.Size, img.ContentType)
			if err != nil {
				logger.Error("[UpdateProduct] upload gallery image", zap.Int("index", i), zap.String("error", err.Error()))
				s.cleanup(ctx, bucket, uploadedKeys)
				return nil, errors.SetCustomErrorDetail(constant.ErrUploadFailed, fmt.Sprintf("gallery index %d", i))
			}
			uploadedKeys = append(uploadedKeys, key)
			urls = append(urls, url)
		}
		existing.GalleryURLs = urls
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UpdateProduct] begin tx", zap.String("error", err.Error()))
		s.cleanup(ctx, bucket, uploadedKeys)
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.productRepo.UpdateTx(ctx, tx, existing); err != nil {
		logger.Error("[UpdateProduct] update product", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		s.cleanup(ctx, bucket, uploadedKeys)
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if req.Tags != nil {
		if err := s.replaceTagsTx(ctx, tx, id, req.Tags); err != nil {
			logger.Error("[UpdateProduct] replace tags", zap.Uint64("product_id", id), zap.String("error", err.Error()))
			s.cleanup(ctx, bucket, uploadedKeys)
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UpdateProduct] commit tx", zap.String("error", err.Error()))
		s.cleanup(ctx, bucket, uploadedKeys)
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := s.redisRepo.DeleteProduct(ctx, id); err != nil {
		logger.Warn("[UpdateProduct] invalidate cache", zap.Uint64("product_id", id), zap.String("error", err.Error()))
	}

	updated, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateProduct] reload product", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return updated, nil
}

func (s *catalogAppImpl) DeleteProduct(ctx context.Context, id uint64) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[DeleteProduct] get product", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return errors.SetCustomError(constant.ErrProductNotFound)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteProduct] delete product", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.DeleteProduct(ctx, id); err != nil {
		logger.Warn("[DeleteProduct] invalidate cache", zap.Uint64("product_id", id), zap.String("error", err.Error()))
	}
	return nil
}

func (s *catalogAppImpl) ListTags(ctx context.Context) ([]model.TagEntity, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		logger.Error("[ListTags] list tags", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return tags, nil
}

func (s *catalogAppImpl) CreateTag(ctx context.Context, name string) (*model.TagEntity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tag, err := s.tagRepo.FindOrCreate(ctx, name)
	if err != nil {
		logger.Error("[CreateTag] find or create", zap.String("name", name), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return tag, nil
}

func (s *catalogAppImpl) replaceTagsTx(ctx context.Context, tx *sqlx.Tx, productID uint64, names []string) error {
	tagIDs := make([]uint64, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.FindOrCreateTx(ctx, tx, name)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	return s.productRepo.ReplaceTagsTx(ctx, tx, productID, tagIDs)
}

// cleanup removes assets uploaded during a failed create/update, best
// effort.
func (s *catalogAppImpl) cleanup(ctx context.Context, bucket string, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, bucket, []string{key}); err != nil {
			logger.Warn("[cleanup] delete uploaded asset", zap.String("key", key), zap.String("error", err.Error()))
		}
	}
}

func assetKey(prefix string, img model.ImageUpload) string {
	ext := path.Ext(img.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%s%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", ""), ext)
}
