package order

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kartanikah/wedding-commerce/cmd/config"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	orderrepo "github.com/kartanikah/wedding-commerce/repository/order"
	productrepo "github.com/kartanikah/wedding-commerce/repository/product"
	userrepo "github.com/kartanikah/wedding-commerce/repository/user"
	"github.com/kartanikah/wedding-commerce/thirdparty/storage"
	"github.com/kartanikah/wedding-commerce/utils/errors"
	"github.com/kartanikah/wedding-commerce/utils/logger"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderEntity, error)
	GetOrder(ctx context.Context, id string) (*model.OrderEntity, error)
	ListOrders(ctx context.Context, filter *model.OrderFilter) ([]model.OrderEntity, error)
	ListUserOrders(ctx context.Context, userID string) ([]model.OrderEntity, error)
	UpdateOrder(ctx context.Context, id string, req *model.UpdateOrderRequest) (*model.OrderEntity, error)
	DeleteOrder(ctx context.Context, id string) error
}

// CompensationResult reports the best-effort cleanup of uploaded
// assets after a later creation step failed.
type CompensationResult struct {
	Attempted []string
	Failed    []string
}

type orderAppImpl struct {
	config      *config.Config
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	storage     storage.ObjectStorage
}

func NewOrderApp(config *config.Config, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, userRepo userrepo.UserRepository, objectStorage storage.ObjectStorage) OrderApp {
	return &orderAppImpl{
		config:      config,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		storage:     objectStorage,
	}
}

// CreateOrder runs the creation workflow: validate with no side
// effects, upload every image, persist the row, and roll the uploads
// back if anything after them fails. There is no transaction spanning
// the object store and the database; ordering plus compensation is
// the whole consistency story.
func (s *orderAppImpl) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderEntity, error) {
	if req.ID == "" || req.UserID == "" || req.ProductID == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if len(req.Images) == 0 {
		return nil, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "at least one image is required")
	}

	user, err := s.userRepo.Get(ctx, req.UserID)
	if err != nil {
		logger.Error("[CreateOrder] get user", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrUserNotFound)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[CreateOrder] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	bucket := s.config.Storage.OrderBucket
	uploadedKeys := make([]string, 0, len(req.Images))
	urls := make([]string, 0, len(req.Images))

	for i, img := range req.Images {
		key := objectKey(req.ID, i, img)
		url, err := s.storage.Upload(ctx, bucket, key, img.Content, img.Size, img.ContentType)
		if err != nil {
			logger.Error("[CreateOrder] upload image", zap.Int("index", i), zap.String("error", err.Error()))
			s.compensate(ctx, bucket, uploadedKeys)
			return nil, errors.SetCustomErrorDetail(constant.ErrUploadFailed, fmt.Sprintf("image index %d", i))
		}
		uploadedKeys = append(uploadedKeys, key)
		urls = append(urls, url)
	}

	entity := &model.OrderEntity{
		ID:          req.ID,
		UserID:      req.UserID,
		ProductID:   req.ProductID,
		Status:      constant.OrderStatusPending,
		WeddingInfo: req.WeddingInfo,
		SnapToken:   req.SnapToken,
		ImageURL:    urls[0],
		ImageURLs:   urls,
	}

	if err := s.orderRepo.Insert(ctx, entity); err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("order_id", req.ID), zap.String("error", err.Error()))
		s.compensate(ctx, bucket, uploadedKeys)
		if orderrepo.IsDuplicateEntry(err) {
			return nil, errors.SetCustomError(constant.ErrDuplicateOrder)
		}
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	created, err := s.orderRepo.GetByID(ctx, req.ID)
	if err != nil {
		logger.Error("[CreateOrder] reload order", zap.String("order_id", req.ID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return created, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, id string) (*model.OrderEntity, error) {
	entity, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetOrder] get order", zap.String("order_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}
	return entity, nil
}

func (s *orderAppImpl) ListOrders(ctx context.Context, filter *model.OrderFilter) ([]model.OrderEntity, error) {
	if filter != nil && filter.Status != "" && !filter.Status.Valid() {
		return nil, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "unknown status filter")
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListOrders] list orders", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return orders, nil
}

func (s *orderAppImpl) ListUserOrders(ctx context.Context, userID string) ([]model.OrderEntity, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		logger.Error("[ListUserOrders] get user", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrUserNotFound)
	}

	orders, err := s.orderRepo.List(ctx, &model.OrderFilter{UserID: userID})
	if err != nil {
		logger.Error("[ListUserOrders] list orders", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return orders, nil
}

func (s *orderAppImpl) UpdateOrder(ctx context.Context, id string, req *model.UpdateOrderRequest) (*model.OrderEntity, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "unknown status")
	}

	existing, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateOrder] get order", zap.String("order_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	if err := s.orderRepo.Update(ctx, id, req); err != nil {
		logger.Error("[UpdateOrder] update order", zap.String("order_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	updated, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateOrder] reload order", zap.String("order_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return updated, nil
}

func (s *orderAppImpl) DeleteOrder(ctx context.Context, id string) error {
	existing, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[DeleteOrder] get order", zap.String("order_id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return errors.SetCustomError(constant.ErrOrderNotFound)
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteOrder] delete order", zap.String("order_id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// compensate deletes every asset uploaded in this attempt. Failures
// are logged, never escalated; the caller still returns the original
// error.
func (s *orderAppImpl) compensate(ctx context.Context, bucket string, keys []string) CompensationResult {
	result := CompensationResult{Attempted: keys}
	for _, key := range keys {
		if err := s.storage.Delete(ctx, bucket, []string{key}); err != nil {
			logger.Warn("[compensate] delete uploaded asset", zap.String("key", key), zap.String("error", err.Error()))
			result.Failed = append(result.Failed, key)
		}
	}
	return result
}

func objectKey(orderID string, index int, img model.ImageUpload) string {
	ext := path.Ext(img.Filename)
	if ext == "" {
		switch img.ContentType {
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}
	return fmt.Sprintf("%s/%d-%s%s", orderID, index, strings.ReplaceAll(uuid.NewString(), "-", ""), ext)
}
