package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kartanikah/wedding-commerce/cmd/config"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	orderrepo "github.com/kartanikah/wedding-commerce/repository/order"
	productrepo "github.com/kartanikah/wedding-commerce/repository/product"
	userrepo "github.com/kartanikah/wedding-commerce/repository/user"
	gateway "github.com/kartanikah/wedding-commerce/thirdparty/payment"
	"github.com/kartanikah/wedding-commerce/thirdparty/rabbitmq"
	"github.com/kartanikah/wedding-commerce/utils/errors"
	"github.com/kartanikah/wedding-commerce/utils/logger"
)

// placeholder customer name when the user row is absent
const defaultCustomerName = "Pelanggan"

type PaymentApp interface {
	CreateTransaction(ctx context.Context, req *model.CreateTransactionRequest) (*model.CreateTransactionResponse, error)
	HandleNotification(ctx context.Context, payload *model.PaymentNotification) (*model.OrderEntity, error)
	GetTransactionStatus(ctx context.Context, orderID string) (*model.TransactionStatusResponse, error)
	ExpireOrder(ctx context.Context, orderID string) error
}

type paymentAppImpl struct {
	config      *config.Config
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	gateway     gateway.Gateway
	publisher   *rabbitmq.Publisher
}

func NewPaymentApp(config *config.Config, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, userRepo userrepo.UserRepository, gw gateway.Gateway, publisher *rabbitmq.Publisher) PaymentApp {
	return &paymentAppImpl{
		config:      config,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		gateway:     gw,
		publisher:   publisher,
	}
}

// CreateTransaction opens a Snap session referenced by the order id,
// then persists the order. If the insert fails the session is left in
// place; it expires on the gateway side and the expiration consumer
// sweeps it. The orphaned token is logged for reconciliation.
func (s *paymentAppImpl) CreateTransaction(ctx context.Context, req *model.CreateTransactionRequest) (*model.CreateTransactionResponse, error) {
	if req.OrderID == "" || req.UserID == "" || req.ProductID == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[CreateTransaction] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	customerName := defaultCustomerName
	user, err := s.userRepo.Get(ctx, req.UserID)
	if err != nil {
		logger.Error("[CreateTransaction] get user", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user != nil {
		customerName = user.Name
	}

	session, err := s.gateway.CreateTransaction(ctx, req.OrderID, int64(product.Price), product.Name, customerName)
	if err != nil {
		logger.Error("[CreateTransaction] gateway create", zap.String("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrUpstream)
	}

	entity := &model.OrderEntity{
		ID:          req.OrderID,
		UserID:      req.UserID,
		ProductID:   req.ProductID,
		Status:      constant.OrderStatusPending,
		WeddingInfo: req.WeddingInfo,
		SnapToken:   &session.Token,
		ImageURLs:   model.StringList{},
	}
	if err := s.orderRepo.Insert(ctx, entity); err != nil {
		logger.Error("[CreateTransaction] insert order with live session",
			zap.String("order_id", req.OrderID),
			zap.String("snap_token", session.Token),
			zap.String("error", err.Error()))
		if orderrepo.IsDuplicateEntry(err) {
			return nil, errors.SetCustomError(constant.ErrDuplicateOrder)
		}
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		msg := rabbitmq.SessionExpirationMessage{
			OrderID:   req.OrderID,
			ExpiresAt: time.Now().Add(s.config.Order.SessionExpiration),
		}
		if err := s.publisher.PublishSessionExpiration(msg); err != nil {
			logger.Error("[CreateTransaction] publish session expiration", zap.String("order_id", req.OrderID), zap.String("error", err.Error()))
		}
	}

	created, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		logger.Error("[CreateTransaction] reload order", zap.String("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.CreateTransactionResponse{
		Session: session,
		Order:   created,
	}, nil
}

// HandleNotification verifies the webhook signature, maps the gateway
// status pair onto the order status, and writes it as an absolute
// value. Gateways redeliver; applying the same payload twice lands on
// the same status.
func (s *paymentAppImpl) HandleNotification(ctx context.Context, payload *model.PaymentNotification) (*model.OrderEntity, error) {
	verified, err := s.gateway.VerifyNotification(ctx, payload)
	if err != nil {
		logger.Warn("[HandleNotification] verification rejected", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorDetail(constant.ErrVerificationFailed, err.Error())
	}

	order, err := s.orderRepo.GetByID(ctx, verified.OrderID)
	if err != nil {
		logger.Error("[HandleNotification] get order", zap.String("order_id", verified.OrderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	target := constant.OrderStatusFromTransaction(verified.TransactionStatus, verified.FraudStatus)
	if target != order.Status {
		if err := s.orderRepo.UpdateStatus(ctx, verified.OrderID, target); err != nil {
			logger.Error("[HandleNotification] update status", zap.String("order_id", verified.OrderID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		if s.publisher != nil {
			msg := rabbitmq.OrderStatusMessage{
				OrderID:           verified.OrderID,
				Status:            string(target),
				TransactionStatus: verified.TransactionStatus,
				OccurredAt:        time.Now(),
			}
			if err := s.publisher.PublishOrderStatus(msg); err != nil {
				logger.Error("[HandleNotification] publish status event", zap.String("order_id", verified.OrderID), zap.String("error", err.Error()))
			}
		}
	}

	updated, err := s.orderRepo.GetByID(ctx, verified.OrderID)
	if err != nil {
		logger.Error("[HandleNotification] reload order", zap.String("order_id", verified.OrderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return updated, nil
}

// GetTransactionStatus returns the gateway's live view alongside the
// local order, without reconciling the two.
func (s *paymentAppImpl) GetTransactionStatus(ctx context.Context, orderID string) (*model.TransactionStatusResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[GetTransactionStatus] get order", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	status, err := s.gateway.CheckStatus(ctx, orderID)
	if err != nil {
		logger.Error("[GetTransactionStatus] gateway check", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrUpstream)
	}

	return &model.TransactionStatusResponse{
		GatewayStatus: status,
		Order:         order,
	}, nil
}

// ExpireOrder is invoked by the expiration consumer once a payment
// session's lifetime has elapsed. A pending order whose gateway
// transaction is gone or terminal-negative is cancelled; anything the
// gateway settled is applied instead.
func (s *paymentAppImpl) ExpireOrder(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[ExpireOrder] get order", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if order.Status != constant.OrderStatusPending {
		return nil
	}

	target := constant.OrderStatusCanceled
	status, err := s.gateway.CheckStatus(ctx, orderID)
	if err != nil {
		// no transaction on the gateway side; the session was never paid
		logger.Info("[ExpireOrder] gateway check failed, cancelling", zap.String("order_id", orderID), zap.String("error", err.Error()))
	} else {
		derived := constant.OrderStatusFromTransaction(status.TransactionStatus, status.FraudStatus)
		if derived == constant.OrderStatusPending {
			// session elapsed but gateway still says pending; leave it to
			// the gateway's own expire notification
			return nil
		}
		target = derived
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		logger.Error("[ExpireOrder] update status", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		msg := rabbitmq.OrderStatusMessage{
			OrderID:    orderID,
			Status:     string(target),
			OccurredAt: time.Now(),
		}
		if err := s.publisher.PublishOrderStatus(msg); err != nil {
			logger.Error("[ExpireOrder] publish status event", zap.String("order_id", orderID), zap.String("error", err.Error()))
		}
	}
	return nil
}
