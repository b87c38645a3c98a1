package order_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/mock"

	apporder "github.com/kartanikah/wedding-commerce/application/order"
	"github.com/kartanikah/wedding-commerce/cmd/config"
	"github.com/kartanikah/wedding-commerce/constant"
	ordermocks "github.com/kartanikah/wedding-commerce/mocks/repository/order"
	productmocks "github.com/kartanikah/wedding-commerce/mocks/repository/product"
	usermocks "github.com/kartanikah/wedding-commerce/mocks/repository/user"
	storagemocks "github.com/kartanikah/wedding-commerce/mocks/thirdparty/storage"
	"github.com/kartanikah/wedding-commerce/model"
	cerr "github.com/kartanikah/wedding-commerce/utils/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{
			OrderBucket: "orders",
		},
	}
}

func imageUpload(name string) model.ImageUpload {
	return model.ImageUpload{
		Content:     strings.NewReader("fake image bytes"),
		Size:        16,
		ContentType: "image/jpeg",
		Filename:    name,
	}
}

func TestOrderApp_CreateOrder(t *testing.T) {
	type fields struct {
		config      *config.Config
		orderRepo   *ordermocks.OrderRepository
		productRepo *productmocks.ProductRepository
		userRepo    *usermocks.UserRepository
		storage     *storagemocks.ObjectStorage
	}
	type args struct {
		ctx context.Context
		req *model.CreateOrderRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.OrderEntity
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: create order with two images",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-001",
					UserID:    "auth0|abc",
					ProductID: 7,
					Images:    []model.ImageUpload{imageUpload("front.jpg"), imageUpload("back.jpg")},
				},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").Return(&model.UserEntity{ID: "auth0|abc", Name: "Dewi"}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).Return(&model.ProductEntity{ID: 7, Name: "Undangan Floral"}, nil).Once()

				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/orders/a.jpg", nil).Once()
				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/orders/b.jpg", nil).Once()

				f.orderRepo.On("Insert", mock.Anything, mock.MatchedBy(func(data *model.OrderEntity) bool {
					return data.ID == "ORD-001" &&
						data.Status == constant.OrderStatusPending &&
						data.ImageURL == "https://cdn.local/orders/a.jpg" &&
						len(data.ImageURLs) == 2 &&
						data.ImageURLs[1] == "https://cdn.local/orders/b.jpg"
				})).Return(nil).Once()

				f.orderRepo.On("GetByID", mock.Anything, "ORD-001").Return(&model.OrderEntity{
					ID:     "ORD-001",
					Status: constant.OrderStatusPending,
				}, nil).Once()
			},
			want: &model.OrderEntity{
				ID:     "ORD-001",
				Status: constant.OrderStatusPending,
			},
			wantErr: false,
		},
		{
			name: "error: no images",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-002",
					UserID:    "auth0|abc",
					ProductID: 7,
				},
			},
			mockCall: nil,
			want:     nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: unknown product, nothing uploaded",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-003",
					UserID:    "auth0|abc",
					ProductID: 99,
					Images:    []model.ImageUpload{imageUpload("front.jpg")},
				},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").Return(&model.UserEntity{ID: "auth0|abc"}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(99)).Return(nil, nil).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
		{
			name: "error: unknown user",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-004",
					UserID:    "auth0|nobody",
					ProductID: 7,
					Images:    []model.ImageUpload{imageUpload("front.jpg")},
				},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|nobody").Return(nil, nil).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrUserNotFound,
		},
		{
			name: "error: second upload fails, first upload compensated",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-005",
					UserID:    "auth0|abc",
					ProductID: 7,
					Images:    []model.ImageUpload{imageUpload("front.jpg"), imageUpload("back.jpg")},
				},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").Return(&model.UserEntity{ID: "auth0|abc"}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).Return(&model.ProductEntity{ID: 7}, nil).Once()

				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/orders/a.jpg", nil).Once()
				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("", errors.New("bucket unreachable")).Once()

				f.storage.On("Delete", mock.Anything, "orders", mock.MatchedBy(func(keys []string) bool {
					return len(keys) == 1
				})).Return(nil).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrUploadFailed,
		},
		{
			name: "error: insert fails, every upload compensated",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-006",
					UserID:    "auth0|abc",
					ProductID: 7,
					Images:    []model.ImageUpload{imageUpload("front.jpg"), imageUpload("back.jpg")},
				},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").Return(&model.UserEntity{ID: "auth0|abc"}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).Return(&model.ProductEntity{ID: 7}, nil).Once()

				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/orders/a.jpg", nil).Once()
				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/orders/b.jpg", nil).Once()

				f.orderRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db gone")).Once()

				f.storage.On("Delete", mock.Anything, "orders", mock.MatchedBy(func(keys []string) bool {
					return len(keys) == 1
				})).Return(nil).Times(2)
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: duplicate order id",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-007",
					UserID:    "auth0|abc",
					ProductID: 7,
					Images:    []model.ImageUpload{imageUpload("front.jpg")},
				},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").Return(&model.UserEntity{ID: "auth0|abc"}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).Return(&model.ProductEntity{ID: 7}, nil).Once()

				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/orders/a.jpg", nil).Once()

				f.orderRepo.On("Insert", mock.Anything, mock.Anything).
					Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}).Once()

				f.storage.On("Delete", mock.Anything, "orders", mock.Anything).Return(nil).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrDuplicateOrder,
		},
		{
			name: "success: compensation failure does not change the returned error",
			fields: fields{
				config:      testConfig(),
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				storage:     storagemocks.NewObjectStorage(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreateOrderRequest{
					ID:        "ORD-008",
					UserID:    "auth0|abc",
					ProductID: 7,
					Images:    []model.ImageUpload{imageUpload("front.jpg"), imageUpload("back.jpg")},
				},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").Return(&model.UserEntity{ID: "auth0|abc"}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).Return(&model.ProductEntity{ID: 7}, nil).Once()

				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/orders/a.jpg", nil).Once()
				f.storage.On("Upload", mock.Anything, "orders", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("", errors.New("bucket unreachable")).Once()

				f.storage.On("Delete", mock.Anything, "orders", mock.Anything).
					Return(errors.New("delete also failed")).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrUploadFailed,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(tt.fields.config, tt.fields.orderRepo, tt.fields.productRepo, tt.fields.userRepo, tt.fields.storage)

			got, err := app.CreateOrder(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateOrder() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.ID != tt.want.ID {
				t.Fatalf("CreateOrder() ID = %v, want %v", got.ID, tt.want.ID)
			}
			if got.Status != tt.want.Status {
				t.Fatalf("CreateOrder() Status = %v, want %v", got.Status, tt.want.Status)
			}
		})
	}
}

func TestOrderApp_GetOrder(t *testing.T) {
	type fields struct {
		orderRepo *ordermocks.OrderRepository
	}
	tests := []struct {
		name     string
		fields   fields
		id       string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: order found",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:     "ORD-001",
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, "ORD-001").Return(&model.OrderEntity{ID: "ORD-001"}, nil).Once()
			},
			wantErr: false,
		},
		{
			name:   "error: order not found",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:     "ORD-404",
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, "ORD-404").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
		{
			name:   "error: repository failure",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:     "ORD-001",
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, "ORD-001").Return(nil, errors.New("db gone")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(testConfig(), tt.fields.orderRepo, productmocks.NewProductRepository(t), usermocks.NewUserRepository(t), storagemocks.NewObjectStorage(t))

			got, err := app.GetOrder(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.ID != tt.id {
				t.Fatalf("GetOrder() ID = %v, want %v", got.ID, tt.id)
			}
		})
	}
}

func TestOrderApp_ListOrders(t *testing.T) {
	type fields struct {
		orderRepo *ordermocks.OrderRepository
	}
	tests := []struct {
		name     string
		fields   fields
		filter   *model.OrderFilter
		mockCall func(f fields)
		wantLen  int
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: unfiltered",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			filter: nil,
			mockCall: func(f fields) {
				f.orderRepo.On("List", mock.Anything, (*model.OrderFilter)(nil)).Return([]model.OrderEntity{
					{ID: "ORD-001", Status: constant.OrderStatusCanceled},
					{ID: "ORD-002", Status: constant.OrderStatusPending},
				}, nil).Once()
			},
			wantLen: 2,
		},
		{
			name:    "error: unknown status filter",
			fields:  fields{orderRepo: ordermocks.NewOrderRepository(t)},
			filter:  &model.OrderFilter{Status: "shipped"},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "success: filter by status",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			filter: &model.OrderFilter{Status: constant.OrderStatusAccepted},
			mockCall: func(f fields) {
				f.orderRepo.On("List", mock.Anything, &model.OrderFilter{Status: constant.OrderStatusAccepted}).
					Return([]model.OrderEntity{{ID: "ORD-003", Status: constant.OrderStatusAccepted}}, nil).Once()
			},
			wantLen: 1,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(testConfig(), tt.fields.orderRepo, productmocks.NewProductRepository(t), usermocks.NewUserRepository(t), storagemocks.NewObjectStorage(t))

			got, err := app.ListOrders(context.Background(), tt.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListOrders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if len(got) != tt.wantLen {
				t.Fatalf("ListOrders() len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestOrderApp_UpdateOrder(t *testing.T) {
	newStatus := constant.OrderStatusAccepted
	badStatus := constant.OrderStatus("shipped")

	type fields struct {
		orderRepo *ordermocks.OrderRepository
	}
	tests := []struct {
		name     string
		fields   fields
		id       string
		req      *model.UpdateOrderRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: update status",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:     "ORD-001",
			req:    &model.UpdateOrderRequest{Status: &newStatus},
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, "ORD-001").
					Return(&model.OrderEntity{ID: "ORD-001", Status: constant.OrderStatusPending}, nil).Once()
				f.orderRepo.On("Update", mock.Anything, "ORD-001", mock.MatchedBy(func(req *model.UpdateOrderRequest) bool {
					return req.Status != nil && *req.Status == constant.OrderStatusAccepted
				})).Return(nil).Once()
				f.orderRepo.On("GetByID", mock.Anything, "ORD-001").
					Return(&model.OrderEntity{ID: "ORD-001", Status: constant.OrderStatusAccepted}, nil).Once()
			},
		},
		{
			name:    "error: invalid status value",
			fields:  fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:      "ORD-001",
			req:     &model.UpdateOrderRequest{Status: &badStatus},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: order not found",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:     "ORD-404",
			req:    &model.UpdateOrderRequest{Status: &newStatus},
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, "ORD-404").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(testConfig(), tt.fields.orderRepo, productmocks.NewProductRepository(t), usermocks.NewUserRepository(t), storagemocks.NewObjectStorage(t))

			got, err := app.UpdateOrder(context.Background(), tt.id, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != constant.OrderStatusAccepted {
				t.Fatalf("UpdateOrder() Status = %v, want %v", got.Status, constant.OrderStatusAccepted)
			}
		})
	}
}

func TestOrderApp_DeleteOrder(t *testing.T) {
	type fields struct {
		orderRepo *ordermocks.OrderRepository
	}
	tests := []struct {
		name     string
		fields   fields
		id       string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: delete existing order",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:     "ORD-001",
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, "ORD-001").Return(&model.OrderEntity{ID: "ORD-001"}, nil).Once()
				f.orderRepo.On("Delete", mock.Anything, "ORD-001").Return(nil).Once()
			},
		},
		{
			name:   "error: order not found",
			fields: fields{orderRepo: ordermocks.NewOrderRepository(t)},
			id:     "ORD-404",
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, "ORD-404").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(testConfig(), tt.fields.orderRepo, productmocks.NewProductRepository(t), usermocks.NewUserRepository(t), storagemocks.NewObjectStorage(t))

			err := app.DeleteOrder(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}
