package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	appcatalog "github.com/kartanikah/wedding-commerce/application/catalog"
	"github.com/kartanikah/wedding-commerce/cmd/config"
	"github.com/kartanikah/wedding-commerce/constant"
	productmocks "github.com/kartanikah/wedding-commerce/mocks/repository/product"
	redismocks "github.com/kartanikah/wedding-commerce/mocks/repository/redis"
	tagmocks "github.com/kartanikah/wedding-commerce/mocks/repository/tag"
	txmocks "github.com/kartanikah/wedding-commerce/mocks/repository/tx"
	storagemocks "github.com/kartanikah/wedding-commerce/mocks/thirdparty/storage"
	"github.com/kartanikah/wedding-commerce/model"
	cerr "github.com/kartanikah/wedding-commerce/utils/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{
			CacheTTL: 5 * time.Minute,
		},
		Storage: config.StorageConfig{
			ProductBucket: "products",
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

type fields struct {
	txRepo      *txmocks.TxRepository
	productRepo *productmocks.ProductRepository
	tagRepo     *tagmocks.TagRepository
	redisRepo   *redismocks.Repository
	storage     *storagemocks.ObjectStorage
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:      txmocks.NewTxRepository(t),
		productRepo: productmocks.NewProductRepository(t),
		tagRepo:     tagmocks.NewTagRepository(t),
		redisRepo:   redismocks.NewRepository(t),
		storage:     storagemocks.NewObjectStorage(t),
	}
}

func newApp(f fields) appcatalog.CatalogApp {
	return appcatalog.NewCatalogApp(testConfig(), f.txRepo, f.productRepo, f.tagRepo, f.redisRepo, f.storage)
}

func TestCatalogApp_GetProduct(t *testing.T) {
	tests := []struct {
		name     string
		fields   fields
		id       uint64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: cache hit skips the database",
			fields: newFields(t),
			id:     7,
			mockCall: func(f fields) {
				f.redisRepo.On("GetProduct", mock.Anything, uint64(7)).
					Return(&model.ProductEntity{ID: 7, Name: "Undangan Floral"}, nil).Once()
				// no productRepo expectation: a DB read here fails the test
			},
		},
		{
			name:   "success: cache miss reads the database and populates the cache",
			fields: newFields(t),
			id:     7,
			mockCall: func(f fields) {
				f.redisRepo.On("GetProduct", mock.Anything, uint64(7)).Return(nil, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).
					Return(&model.ProductEntity{ID: 7, Name: "Undangan Floral"}, nil).Once()
				f.redisRepo.On("SetProduct", mock.Anything, mock.Anything, 5*time.Minute).Return(nil).Once()
			},
		},
		{
			name:   "success: cache write failure is not fatal",
			fields: newFields(t),
			id:     7,
			mockCall: func(f fields) {
				f.redisRepo.On("GetProduct", mock.Anything, uint64(7)).Return(nil, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).
					Return(&model.ProductEntity{ID: 7, Name: "Undangan Floral"}, nil).Once()
				f.redisRepo.On("SetProduct", mock.Anything, mock.Anything, 5*time.Minute).
					Return(errors.New("redis gone")).Once()
			},
		},
		{
			name:   "error: product not found",
			fields: newFields(t),
			id:     99,
			mockCall: func(f fields) {
				f.redisRepo.On("GetProduct", mock.Anything, uint64(99)).Return(nil, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(99)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := newApp(tt.fields)

			got, err := app.GetProduct(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetProduct() error = %v, wantErr %v", err, tt.wantErr)
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
				t.Fatalf("GetProduct() ID = %d, want %d", got.ID, tt.id)
			}
		})
	}
}

func TestCatalogApp_ListProducts(t *testing.T) {
	tests := []struct {
		name     string
		fields   fields
		page     int
		perPage  int
		mockCall func(f fields)
		wantPage int
	}{
		{
			name:    "success: defaults applied for zero paging",
			fields:  newFields(t),
			page:    0,
			perPage: 0,
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 1, 10).
					Return([]model.ProductEntity{{ID: 1}}, int64(1), nil).Once()
			},
			wantPage: 1,
		},
		{
			name:    "success: explicit paging passed through",
			fields:  newFields(t),
			page:    3,
			perPage: 25,
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 3, 25).
					Return([]model.ProductEntity{}, int64(60), nil).Once()
			},
			wantPage: 3,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := newApp(tt.fields)

			got, err := app.ListProducts(context.Background(), tt.page, tt.perPage)
			if err != nil {
				t.Fatalf("ListProducts() error = %v", err)
			}
			if got.Page != tt.wantPage {
				t.Fatalf("ListProducts() Page = %d, want %d", got.Page, tt.wantPage)
			}
		})
	}
}

func TestCatalogApp_CreateProduct(t *testing.T) {
	thumb := imageUpload("thumb.jpg")

	tests := []struct {
		name      string
		fields    fields
		req       *model.CreateProductRequest
		thumbnail *model.ImageUpload
		gallery   []model.ImageUpload
		mockCall  func(f fields)
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name:   "success: product with tags and gallery",
			fields: newFields(t),
			req: &model.CreateProductRequest{
				Name:  "Undangan Floral",
				Price: 150000,
				Tags:  []string{"floral"},
			},
			thumbnail: &thumb,
			gallery:   []model.ImageUpload{imageUpload("g1.jpg")},
			mockCall: func(f fields) {
				f.storage.On("Upload", mock.Anything, "products", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/products/thumb.jpg", nil).Once()
				f.storage.On("Upload", mock.Anything, "products", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/products/g1.jpg", nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.productRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(data *model.ProductEntity) bool {
					return data.Name == "Undangan Floral" &&
						data.ThumbnailURL == "https://cdn.local/products/thumb.jpg" &&
						len(data.GalleryURLs) == 1
				})).Return(uint64(7), nil).Once()

				f.tagRepo.On("FindOrCreateTx", mock.Anything, tx, "floral").
					Return(&model.TagEntity{ID: 3, Name: "floral"}, nil).Once()
				f.productRepo.On("ReplaceTagsTx", mock.Anything, tx, uint64(7), []uint64{3}).Return(nil).Once()

				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(7)).
					Return(&model.ProductEntity{ID: 7, Name: "Undangan Floral"}, nil).Once()
			},
		},
		{
			name:      "error: missing thumbnail",
			fields:    newFields(t),
			req:       &model.CreateProductRequest{Name: "Undangan Floral", Price: 150000},
			thumbnail: nil,
			wantErr:   true,
			errCode:   constant.ErrInvalidRequest,
		},
		{
			name:   "error: gallery upload fails, thumbnail cleaned up",
			fields: newFields(t),
			req: &model.CreateProductRequest{
				Name:  "Undangan Floral",
				Price: 150000,
			},
			thumbnail: &thumb,
			gallery:   []model.ImageUpload{imageUpload("g1.jpg")},
			mockCall: func(f fields) {
				f.storage.On("Upload", mock.Anything, "products", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/products/thumb.jpg", nil).Once()
				f.storage.On("Upload", mock.Anything, "products", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("", errors.New("bucket unreachable")).Once()

				f.storage.On("Delete", mock.Anything, "products", mock.MatchedBy(func(keys []string) bool {
					return len(keys) == 1
				})).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUploadFailed,
		},
		{
			name:   "error: insert fails, uploads cleaned up and tx rolled back",
			fields: newFields(t),
			req: &model.CreateProductRequest{
				Name:  "Undangan Floral",
				Price: 150000,
			},
			thumbnail: &thumb,
			mockCall: func(f fields) {
				f.storage.On("Upload", mock.Anything, "products", mock.Anything, mock.Anything, int64(16), "image/jpeg").
					Return("https://cdn.local/products/thumb.jpg", nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.productRepo.On("InsertTx", mock.Anything, tx, mock.Anything).
					Return(uint64(0), errors.New("db gone")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.storage.On("Delete", mock.Anything, "products", mock.Anything).Return(nil).Once()
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
			app := newApp(tt.fields)

			got, err := app.CreateProduct(context.Background(), tt.req, tt.thumbnail, tt.gallery)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateProduct() error = %v, wantErr %v", err, tt.wantErr)
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
			if got == nil || got.ID == 0 {
				t.Fatal("CreateProduct() should return the created product")
			}
		})
	}
}

func TestCatalogApp_DeleteProduct(t *testing.T) {
	tests := []struct {
		name     string
		fields   fields
		id       uint64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: delete invalidates the cache",
			fields: newFields(t),
			id:     7,
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(7)).
					Return(&model.ProductEntity{ID: 7}, nil).Once()
				f.productRepo.On("Delete", mock.Anything, uint64(7)).Return(nil).Once()
				f.redisRepo.On("DeleteProduct", mock.Anything, uint64(7)).Return(nil).Once()
			},
		},
		{
			name:   "error: product not found",
			fields: newFields(t),
			id:     99,
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(99)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := newApp(tt.fields)

			err := app.DeleteProduct(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteProduct() error = %v, wantErr %v", err, tt.wantErr)
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

func TestCatalogApp_CreateTag(t *testing.T) {
	tests := []struct {
		name     string
		fields   fields
		input    string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: name normalized before lookup",
			fields: newFields(t),
			input:  "  Floral ",
			mockCall: func(f fields) {
				f.tagRepo.On("FindOrCreate", mock.Anything, "floral").
					Return(&model.TagEntity{ID: 3, Name: "floral"}, nil).Once()
			},
		},
		{
			name:    "error: blank name",
			fields:  newFields(t),
			input:   "   ",
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := newApp(tt.fields)

			got, err := app.CreateTag(context.Background(), tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateTag() error = %v, wantErr %v", err, tt.wantErr)
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
			if got.Name != "floral" {
				t.Fatalf("CreateTag() Name = %s, want floral", got.Name)
			}
		})
	}
}
