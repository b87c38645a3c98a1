package model

import (
	"io"
	"time"

	"github.com/kartanikah/wedding-commerce/constant"
)

// OrderEntity is the order table row plus its joined relations.
// image_url keeps the first uploaded URL for readers of the older
// single-image contract; image_urls is authoritative.
type OrderEntity struct {
	ID          string               `db:"id" json:"id"`
	UserID      string               `db:"user_id" json:"user_id"`
	ProductID   uint64               `db:"product_id" json:"product_id"`
	Status      constant.OrderStatus `db:"status" json:"status"`
	WeddingInfo JSONMap              `db:"wedding_info" json:"wedding_info,omitempty"`
	SnapToken   *string              `db:"snap_token" json:"snap_token,omitempty"`
	ImageURL    string               `db:"image_url" json:"image_url"`
	ImageURLs   StringList           `db:"image_urls" json:"image_urls"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time           `db:"updated_at" json:"updated_at,omitempty"`

	Product *ProductEntity `db:"-" json:"product,omitempty"`
	User    *UserEntity    `db:"-" json:"user,omitempty"`
}

// ImageUpload is a single multipart file as handed to the workflow.
type ImageUpload struct {
	Content     io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type CreateOrderRequest struct {
	ID          string  `json:"id" validate:"required"`
	UserID      string  `json:"user_id" validate:"required"`
	ProductID   uint64  `json:"product_id" validate:"required"`
	WeddingInfo JSONMap `json:"wedding_info"`
	SnapToken   *string `json:"snap_token"`
	Images      []ImageUpload
}

// UpdateOrderRequest updates each field independently; nil means
// leave unchanged.
type UpdateOrderRequest struct {
	Status      *constant.OrderStatus `json:"status"`
	WeddingInfo JSONMap               `json:"wedding_info"`
	SnapToken   *string               `json:"snap_token"`
}

type OrderFilter struct {
	UserID string
	Status constant.OrderStatus
}
