package model

import "time"

type ProductEntity struct {
	ID           uint64     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Price        float64    `db:"price" json:"price"`
	ThumbnailURL string     `db:"thumbnail_url" json:"thumbnail_url"`
	GalleryURLs  StringList `db:"gallery_urls" json:"gallery_urls"`
	Tags         []TagEntity `db:"-" json:"tags"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CreateProductRequest carries the multipart form fields; thumbnail
// and gallery files travel separately as ImageUpload values.
type CreateProductRequest struct {
	Name  string   `json:"name" validate:"required"`
	Price float64  `json:"price" validate:"required,gt=0"`
	Tags  []string `json:"tags"`
}

type UpdateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price" validate:"omitempty,gt=0"`
	Tags  []string `json:"tags"`
}

type ProductListResponse struct {
	Items      []ProductEntity `json:"items"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}
