package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/kartanikah/wedding-commerce/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.ProductEntity, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.ProductEntity) (uint64, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, data *model.ProductEntity) error
	ReplaceTagsTx(ctx context.Context, tx *sqlx.Tx, productID uint64, tagIDs []uint64) error
	Delete(ctx context.Context, id uint64) error
	TagsByProductIDs(ctx context.Context, productIDs []uint64) (map[uint64][]model.TagEntity, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	getProductQuery = `SELECT id, name, price, thumbnail_url, gallery_urls, created_at, updated_at FROM product WHERE id = ?`

	listProductsQuery = `SELECT id, name, price, thumbnail_url, gallery_urls, created_at, updated_at FROM product ORDER BY id LIMIT ? OFFSET ?`

	countProductsQuery = `SELECT COUNT(*) FROM product`

	insertProductQuery = `INSERT INTO product (name, price, thumbnail_url, gallery_urls, created_at) VALUES (?, ?, ?, ?, NOW())`

	updateProductQuery = `UPDATE product SET name = ?, price = ?, thumbnail_url = ?, gallery_urls = ?, updated_at = NOW() WHERE id = ?`

	deleteProductQuery = `DELETE FROM product WHERE id = ?`

	deleteProductTagsQuery = `DELETE FROM product_tag WHERE product_id = ?`

	insertProductTagQuery = `INSERT INTO product_tag (product_id, tag_id) VALUES (?, ?)`

	tagsByProductsQuery = `SELECT pt.product_id, t.id, t.name FROM product_tag pt JOIN tag t ON t.id = pt.tag_id WHERE pt.product_id IN (?) ORDER BY t.name`
)

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, getProductQuery, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	tags, err := s.TagsByProductIDs(ctx, []uint64{id})
	if err != nil {
		return nil, err
	}
	entity.Tags = tags[id]
	if entity.Tags == nil {
		entity.Tags = []model.TagEntity{}
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, page, perPage int) ([]model.ProductEntity, int64, error) {
	offset := (page - 1) * perPage

	items := make([]model.ProductEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, listProductsQuery, perPage, offset); err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	tags, err := s.TagsByProductIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].Tags = tags[items[i].ID]
		if items[i].Tags == nil {
			items[i].Tags = []model.TagEntity{}
		}
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductsQuery); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.ProductEntity) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertProductQuery, data.Name, data.Price, data.ThumbnailURL, data.GalleryURLs)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) UpdateTx(ctx context.Context, tx *sqlx.Tx, data *model.ProductEntity) error {
	_, err := tx.ExecContext(ctx, updateProductQuery, data.Name, data.Price, data.ThumbnailURL, data.GalleryURLs, data.ID)
	return err
}

func (s *SQL) ReplaceTagsTx(ctx context.Context, tx *sqlx.Tx, productID uint64, tagIDs []uint64) error {
	if _, err := tx.ExecContext(ctx, deleteProductTagsQuery, productID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, insertProductTagQuery, productID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, deleteProductQuery, id)
	return err
}

func (s *SQL) TagsByProductIDs(ctx context.Context, productIDs []uint64) (map[uint64][]model.TagEntity, error) {
	result := make(map[uint64][]model.TagEntity)
	if len(productIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(tagsByProductsQuery, productIDs)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryxContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID uint64
			tag       model.TagEntity
		)
		if err := rows.Scan(&productID, &tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		result[productID] = append(result[productID], tag)
	}
	return result, rows.Err()
}
