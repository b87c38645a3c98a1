package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	Insert(ctx context.Context, data *model.OrderEntity) error
	GetByID(ctx context.Context, id string) (*model.OrderEntity, error)
	List(ctx context.Context, filter *model.OrderFilter) ([]model.OrderEntity, error)
	Update(ctx context.Context, id string, req *model.UpdateOrderRequest) error
	UpdateStatus(ctx context.Context, id string, status constant.OrderStatus) error
	Delete(ctx context.Context, id string) error
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	insertOrderQuery = `INSERT INTO ` + "`order`" + ` (id, user_id, product_id, status, wedding_info, snap_token, image_url, image_urls, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	// joined select; listing order is lexicographic on the status text
	selectOrderBase = `SELECT o.id, o.user_id, o.product_id, o.status, o.wedding_info, o.snap_token, o.image_url, o.image_urls, o.created_at, o.updated_at,
p.id AS p_id, p.name AS p_name, p.price AS p_price, p.thumbnail_url AS p_thumbnail_url, p.gallery_urls AS p_gallery_urls, p.created_at AS p_created_at,
u.id AS u_id, u.name AS u_name, u.role AS u_role, u.created_at AS u_created_at
FROM ` + "`order`" + ` o
JOIN product p ON p.id = o.product_id
JOIN user u ON u.id = o.user_id`

	updateStatusQuery = `UPDATE ` + "`order`" + ` SET status = ?, updated_at = NOW() WHERE id = ?`

	deleteOrderQuery = `DELETE FROM ` + "`order`" + ` WHERE id = ?`

	orderTagsQuery = `SELECT pt.product_id, t.id, t.name FROM product_tag pt JOIN tag t ON t.id = pt.tag_id WHERE pt.product_id IN (?) ORDER BY t.name`
)

type orderRow struct {
	ID          string               `db:"id"`
	UserID      string               `db:"user_id"`
	ProductID   uint64               `db:"product_id"`
	Status      constant.OrderStatus `db:"status"`
	WeddingInfo model.JSONMap        `db:"wedding_info"`
	SnapToken   *string              `db:"snap_token"`
	ImageURL    string               `db:"image_url"`
	ImageURLs   model.StringList     `db:"image_urls"`
	CreatedAt   time.Time            `db:"created_at"`
	UpdatedAt   *time.Time           `db:"updated_at"`

	PID           uint64           `db:"p_id"`
	PName         string           `db:"p_name"`
	PPrice        float64          `db:"p_price"`
	PThumbnailURL string           `db:"p_thumbnail_url"`
	PGalleryURLs  model.StringList `db:"p_gallery_urls"`
	PCreatedAt    time.Time        `db:"p_created_at"`

	UID        string    `db:"u_id"`
	UName      string    `db:"u_name"`
	URole      string    `db:"u_role"`
	UCreatedAt time.Time `db:"u_created_at"`
}

func (r orderRow) entity() model.OrderEntity {
	return model.OrderEntity{
		ID:          r.ID,
		UserID:      r.UserID,
		ProductID:   r.ProductID,
		Status:      r.Status,
		WeddingInfo: r.WeddingInfo,
		SnapToken:   r.SnapToken,
		ImageURL:    r.ImageURL,
		ImageURLs:   r.ImageURLs,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Product: &model.ProductEntity{
			ID:           r.PID,
			Name:         r.PName,
			Price:        r.PPrice,
			ThumbnailURL: r.PThumbnailURL,
			GalleryURLs:  r.PGalleryURLs,
			Tags:         []model.TagEntity{},
			CreatedAt:    r.PCreatedAt,
		},
		User: &model.UserEntity{
			ID:        r.UID,
			Name:      r.UName,
			Role:      r.URole,
			CreatedAt: r.UCreatedAt,
		},
	}
}

func (s *SQL) Insert(ctx context.Context, data *model.OrderEntity) error {
	_, err := s.conn.ExecContext(ctx, insertOrderQuery,
		data.ID, data.UserID, data.ProductID, data.Status, data.WeddingInfo, data.SnapToken, data.ImageURL, data.ImageURLs)
	return err
}

func (s *SQL) GetByID(ctx context.Context, id string) (*model.OrderEntity, error) {
	var row orderRow
	query := selectOrderBase + " WHERE o.id = ?"
	if err := s.conn.QueryRowxContext(ctx, query, id).StructScan(&row); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	entity := row.entity()
	if err := s.attachTags(ctx, []*model.OrderEntity{&entity}); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.OrderFilter) ([]model.OrderEntity, error) {
	query := selectOrderBase + " WHERE true"
	args := make([]any, 0, 2)

	if filter != nil {
		if filter.UserID != "" {
			query += " AND o.user_id = ?"
			args = append(args, filter.UserID)
		}
		if filter.Status != "" {
			query += " AND o.status = ?"
			args = append(args, filter.Status)
		}
	}
	query += " ORDER BY o.status ASC"

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.OrderEntity, 0)
	for rows.Next() {
		var row orderRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		orders = append(orders, row.entity())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*model.OrderEntity, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := s.attachTags(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *SQL) Update(ctx context.Context, id string, req *model.UpdateOrderRequest) error {
	query := "UPDATE `order` SET updated_at = NOW()"
	args := make([]any, 0, 4)

	if req.Status != nil {
		query += ", status = ?"
		args = append(args, *req.Status)
	}
	if req.WeddingInfo != nil {
		query += ", wedding_info = ?"
		args = append(args, req.WeddingInfo)
	}
	if req.SnapToken != nil {
		query += ", snap_token = ?"
		args = append(args, *req.SnapToken)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) UpdateStatus(ctx context.Context, id string, status constant.OrderStatus) error {
	_, err := s.conn.ExecContext(ctx, updateStatusQuery, status, id)
	return err
}

func (s *SQL) Delete(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, deleteOrderQuery, id)
	return err
}

func (s *SQL) attachTags(ctx context.Context, orders []*model.OrderEntity) error {
	if len(orders) == 0 {
		return nil
	}

	seen := make(map[uint64]bool)
	ids := make([]uint64, 0, len(orders))
	for _, o := range orders {
		if !seen[o.ProductID] {
			seen[o.ProductID] = true
			ids = append(ids, o.ProductID)
		}
	}

	query, args, err := sqlx.In(orderTagsQuery, ids)
	if err != nil {
		return err
	}

	rows, err := s.conn.QueryxContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	tags := make(map[uint64][]model.TagEntity)
	for rows.Next() {
		var (
			productID uint64
			tag       model.TagEntity
		)
		if err := rows.Scan(&productID, &tag.ID, &tag.Name); err != nil {
			return err
		}
		tags[productID] = append(tags[productID], tag)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, o := range orders {
		if o.Product != nil && tags[o.ProductID] != nil {
			o.Product.Tags = tags[o.ProductID]
		}
	}
	return nil
}

// IsDuplicateEntry reports whether err is a MySQL unique-constraint
// violation (the losing side of a same-order-id race).
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
