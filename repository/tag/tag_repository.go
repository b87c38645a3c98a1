package tag

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kartanikah/wedding-commerce/model"
)

type SQL struct {
	conn *sqlx.DB
}

type TagRepository interface {
	List(ctx context.Context) ([]model.TagEntity, error)
	FindOrCreate(ctx context.Context, name string) (*model.TagEntity, error)
	FindOrCreateTx(ctx context.Context, tx *sqlx.Tx, name string) (*model.TagEntity, error)
}

func NewTagRepository(conn *sqlx.DB) TagRepository {
	return &SQL{conn: conn}
}

const (
	insertTagQuery = `INSERT IGNORE INTO tag (name) VALUES (?)`
	getTagQuery    = `SELECT id, name FROM tag WHERE name = ?`
	listTagsQuery  = `SELECT id, name FROM tag ORDER BY name`
)

func (s *SQL) List(ctx context.Context) ([]model.TagEntity, error) {
	tags := make([]model.TagEntity, 0)
	if err := s.conn.SelectContext(ctx, &tags, listTagsQuery); err != nil {
		return nil, err
	}
	return tags, nil
}

// FindOrCreate resolves a tag by its lowercase natural key; an
// existing row wins.
func (s *SQL) FindOrCreate(ctx context.Context, name string) (*model.TagEntity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, err := s.conn.ExecContext(ctx, insertTagQuery, name); err != nil {
		return nil, err
	}
	var entity model.TagEntity
	if err := s.conn.QueryRowxContext(ctx, getTagQuery, name).StructScan(&entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) FindOrCreateTx(ctx context.Context, tx *sqlx.Tx, name string) (*model.TagEntity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, err := tx.ExecContext(ctx, insertTagQuery, name); err != nil {
		return nil, err
	}
	var entity model.TagEntity
	if err := tx.QueryRowxContext(ctx, getTagQuery, name).StructScan(&entity); err != nil {
		return nil, err
	}
	return &entity, nil
}
