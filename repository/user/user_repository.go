package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/kartanikah/wedding-commerce/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*model.UserEntity, error)
	FindOrCreate(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT IGNORE INTO user (id, name, role, created_at) VALUES (?, ?, ?, NOW())`
	getUserQuery    = `SELECT id, name, role, created_at, updated_at FROM user WHERE id = ?`
)

func (s *SQL) Get(ctx context.Context, id string) (*model.UserEntity, error) {
	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, getUserQuery, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// FindOrCreate inserts the row if the id is new; an existing row wins
// and is returned untouched.
func (s *SQL) FindOrCreate(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	if _, err := s.conn.ExecContext(ctx, insertUserQuery, data.ID, data.Name, data.Role); err != nil {
		return nil, err
	}
	return s.Get(ctx, data.ID)
}
