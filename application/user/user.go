package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	userrepo "github.com/kartanikah/wedding-commerce/repository/user"
	"github.com/kartanikah/wedding-commerce/utils/errors"
	"github.com/kartanikah/wedding-commerce/utils/logger"
)

type UserApp interface {
	SyncUser(ctx context.Context, req *model.SyncUserRequest) (*model.UserEntity, error)
	GetUser(ctx context.Context, id string) (*model.UserEntity, error)
}

type userAppImpl struct {
	userRepo userrepo.UserRepository
}

func NewUserApp(userRepo userrepo.UserRepository) UserApp {
	return &userAppImpl{userRepo: userRepo}
}

// SyncUser mirrors the external identity into the local store. The
// full-user-returning variant of the contract: find-or-create by the
// auth subject, an existing row wins and is returned untouched.
func (s *userAppImpl) SyncUser(ctx context.Context, req *model.SyncUserRequest) (*model.UserEntity, error) {
	if req.ID == "" || req.Name == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	role := req.Role
	if role == "" {
		role = constant.RoleCustomer
	}

	entity, err := s.userRepo.FindOrCreate(ctx, &model.UserEntity{
		ID:   req.ID,
		Name: req.Name,
		Role: role,
	})
	if err != nil {
		logger.Error("[SyncUser] find or create", zap.String("user_id", req.ID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return entity, nil
}

func (s *userAppImpl) GetUser(ctx context.Context, id string) (*model.UserEntity, error) {
	entity, err := s.userRepo.Get(ctx, id)
	if err != nil {
		logger.Error("[GetUser] get user", zap.String("user_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrUserNotFound)
	}
	return entity, nil
}
