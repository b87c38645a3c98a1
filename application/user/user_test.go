package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	appuser "github.com/kartanikah/wedding-commerce/application/user"
	"github.com/kartanikah/wedding-commerce/constant"
	usermocks "github.com/kartanikah/wedding-commerce/mocks/repository/user"
	"github.com/kartanikah/wedding-commerce/model"
	cerr "github.com/kartanikah/wedding-commerce/utils/errors"
)

func TestUserApp_SyncUser(t *testing.T) {
	type fields struct {
		userRepo *usermocks.UserRepository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.SyncUserRequest
		mockCall func(f fields)
		wantName string
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: first sync creates the row",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req: &model.SyncUserRequest{
				ID:   "auth0|abc",
				Name: "Dewi",
			},
			mockCall: func(f fields) {
				f.userRepo.On("FindOrCreate", mock.Anything, mock.MatchedBy(func(data *model.UserEntity) bool {
					return data.ID == "auth0|abc" && data.Name == "Dewi" && data.Role == constant.RoleCustomer
				})).Return(&model.UserEntity{ID: "auth0|abc", Name: "Dewi", Role: constant.RoleCustomer}, nil).Once()
			},
			wantName: "Dewi",
		},
		{
			name:   "success: existing row wins over the new payload",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req: &model.SyncUserRequest{
				ID:   "auth0|abc",
				Name: "Dewi Renamed",
			},
			mockCall: func(f fields) {
				f.userRepo.On("FindOrCreate", mock.Anything, mock.Anything).
					Return(&model.UserEntity{ID: "auth0|abc", Name: "Dewi", Role: constant.RoleCustomer}, nil).Once()
			},
			wantName: "Dewi",
		},
		{
			name:   "success: explicit role is kept",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req: &model.SyncUserRequest{
				ID:   "auth0|adm",
				Name: "Raka",
				Role: constant.RoleAdmin,
			},
			mockCall: func(f fields) {
				f.userRepo.On("FindOrCreate", mock.Anything, mock.MatchedBy(func(data *model.UserEntity) bool {
					return data.Role == constant.RoleAdmin
				})).Return(&model.UserEntity{ID: "auth0|adm", Name: "Raka", Role: constant.RoleAdmin}, nil).Once()
			},
			wantName: "Raka",
		},
		{
			name:    "error: missing name",
			fields:  fields{userRepo: usermocks.NewUserRepository(t)},
			req:     &model.SyncUserRequest{ID: "auth0|abc"},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: repository failure",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req: &model.SyncUserRequest{
				ID:   "auth0|abc",
				Name: "Dewi",
			},
			mockCall: func(f fields) {
				f.userRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return(nil, errors.New("db gone")).Once()
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
			app := appuser.NewUserApp(tt.fields.userRepo)

			got, err := app.SyncUser(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SyncUser() error = %v, wantErr %v", err, tt.wantErr)
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

			if got.Name != tt.wantName {
				t.Fatalf("SyncUser() Name = %s, want %s", got.Name, tt.wantName)
			}
		})
	}
}

func TestUserApp_GetUser(t *testing.T) {
	type fields struct {
		userRepo *usermocks.UserRepository
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
			name:   "success: user found",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			id:     "auth0|abc",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").
					Return(&model.UserEntity{ID: "auth0|abc", Name: "Dewi"}, nil).Once()
			},
		},
		{
			name:   "error: user not found",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			id:     "auth0|nobody",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|nobody").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUserNotFound,
		},
		{
			name:   "error: repository failure",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			id:     "auth0|abc",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, "auth0|abc").Return(nil, errors.New("db gone")).Once()
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
			app := appuser.NewUserApp(tt.fields.userRepo)

			got, err := app.GetUser(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetUser() error = %v, wantErr %v", err, tt.wantErr)
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
				t.Fatalf("GetUser() ID = %s, want %s", got.ID, tt.id)
			}
		})
	}
}
