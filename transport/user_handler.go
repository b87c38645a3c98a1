package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	utilsContext "github.com/kartanikah/wedding-commerce/utils/context"
	"github.com/kartanikah/wedding-commerce/utils/errors"
	validatorx "github.com/kartanikah/wedding-commerce/utils/validator"
)

// SyncUser handler
// @Summary Sync user identity
// @Description Mirror the authenticated identity into the local store
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.SyncUserRequest true "Sync Request"
// @Success 200 {object} model.UserEntity
// @Failure 400 {object} errors.CustomError
// @Router /users/sync [post]
func (s *RestHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SyncUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	// the subject always comes from the verified token
	subject, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	req.ID = subject

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.SyncUser(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetUser handler
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} model.UserEntity
// @Failure 404 {object} errors.CustomError
// @Router /users/{id} [get]
func (s *RestHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	res, err := s.UserApp.GetUser(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
