package transport

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	"github.com/kartanikah/wedding-commerce/utils/errors"
)

const maxUploadMemory = 32 << 20

// CreateOrder handler
// @Summary Create order
// @Description Create an order with one or more uploaded images
// @Tags Orders
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} model.OrderEntity
// @Failure 400 {object} errors.CustomError
// @Failure 404 {object} errors.CustomError
// @Router /orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "expected multipart form"))
		return
	}

	req := &model.CreateOrderRequest{
		ID:     r.FormValue("order_id"),
		UserID: r.FormValue("user_id"),
	}
	if v := r.FormValue("product_id"); v != "" {
		productID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "product_id must be numeric"))
			return
		}
		req.ProductID = productID
	}
	if v := r.FormValue("wedding_info"); v != "" {
		if err := json.Unmarshal([]byte(v), &req.WeddingInfo); err != nil {
			writeError(w, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "wedding_info must be a JSON object"))
			return
		}
	}
	if v := r.FormValue("snap_token"); v != "" {
		req.SnapToken = &v
	}

	images, closeFiles, err := openUploads(r.MultipartForm.File["images"])
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	defer closeFiles()
	req.Images = images

	res, err := s.OrderApp.CreateOrder(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, res)
}

// ListOrders handler
// @Summary List orders
// @Description List orders, optionally filtered by user id and status
// @Tags Orders
// @Produce json
// @Param userId query string false "Filter by user id"
// @Param status query string false "Filter by status"
// @Success 200 {array} model.OrderEntity
// @Router /orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := &model.OrderFilter{
		UserID: r.URL.Query().Get("userId"),
		Status: constant.OrderStatus(r.URL.Query().Get("status")),
	}

	res, err := s.OrderApp.ListOrders(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order
// @Tags Orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} model.OrderEntity
// @Failure 404 {object} errors.CustomError
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	res, err := s.OrderApp.GetOrder(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListUserOrders handler
// @Summary List a user's orders
// @Tags Orders
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {array} model.OrderEntity
// @Failure 404 {object} errors.CustomError
// @Router /orders/user/{userId} [get]
func (s *RestHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userId"]

	res, err := s.OrderApp.ListUserOrders(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateOrder handler
// @Summary Update order
// @Description Update status, wedding info and/or snap token
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} model.OrderEntity
// @Failure 404 {object} errors.CustomError
// @Router /orders/{id} [put]
func (s *RestHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req model.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.UpdateOrder(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteOrder handler
// @Summary Delete order
// @Tags Orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200
// @Failure 404 {object} errors.CustomError
// @Router /orders/{id} [delete]
func (s *RestHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := s.OrderApp.DeleteOrder(ctx, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]string{"deleted": id})
}

// openUploads converts multipart file headers into ImageUpload values
// and returns a closer for the opened files.
func openUploads(headers []*multipart.FileHeader) ([]model.ImageUpload, func(), error) {
	uploads := make([]model.ImageUpload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))

	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, file)
		uploads = append(uploads, model.ImageUpload{
			Content:     file,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Filename:    fh.Filename,
		})
	}
	return uploads, closeAll, nil
}
