package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	"github.com/kartanikah/wedding-commerce/utils/errors"
	validatorx "github.com/kartanikah/wedding-commerce/utils/validator"
)

// CreateTransaction handler
// @Summary Create payment transaction
// @Description Open a hosted payment session and persist the order
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body model.CreateTransactionRequest true "Transaction Request"
// @Success 201 {object} model.CreateTransactionResponse
// @Failure 400 {object} errors.CustomError
// @Failure 404 {object} errors.CustomError
// @Router /payment/transactions [post]
func (s *RestHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PaymentApp.CreateTransaction(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, res)
}

// PaymentNotification handler
// @Summary Payment gateway webhook
// @Description Verify and apply an asynchronous payment notification
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} model.OrderEntity
// @Failure 400 {object} errors.CustomError
// @Failure 404 {object} errors.CustomError
// @Router /payment/notification [post]
func (s *RestHandler) PaymentNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload model.PaymentNotification
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PaymentApp.HandleNotification(ctx, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// TransactionStatus handler
// @Summary Query transaction status
// @Description Live gateway status next to the local order
// @Tags Payment
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} model.TransactionStatusResponse
// @Failure 404 {object} errors.CustomError
// @Router /payment/transactions/{orderId}/status [get]
func (s *RestHandler) TransactionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := mux.Vars(r)["orderId"]

	res, err := s.PaymentApp.GetTransactionStatus(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ExpireOrder handler (internal)
func (s *RestHandler) ExpireOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := mux.Vars(r)["id"]

	if err := s.PaymentApp.ExpireOrder(ctx, orderID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]string{"order_id": orderID})
}
