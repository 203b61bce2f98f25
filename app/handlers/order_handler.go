package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/mechstore/go-mechstore/app/models"
	"github.com/mechstore/go-mechstore/app/services"
)

type OrderHandler struct {
	render   *render.Render
	orders   *services.OrderService
	validate *validator.Validate
}

func NewOrderHandler(rnd *render.Render, orders *services.OrderService, validate *validator.Validate) *OrderHandler {
	return &OrderHandler{render: rnd, orders: orders, validate: validate}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderInput
	if !decodeJSON(h.render, w, r, &input) {
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(h.render, w, errs)
			return
		}
		writeError(h.render, w, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var input services.CreateInquiryInput
	if !decodeJSON(h.render, w, r, &input) {
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(h.render, w, errs)
			return
		}
		writeError(h.render, w, err)
		return
	}

	inquiry, err := h.orders.CreateInquiry(r.Context(), input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, inquiry)
}

func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(h.render, w)
		return
	}

	var input struct {
		Status models.OrderStatus `json:"status" validate:"required"`
	}
	if !decodeJSON(h.render, w, r, &input) {
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(h.render, w, errs)
			return
		}
		writeError(h.render, w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}
