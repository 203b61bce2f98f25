package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mechstore/go-mechstore/app/repositories"
	"github.com/mechstore/go-mechstore/app/services"
)

type ProductHandler struct {
	render   *render.Render
	products *services.ProductService
	validate *validator.Validate
}

func NewProductHandler(rnd *render.Render, products *services.ProductService, validate *validator.Validate) *ProductHandler {
	return &ProductHandler{render: rnd, products: products, validate: validate}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.ProductFilter{Query: q.Get("q")}
	if raw := q.Get("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := q.Get("brand_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.BrandID = uint(id)
		}
	}
	if raw := q.Get("on_sale"); raw != "" {
		onSale := raw == "true" || raw == "1"
		filter.OnSale = &onSale
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	products, total, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]any{"products": products, "total": total})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProductInput
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

	product, err := h.products.CreateProduct(r.Context(), input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.products.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(h.render, w)
		return
	}

	var input services.UpdateProductInput
	if !decodeJSON(h.render, w, r, &input) {
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(h.render, w)
		return
	}

	product, err := h.products.DeleteProduct(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}
