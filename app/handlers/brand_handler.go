package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/mechstore/go-mechstore/app/services"
)

type BrandHandler struct {
	render   *render.Render
	products *services.ProductService
	validate *validator.Validate
}

func NewBrandHandler(rnd *render.Render, products *services.ProductService, validate *validator.Validate) *BrandHandler {
	return &BrandHandler{render: rnd, products: products, validate: validate}
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.products.ListBrands(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]any{"brands": brands})
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBrandInput
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

	brand, err := h.products.CreateBrand(r.Context(), input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, brand)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(h.render, w)
		return
	}

	if err := h.products.DeleteBrand(r.Context(), id); err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "brand deleted"})
}
