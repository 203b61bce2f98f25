package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/mechstore/go-mechstore/app/services"
)

type CategoryHandler struct {
	render   *render.Render
	catalog  *services.CatalogService
	validate *validator.Validate
}

func NewCategoryHandler(rnd *render.Render, catalog *services.CatalogService, validate *validator.Validate) *CategoryHandler {
	return &CategoryHandler{render: rnd, catalog: catalog, validate: validate}
}

// List returns the nested category tree with per-node product counts, or the
// flat annotated listing when ?flat=1 is set.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("flat") == "1" {
		flat, err := h.catalog.ListFlat(ctx)
		if err != nil {
			writeError(h.render, w, err)
			return
		}
		_ = h.render.JSON(w, http.StatusOK, map[string]any{"categories": flat})
		return
	}

	tree, err := h.catalog.ListTree(ctx)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]any{"categories": tree})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCategoryInput
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

	category, err := h.catalog.CreateCategory(r.Context(), input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(h.render, w)
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(h.render, w)
		return
	}

	var input services.UpdateCategoryInput
	if !decodeJSON(h.render, w, r, &input) {
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), id, input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(h.render, w)
		return
	}

	category, err := h.catalog.DeleteCategory(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}
