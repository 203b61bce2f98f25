package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/mechstore/go-mechstore/app/repositories"
)

type SeoHandler struct {
	baseURL    string
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
}

func NewSeoHandler(baseURL string, products repositories.ProductRepositoryImpl, categories repositories.CategoryRepositoryImpl) *SeoHandler {
	return &SeoHandler{baseURL: baseURL, products: products, categories: categories}
}

// Sitemap renders sitemap.xml over the static pages, products and
// categories.
func (h *SeoHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.products.GetAll(ctx)
	if err != nil {
		zlog.Error().Err(err).Msg("sitemap: failed to list products")
		http.Error(w, "failed to build sitemap", http.StatusInternalServerError)
		return
	}
	categories, err := h.categories.GetAll(ctx)
	if err != nil {
		zlog.Error().Err(err).Msg("sitemap: failed to list categories")
		http.Error(w, "failed to build sitemap", http.StatusInternalServerError)
		return
	}

	today := time.Now().Format("2006-01-02")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	for _, page := range []string{"", "/products", "/promotions", "/contact"} {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s%s</loc>\n    <changefreq>daily</changefreq>\n    <priority>0.8</priority>\n  </url>\n", h.baseURL, page)
	}
	for _, p := range products {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s/product/%s</loc>\n    <lastmod>%s</lastmod>\n    <changefreq>weekly</changefreq>\n    <priority>0.9</priority>\n  </url>\n", h.baseURL, p.Slug, today)
	}
	for _, c := range categories {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s/products?category_id=%d</loc>\n    <changefreq>weekly</changefreq>\n    <priority>0.7</priority>\n  </url>\n", h.baseURL, c.ID)
	}
	b.WriteString("</urlset>")

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(b.String()))
}
