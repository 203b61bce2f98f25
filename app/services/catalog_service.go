package services

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mechstore/go-mechstore/app/apperrors"
	"github.com/mechstore/go-mechstore/app/models"
	"github.com/mechstore/go-mechstore/app/repositories"
)

// CatalogService owns the category tree: slug-unique creation, parent
// integrity, cycle refusal, cascading subtree deletion and both tree
// renderings (nested and flat) with per-node direct product counts.
type CatalogService struct {
	db         *gorm.DB
	categories repositories.CategoryRepositoryImpl
}

func NewCatalogService(db *gorm.DB, categories repositories.CategoryRepositoryImpl) *CatalogService {
	return &CatalogService{db: db, categories: categories}
}

type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ParentID    *uint  `json:"parent_id"`
}

// UpdateCategoryInput carries partial fields: a nil pointer means "leave the
// stored value alone", which is different from setting a field to empty.
type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	ParentID    *uint   `json:"parent_id"`
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	if strings.TrimSpace(in.Name) == "" || in.Slug == "" {
		return nil, apperrors.Validation("name and slug are required")
	}

	if err := s.checkParent(ctx, in.ParentID, 0); err != nil {
		return nil, err
	}

	existing, err := s.categories.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, apperrors.Store("failed to check category slug", err)
	}
	if existing != nil {
		return nil, apperrors.Duplicate("category with slug %q already exists", in.Slug)
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ParentID:    in.ParentID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, apperrors.Duplicate("category with slug %q already exists", in.Slug)
		}
		return nil, apperrors.Store("failed to create category", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store("failed to load category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("category %d not found", id)
	}

	if in.Slug != nil && *in.Slug != category.Slug {
		existing, err := s.categories.GetBySlug(ctx, *in.Slug)
		if err != nil {
			return nil, apperrors.Store("failed to check category slug", err)
		}
		if existing != nil {
			return nil, apperrors.Duplicate("category with slug %q already exists", *in.Slug)
		}
		category.Slug = *in.Slug
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.ImageURL != nil {
		category.ImageURL = *in.ImageURL
	}
	if in.ParentID != nil {
		if err := s.checkParent(ctx, in.ParentID, id); err != nil {
			return nil, err
		}
		category.ParentID = in.ParentID
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, apperrors.Duplicate("category with slug %q already exists", category.Slug)
		}
		return nil, apperrors.Store("failed to update category", err)
	}
	return category, nil
}

// checkParent validates a requested parent id: the 0 sentinel is rejected
// outright, the parent must exist, and (when reparenting selfID) the parent
// may not be the category itself or anything below it.
func (s *CatalogService) checkParent(ctx context.Context, parentID *uint, selfID uint) error {
	if parentID == nil {
		return nil
	}
	if *parentID == 0 {
		return apperrors.InvalidReference("parent id cannot be 0, use null for root categories")
	}
	parent, err := s.categories.GetByID(ctx, *parentID)
	if err != nil {
		return apperrors.Store("failed to load parent category", err)
	}
	if parent == nil {
		return apperrors.InvalidReference("parent category %d does not exist", *parentID)
	}
	if selfID == 0 {
		return nil
	}
	if *parentID == selfID {
		return apperrors.Validation("category cannot be its own parent")
	}

	// Walk from the proposed parent up to the root; meeting selfID on the
	// way means the parent lives inside selfID's subtree.
	cursor := parent
	for cursor.ParentID != nil {
		if *cursor.ParentID == selfID {
			return apperrors.Validation("category cannot be moved under its own descendant")
		}
		cursor, err = s.categories.GetByID(ctx, *cursor.ParentID)
		if err != nil {
			return apperrors.Store("failed to walk category ancestors", err)
		}
		if cursor == nil {
			break
		}
	}
	return nil
}

// DeleteCategory removes a category and its entire subtree in one
// transaction. Deletion is refused while any category in the subtree still
// has products, so no product is ever left pointing at a dead category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store("failed to load category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("category %d not found", id)
	}

	subtree, err := s.collectSubtree(ctx, id)
	if err != nil {
		return nil, err
	}

	inUse, err := s.categories.CountProductsIn(ctx, subtree)
	if err != nil {
		return nil, apperrors.Store("failed to count products in subtree", err)
	}
	if inUse > 0 {
		return nil, apperrors.Validation("category %d cannot be deleted: %d products reference its subtree", id, inUse)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.categories.DeleteMany(ctx, tx, subtree)
	})
	if err != nil {
		return nil, apperrors.Store("failed to delete category subtree", err)
	}

	zlog.Info().Uint("category_id", id).Int("subtree_size", len(subtree)).Msg("category subtree deleted")
	return category, nil
}

// collectSubtree returns id plus every transitive descendant, children
// before parents (post-order), resolved from a single flat read.
func (s *CatalogService) collectSubtree(ctx context.Context, id uint) ([]uint, error) {
	all, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store("failed to list categories", err)
	}

	childIndex := make(map[uint][]uint, len(all))
	for _, c := range all {
		if c.ParentID != nil {
			childIndex[*c.ParentID] = append(childIndex[*c.ParentID], c.ID)
		}
	}

	var ids []uint
	var walk func(uint)
	walk = func(current uint) {
		for _, child := range childIndex[current] {
			walk(child)
		}
		ids = append(ids, current)
	}
	walk(id)
	return ids, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store("failed to load category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("category %d not found", id)
	}
	return category, nil
}

// ListTree returns the root categories with nested children, every node
// carrying its direct product count. Counts come from one aggregate pass;
// they are per-node, not rolled up across descendants.
func (s *CatalogService) ListTree(ctx context.Context) ([]*models.CategoryNode, error) {
	all, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store("failed to list categories", err)
	}
	counts, err := s.categories.DirectProductCounts(ctx)
	if err != nil {
		return nil, apperrors.Store("failed to count products", err)
	}

	nodes := make(map[uint]*models.CategoryNode, len(all))
	for _, c := range all {
		nodes[c.ID] = &models.CategoryNode{Category: c, Children: []*models.CategoryNode{}}
	}

	roots := []*models.CategoryNode{}
	for _, c := range all {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	var assign func(*models.CategoryNode)
	assign = func(node *models.CategoryNode) {
		node.ProductCount = counts[node.ID]
		for _, child := range node.Children {
			assign(child)
		}
	}
	for _, root := range roots {
		assign(root)
	}
	return roots, nil
}

// ListFlat returns every category annotated with its direct product count,
// parent ids retained so clients can rebuild the tree themselves.
func (s *CatalogService) ListFlat(ctx context.Context) ([]models.CategoryNode, error) {
	all, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store("failed to list categories", err)
	}
	counts, err := s.categories.DirectProductCounts(ctx)
	if err != nil {
		return nil, apperrors.Store("failed to count products", err)
	}

	flat := make([]models.CategoryNode, 0, len(all))
	for _, c := range all {
		flat = append(flat, models.CategoryNode{
			Category:     c,
			Children:     []*models.CategoryNode{},
			ProductCount: counts[c.ID],
		})
	}
	return flat, nil
}
