package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// GetProductsByIDs keeps the order of ids and skips ids that no longer exist.
func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var found []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

// UpdateOwnedProduct writes fields only where both id and owner match, so a
// concurrent ownership check cannot go stale between read and write.
func (r *GormRepo) UpdateOwnedProduct(ctx context.Context, id, ownerID uint, fields map[string]any) (*models.Product, error) {
	if len(fields) > 0 {
		res := r.DB.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, r.ownershipMiss(ctx, id)
		}
	}

	prod, err := r.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if prod.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return prod, nil
}

func (r *GormRepo) DeleteOwnedProduct(ctx context.Context, id, ownerID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ownershipMiss(ctx, id)
	}
	return nil
}

// ownershipMiss tells a missing product apart from someone else's.
func (r *GormRepo) ownershipMiss(ctx context.Context, id uint) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrNotOwner
}

func (r *GormRepo) SearchProducts(ctx context.Context, q string, limit int) ([]models.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
