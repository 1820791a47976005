package repositories

import (
	"context"

	"siports-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// packageRepository implements PackageRepository interface
type packageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

// ListByScope lists active catalog entries for one audience, cheapest first
func (r *packageRepository) ListByScope(ctx context.Context, scope string) ([]*models.Package, error) {
	var packages []*models.Package
	err := r.db.WithContext(ctx).
		Where("scope = ? AND is_active = ?", scope, true).
		Order("price ASC").
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

// GetByID gets a catalog entry by ID
func (r *packageRepository) GetByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetByIDAndScope gets a catalog entry by ID within one scope
func (r *packageRepository) GetByIDAndScope(ctx context.Context, id, scope string) (*models.Package, error) {
	var pkg models.Package
	err := r.db.WithContext(ctx).
		Where("id = ? AND scope = ? AND is_active = ?", id, scope, true).
		First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}
