package repository

import (
	"context"

	"github.com/groupshare/backend/internal/models"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle so a
// service can compose multi-step writes into one atomic unit.
func (r *GroupRepository) WithTx(tx *gorm.DB) *GroupRepository {
	return &GroupRepository{db: tx}
}

func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return Translate(r.db.WithContext(ctx).Create(group).Error)
}

func (r *GroupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, Translate(err)
	}
	return &group, nil
}

// ListAll returns every group newest first. The id tiebreak keeps the order
// stable when two groups share a creation timestamp.
func (r *GroupRepository) ListAll(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&groups).Error
	if err != nil {
		return nil, Translate(err)
	}
	return groups, nil
}
