package repository

import (
	"context"

	"github.com/groupshare/backend/internal/models"
	"gorm.io/gorm"
)

type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) WithTx(tx *gorm.DB) *InviteRepository {
	return &InviteRepository{db: tx}
}

func (r *InviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	return Translate(r.db.WithContext(ctx).Create(invite).Error)
}

func (r *InviteRepository) GetByGroupID(ctx context.Context, groupID string) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.WithContext(ctx).First(&invite, "group_id = ?", groupID).Error; err != nil {
		return nil, Translate(err)
	}
	return &invite, nil
}

func (r *InviteRepository) GetByCode(ctx context.Context, code string) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.WithContext(ctx).First(&invite, "invite_code = ?", code).Error; err != nil {
		return nil, Translate(err)
	}
	return &invite, nil
}
