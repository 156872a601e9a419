package repository

import (
	"context"
	"fmt"

	"github.com/groupshare/backend/internal/models"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) WithTx(tx *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: tx}
}

// Create inserts the (group, device) pair. The role must belong to the
// closed set; anything else is rejected before reaching the store.
// Re-joining is not idempotent at this level: a duplicate pair surfaces as
// ErrConflict and the caller decides how to present it.
func (r *MembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	if !models.ValidRole(membership.Role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, membership.Role)
	}
	return Translate(r.db.WithContext(ctx).Create(membership).Error)
}

func (r *MembershipRepository) GetRole(ctx context.Context, groupID, deviceID string) (models.MembershipRole, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		First(&membership, "group_id = ? AND device_id = ?", groupID, deviceID).Error
	if err != nil {
		return "", Translate(err)
	}
	return membership.Role, nil
}
