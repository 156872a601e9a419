package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/groupshare/backend/internal/models"
	"github.com/groupshare/backend/internal/repository"
	"github.com/groupshare/backend/pkg/ident"
	"github.com/groupshare/backend/pkg/logger"
	"gorm.io/gorm"
)

// GroupService orchestrates group creation, invite resolution and
// permission queries. It holds no state of its own; everything lives in the
// store and correctness under concurrency is delegated to its isolation
// guarantees.
type GroupService struct {
	db          *gorm.DB
	groups      *repository.GroupRepository
	invites     *repository.InviteRepository
	memberships *repository.MembershipRepository
	timeout     time.Duration
}

func NewGroupService(db *gorm.DB, storageTimeout time.Duration) *GroupService {
	if storageTimeout <= 0 {
		storageTimeout = 5 * time.Second
	}
	return &GroupService{
		db:          db,
		groups:      repository.NewGroupRepository(db),
		invites:     repository.NewInviteRepository(db),
		memberships: repository.NewMembershipRepository(db),
		timeout:     storageTimeout,
	}
}

// GroupDetail is a group enriched with its invite code. The code is absent
// when the group has no invite, which is a legitimate state, not an error.
type GroupDetail struct {
	models.Group
	InviteCode *string `json:"inviteCode,omitempty"`
}

type MembershipStatus struct {
	IsMember    bool                   `json:"isMember"`
	IsCreator   bool                   `json:"isCreator"`
	Role        *models.MembershipRole `json:"role"`
	Permissions *PermissionSet         `json:"permissions,omitempty"`
}

// CreateGroup creates a group together with its default invite in a single
// transaction, so no observer ever sees a group without its invite. When
// the caller supplied a device id, that device becomes the first member
// with the creator role in the same unit.
func (s *GroupService) CreateGroup(ctx context.Context, name string, description *string, deviceID string) (*GroupDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("name is required")
	}
	deviceID = strings.TrimSpace(deviceID)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	group := models.Group{
		ID:          ident.NewGroupID(),
		Name:        name,
		Description: description,
	}
	invite := models.Invite{
		ID:         ident.NewInviteID(),
		GroupID:    group.ID,
		InviteCode: ident.NewInviteCode(),
		CreatedBy:  models.InviteCreatedBySystem,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.groups.WithTx(tx).Create(ctx, &group); err != nil {
			return err
		}
		if err := s.invites.WithTx(tx).Create(ctx, &invite); err != nil {
			return err
		}
		if deviceID == "" {
			return nil
		}
		membership := models.Membership{
			GroupID:  group.ID,
			DeviceID: deviceID,
			Role:     models.RoleCreator,
		}
		return s.memberships.WithTx(tx).Create(ctx, &membership)
	})
	if err != nil {
		// Begin/commit failures bypass the repositories, so translate here
		// as well; Translate leaves already-mapped errors alone.
		err = repository.Translate(err)
		logger.Error("group_create_failed", err, map[string]interface{}{
			"group_name": name,
		})
		return nil, err
	}

	return &GroupDetail{Group: group, InviteCode: &invite.InviteCode}, nil
}

// GetGroup fetches a group and attaches its invite code when one exists.
func (s *GroupService) GetGroup(ctx context.Context, id string) (*GroupDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &GroupDetail{Group: *group}
	invite, err := s.invites.GetByGroupID(ctx, id)
	switch {
	case err == nil:
		detail.InviteCode = &invite.InviteCode
	case errors.Is(err, repository.ErrNotFound):
		// A group may legitimately have no invite left.
	default:
		return nil, err
	}

	return detail, nil
}

// ListGroups returns all groups newest first, unmodified.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.groups.ListAll(ctx)
}

// QueryPermissions resolves the membership of a device within a group and
// derives its capability set. A device that never joined is a normal
// non-member result, not a failure.
func (s *GroupService) QueryPermissions(ctx context.Context, groupID, deviceID string) (*MembershipStatus, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, validationError("device_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	role, err := s.memberships.GetRole(ctx, groupID, deviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return &MembershipStatus{IsMember: false, IsCreator: false, Role: nil}, nil
	}
	if err != nil {
		return nil, err
	}

	permissions, err := DerivePermissions(role)
	if err != nil {
		logger.Error("permission_derivation_failed", err, map[string]interface{}{
			"group_id": groupID,
			"role":     string(role),
		})
		return nil, err
	}

	return &MembershipStatus{
		IsMember:    true,
		IsCreator:   role == models.RoleCreator,
		Role:        &role,
		Permissions: &permissions,
	}, nil
}

// JoinGroup redeems an invite code for a device, creating a member-role
// membership. Re-joining the same group is rejected with a conflict.
func (s *GroupService) JoinGroup(ctx context.Context, inviteCode, deviceID string) (*models.Membership, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, validationError("invite_code is required")
	}
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, validationError("device_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	invite, err := s.invites.GetByCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	// Reject re-joins up front; the composite primary key backs this up
	// against concurrent redemptions.
	if _, err := s.memberships.GetRole(ctx, invite.GroupID, deviceID); err == nil {
		return nil, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	membership := models.Membership{
		GroupID:  invite.GroupID,
		DeviceID: deviceID,
		Role:     models.RoleMember,
	}
	if err := s.memberships.Create(ctx, &membership); err != nil {
		return nil, err
	}

	return &membership, nil
}
