package models

import "time"

type MembershipRole string

const (
	RoleCreator MembershipRole = "creator"
	RoleMember  MembershipRole = "member"
)

// ValidRole reports whether the value belongs to the closed role set. The
// role column is free text at the store level, so writes are checked here
// and reads fail closed in the permission derivation.
func ValidRole(role MembershipRole) bool {
	switch role {
	case RoleCreator, RoleMember:
		return true
	default:
		return false
	}
}

type Membership struct {
	GroupID   string         `json:"groupID" gorm:"type:varchar(40);primaryKey"`
	DeviceID  string         `json:"deviceID" gorm:"type:varchar(100);primaryKey"`
	Role      MembershipRole `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time      `json:"createdAt" gorm:"not null;autoCreateTime"`

	Group Group `json:"-" gorm:"foreignKey:GroupID"`
}

func (Membership) TableName() string {
	return "members"
}
