package models

import "time"

// InviteCreatedBySystem marks invites issued automatically while creating a
// group, before any membership row exists to point at.
const InviteCreatedBySystem = "creator"

type Invite struct {
	ID         string    `json:"id" gorm:"type:varchar(40);primaryKey"`
	GroupID    string    `json:"groupID" gorm:"type:varchar(40);not null;index"`
	InviteCode string    `json:"inviteCode" gorm:"type:varchar(64);uniqueIndex;not null"`
	CreatedBy  string    `json:"createdBy" gorm:"type:varchar(100);not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`

	Group Group `json:"-" gorm:"foreignKey:GroupID"`
}

func (Invite) TableName() string {
	return "invites"
}
