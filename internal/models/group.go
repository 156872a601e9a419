package models

import "time"

type Group struct {
	ID          string    `json:"id" gorm:"type:varchar(40);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(150);not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`

	Invites     []Invite     `json:"-" gorm:"foreignKey:GroupID"`
	Memberships []Membership `json:"-" gorm:"foreignKey:GroupID"`
}

func (Group) TableName() string {
	return "groups"
}
