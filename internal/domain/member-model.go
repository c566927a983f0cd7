package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const RoleUser = "USER"

// Field identifiers for uniqueness checks and conflict reporting.
const (
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldNickname    = "nickname"
)

// Member is unique on email, phone number and nickname among active rows
// only; the indexes are partial so a soft-deleted member frees its values
// for reuse immediately.
type Member struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Email       string                      `gorm:"size:100;not null;uniqueIndex:uidx_members_email,where:deleted_at IS NULL" json:"email"`
	PhoneNumber string                      `gorm:"size:20;not null;uniqueIndex:uidx_members_phone_number,where:deleted_at IS NULL" json:"phone_number"`
	Nickname    string                      `gorm:"size:30;not null;uniqueIndex:uidx_members_nickname,where:deleted_at IS NULL" json:"nickname"`
	Password    string                      `gorm:"not null" json:"-"`
	Roles       datatypes.JSONSlice[string] `gorm:"not null" json:"roles"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (*Member) TableName() string {
	return "members"
}

// IsActive reports whether the member has not been soft-deleted.
func (m *Member) IsActive() bool {
	return !m.DeletedAt.Valid
}
