package domain

import "time"

const (
	EventMemberCreated = "member.created"
	EventMemberUpdated = "member.updated"
	EventMemberDeleted = "member.deleted"
)

// MemberEvent is the flat payload written to the broker for every committed
// member change. It is always built from a freshly reloaded row, so
// consumers see store-assigned values, never caller input.
type MemberEvent struct {
	EventType   string   `json:"event_type"`
	MemberID    uint     `json:"member_id"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Nickname    string   `json:"nickname"`
	Password    string   `json:"password"`
	Roles       []string `json:"roles"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	DeletedAt   string   `json:"deleted_at,omitempty"`
}

func NewMemberEvent(eventType string, m *Member) MemberEvent {
	ev := MemberEvent{
		EventType:   eventType,
		MemberID:    m.ID,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Nickname:    m.Nickname,
		Password:    m.Password,
		Roles:       m.Roles,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
	if m.DeletedAt.Valid {
		ev.DeletedAt = m.DeletedAt.Time.Format(time.RFC3339)
	}
	return ev
}
