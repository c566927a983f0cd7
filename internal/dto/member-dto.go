package dto

type MemberSignUpInfo struct {
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Nickname    string `json:"nickname" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

// MemberModifyInfo carries the two fields the write path may change.
// Email and password are managed elsewhere.
type MemberModifyInfo struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Nickname    string `json:"nickname" validate:"required"`
}
