package helper

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// IsDuplicatedCount interprets an active-member count from the store: any
// positive count means the value is taken.
func IsDuplicatedCount(count int64) bool {
	return count > 0
}

// IsChangeConflicting decides whether a proposed value for a unique field
// conflicts during modification. Keeping the current value is never a
// conflict even though the duplicate count matches the member's own row;
// only a genuinely new value is judged by the count.
func IsChangeConflicting(current, proposed string, duplicated bool) bool {
	if current == proposed {
		return false
	}
	return duplicated
}

func HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}
