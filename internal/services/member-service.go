package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/hyeonlab/member_service/internal/domain"
	"github.com/hyeonlab/member_service/internal/dto"
	"github.com/hyeonlab/member_service/internal/helper"
	"github.com/hyeonlab/member_service/internal/interfaces"
	"github.com/hyeonlab/member_service/internal/repository"
	"gorm.io/datatypes"
)

type MemberService interface {
	// Write path
	SignUp(input dto.MemberSignUpInfo) error
	Modify(email string, input dto.MemberModifyInfo) error
	Delete(email string) error

	// Duplicate checks for the signup flow
	IsDuplicatedEmail(email string) (bool, error)
	IsDuplicatedPhoneNumber(phoneNumber string) (bool, error)
	IsDuplicatedNickname(nickname string) (bool, error)

	// Duplicate checks for the modify flow; keeping the current value is
	// never reported as a duplicate
	IsDuplicatedPhoneNumberInModify(currentPhoneNumber, newPhoneNumber string) (bool, error)
	IsDuplicatedNicknameInModify(currentNickname, newNickname string) (bool, error)
}

type memberService struct {
	repo     repository.MemberRepository
	producer interfaces.ProducerHandler
}

func NewMemberService(repo repository.MemberRepository, producer interfaces.ProducerHandler) MemberService {
	return &memberService{
		repo:     repo,
		producer: producer,
	}
}

// SignUp validates uniqueness field by field (first conflict wins, in the
// order email, phone number, nickname), inserts the member and announces
// the committed row. The pre-insert checks are only a fast path: a
// concurrent signup can slip past them, so a unique-index rejection from
// the store is translated into the same conflict instead of an internal
// error.
func (s *memberService) SignUp(input dto.MemberSignUpInfo) error {
	email := strings.TrimSpace(input.Email)

	if cnt, err := s.repo.CountByEmail(email); err != nil {
		return err
	} else if helper.IsDuplicatedCount(cnt) {
		return &ConflictError{Field: domain.FieldEmail}
	}

	if cnt, err := s.repo.CountByPhoneNumber(input.PhoneNumber); err != nil {
		return err
	} else if helper.IsDuplicatedCount(cnt) {
		return &ConflictError{Field: domain.FieldPhoneNumber}
	}

	if cnt, err := s.repo.CountByNickname(input.Nickname); err != nil {
		return err
	} else if helper.IsDuplicatedCount(cnt) {
		return &ConflictError{Field: domain.FieldNickname}
	}

	hashed, err := helper.HashPassword(input.Password)
	if err != nil {
		return err
	}

	member := &domain.Member{
		Email:       email,
		PhoneNumber: input.PhoneNumber,
		Nickname:    input.Nickname,
		Password:    hashed,
		Roles:       datatypes.NewJSONSlice([]string{domain.RoleUser}),
	}

	saved, err := s.repo.CreateMember(member)
	if err != nil {
		return translateStoreError(err)
	}

	return s.publish(domain.EventMemberCreated, saved)
}

// Modify changes phone number and nickname together. Each field is checked
// independently against its own duplicate count, using the member's current
// value as the self-match baseline; a conflict on either field aborts
// before any mutation.
func (s *memberService) Modify(email string, input dto.MemberModifyInfo) error {
	current, err := s.repo.FindMemberByEmail(email)
	if err != nil {
		return translateStoreError(err)
	}

	phoneCnt, err := s.repo.CountByPhoneNumber(input.PhoneNumber)
	if err != nil {
		return err
	}
	if helper.IsChangeConflicting(current.PhoneNumber, input.PhoneNumber, helper.IsDuplicatedCount(phoneCnt)) {
		return &ConflictError{Field: domain.FieldPhoneNumber}
	}

	nickCnt, err := s.repo.CountByNickname(input.Nickname)
	if err != nil {
		return err
	}
	if helper.IsChangeConflicting(current.Nickname, input.Nickname, helper.IsDuplicatedCount(nickCnt)) {
		return &ConflictError{Field: domain.FieldNickname}
	}

	updated, err := s.repo.UpdateMemberFields(current.ID, input.PhoneNumber, input.Nickname)
	if err != nil {
		return translateStoreError(err)
	}

	return s.publish(domain.EventMemberUpdated, updated)
}

// Delete soft-marks the member and announces the pre-delete snapshot merged
// with the store-assigned deletion timestamp. A second delete misses the
// active-scoped lookup and reports not found.
func (s *memberService) Delete(email string) error {
	current, err := s.repo.FindMemberByEmail(email)
	if err != nil {
		return translateStoreError(err)
	}

	deleted, err := s.repo.SoftDeleteMember(current.ID)
	if err != nil {
		return translateStoreError(err)
	}

	snapshot := *current
	snapshot.DeletedAt = deleted.DeletedAt

	return s.publish(domain.EventMemberDeleted, &snapshot)
}

func (s *memberService) IsDuplicatedEmail(email string) (bool, error) {
	cnt, err := s.repo.CountByEmail(email)
	if err != nil {
		return false, err
	}
	return helper.IsDuplicatedCount(cnt), nil
}

func (s *memberService) IsDuplicatedPhoneNumber(phoneNumber string) (bool, error) {
	cnt, err := s.repo.CountByPhoneNumber(phoneNumber)
	if err != nil {
		return false, err
	}
	return helper.IsDuplicatedCount(cnt), nil
}

func (s *memberService) IsDuplicatedNickname(nickname string) (bool, error) {
	cnt, err := s.repo.CountByNickname(nickname)
	if err != nil {
		return false, err
	}
	return helper.IsDuplicatedCount(cnt), nil
}

func (s *memberService) IsDuplicatedPhoneNumberInModify(currentPhoneNumber, newPhoneNumber string) (bool, error) {
	cnt, err := s.repo.CountByPhoneNumber(newPhoneNumber)
	if err != nil {
		return false, err
	}
	return helper.IsChangeConflicting(currentPhoneNumber, newPhoneNumber, helper.IsDuplicatedCount(cnt)), nil
}

func (s *memberService) IsDuplicatedNicknameInModify(currentNickname, newNickname string) (bool, error) {
	cnt, err := s.repo.CountByNickname(newNickname)
	if err != nil {
		return false, err
	}
	return helper.IsChangeConflicting(currentNickname, newNickname, helper.IsDuplicatedCount(cnt)), nil
}

// publish serializes the reloaded snapshot and hands it to the broker,
// keyed by email so events for one member stay ordered. By the time this
// runs the database write is already committed; a broker failure therefore
// leaves stored and announced state diverged, which is surfaced as
// ErrPublishFailed and logged for reconciliation.
func (s *memberService) publish(eventType string, m *domain.Member) error {
	payload, err := json.Marshal(domain.NewMemberEvent(eventType, m))
	if err != nil {
		return err
	}

	if err := s.producer.PublishMessage([]byte(m.Email), payload); err != nil {
		log.Printf("publish %s for member %d failed after commit: %v", eventType, m.ID, err)
		return ErrPublishFailed
	}

	return nil
}

func translateStoreError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMemberNotFound
	}
	var dup *repository.DuplicateKeyError
	if errors.As(err, &dup) {
		return &ConflictError{Field: dup.Field}
	}
	return err
}
