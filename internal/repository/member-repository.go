package repository

import (
	"errors"
	"log"

	"github.com/hyeonlab/member_service/internal/domain"
	"gorm.io/gorm"
)

type MemberRepository interface {
	CreateMember(member *domain.Member) (*domain.Member, error)
	FindMemberByEmail(email string) (*domain.Member, error)
	CountByEmail(email string) (int64, error)
	CountByPhoneNumber(phoneNumber string) (int64, error)
	CountByNickname(nickname string) (int64, error)
	UpdateMemberFields(memberID uint, phoneNumber, nickname string) (*domain.Member, error)
	SoftDeleteMember(memberID uint) (*domain.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// CreateMember inserts a new active member and reloads it inside the same
// transaction, so the returned row carries the store-assigned id and
// timestamps exactly as committed.
func (r *memberRepository) CreateMember(member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, errors.New("nil member")
	}

	saved := &domain.Member{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Where("email = ?", member.Email).First(saved).Error
	})
	if err != nil {
		if dup := asDuplicateKey(err); dup != nil {
			return nil, dup
		}
		log.Printf("create member error: %v", err)
		return nil, err
	}

	return saved, nil
}

func (r *memberRepository) FindMemberByEmail(email string) (*domain.Member, error) {
	member := &domain.Member{}

	if err := r.db.Where("email = ?", email).First(member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find member by email error: %v", err)
		return nil, err
	}

	return member, nil
}

// The count queries ride on GORM's soft-delete scope, so only rows with a
// null deleted_at are counted.

func (r *memberRepository) CountByEmail(email string) (int64, error) {
	return r.countWhere("email = ?", email)
}

func (r *memberRepository) CountByPhoneNumber(phoneNumber string) (int64, error) {
	return r.countWhere("phone_number = ?", phoneNumber)
}

func (r *memberRepository) CountByNickname(nickname string) (int64, error) {
	return r.countWhere("nickname = ?", nickname)
}

func (r *memberRepository) countWhere(query string, value string) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Member{}).Where(query, value).Count(&count).Error; err != nil {
		log.Printf("count members error: %v", err)
		return 0, err
	}
	return count, nil
}

// UpdateMemberFields updates the two mutable fields on an active member and
// reloads the row in the same transaction. A missing or soft-deleted member
// yields ErrNotFound.
func (r *memberRepository) UpdateMemberFields(memberID uint, phoneNumber, nickname string) (*domain.Member, error) {
	updated := &domain.Member{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Member{}).Where("id = ?", memberID).Updates(map[string]interface{}{
			"phone_number": phoneNumber,
			"nickname":     nickname,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(updated, memberID).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		if dup := asDuplicateKey(err); dup != nil {
			return nil, dup
		}
		log.Printf("update member %d error: %v", memberID, err)
		return nil, err
	}

	return updated, nil
}

// SoftDeleteMember marks an active member deleted and reloads the row
// unscoped so the caller sees the assigned deletion timestamp. Deleting an
// already-inactive member yields ErrNotFound.
func (r *memberRepository) SoftDeleteMember(memberID uint) (*domain.Member, error) {
	deleted := &domain.Member{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Member{}, memberID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Unscoped().First(deleted, memberID).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("soft delete member %d error: %v", memberID, err)
		return nil, err
	}

	return deleted, nil
}
