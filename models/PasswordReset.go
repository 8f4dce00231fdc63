package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordReset is a one-shot reset token mailed to the user. Tokens are
// single use and expire after an hour.
type PasswordReset struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Email     string    `gorm:"size:100;not null;index" json:"email"`
	Token     string    `gorm:"size:255;not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

const resetTokenTTL = time.Hour

func (pr *PasswordReset) CreateForEmail(db *gorm.DB, email string) (*PasswordReset, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// A fresh request supersedes any outstanding token for this address.
	if err := db.Where("email = ?", email).Delete(&PasswordReset{}).Error; err != nil {
		return nil, err
	}

	reset := PasswordReset{
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := db.Create(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

func (pr *PasswordReset) FindValidToken(db *gorm.DB, token string) (*PasswordReset, error) {
	var reset PasswordReset
	err := db.Where("token = ?", token).Take(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}
	if time.Now().After(reset.ExpiresAt) {
		return nil, ErrResetTokenInvalid
	}
	return &reset, nil
}

func (pr *PasswordReset) Consume(db *gorm.DB) error {
	return db.Where("id = ?", pr.ID).Delete(&PasswordReset{}).Error
}
