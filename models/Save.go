package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Save struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saves_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_saves_user_post" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

var (
	ErrAlreadySaved = errors.New("already saved")
	ErrSaveNotFound = errors.New("save not found")
)

func (s *Save) SaveSave(db *gorm.DB) (*Save, error) {
	err := db.Where("post_id = ? AND user_id = ?", s.PostID, s.UserID).Take(&Save{}).Error
	if err == nil {
		return nil, ErrAlreadySaved
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := db.Create(&s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Save) DeleteSave(db *gorm.DB, userID, postID uint) error {
	result := db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&Save{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaveNotFound
	}
	return nil
}
