package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Follow struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

var (
	ErrAlreadyFollowing = errors.New("already following")
	ErrFollowNotFound   = errors.New("follow not found")
	ErrSelfFollow       = errors.New("cannot follow yourself")
)

func (f *Follow) SaveFollow(db *gorm.DB) (*Follow, error) {
	if f.FollowerID == f.FollowedID {
		return nil, ErrSelfFollow
	}
	err := db.Where("follower_id = ? AND followed_id = ?", f.FollowerID, f.FollowedID).Take(&Follow{}).Error
	if err == nil {
		return nil, ErrAlreadyFollowing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := db.Create(&f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Follow) DeleteFollow(db *gorm.DB, followerID, followedID uint) error {
	result := db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// FollowersOf lists the users following userID.
func (f *Follow) FollowersOf(db *gorm.DB, userID uint) ([]User, error) {
	users := []User{}
	err := db.Table("users").
		Select("users.id, users.public_id, users.name, users.username, users.avatar_path").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FollowingOf lists the users userID is following.
func (f *Follow) FollowingOf(db *gorm.DB, userID uint) ([]User, error) {
	users := []User{}
	err := db.Table("users").
		Select("users.id, users.public_id, users.name, users.username, users.avatar_path").
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (f *Follow) CountFollowers(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

func (f *Follow) CountFollowing(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (f *Follow) IsFollowing(db *gorm.DB, followerID, followedID uint) (bool, error) {
	if followerID == 0 {
		return false, nil
	}
	var count int64
	err := db.Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}
