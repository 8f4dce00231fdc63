package controllers

import (
	"errors"
	"strconv"
	"strings"

	"pawsgram/models"

	"gorm.io/gorm"
)

// resolveUserByIdentifier accepts either a numeric user id or a username.
// Every user route takes one wildcard segment, so both forms land here.
func resolveUserByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if id, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		if err := db.Where("id = ?", uint(id)).First(&user).Error; err == nil {
			return &user, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := db.Where("username = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
