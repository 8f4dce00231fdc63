package controllers

import "time"

type UserDTO struct {
	ID         uint      `json:"id"`
	PublicID   string    `json:"public_id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio"`
	AvatarPath string    `json:"avatar_path"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserSummaryDTO struct {
	ID         uint   `json:"id"`
	PublicID   string `json:"public_id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	AvatarPath string `json:"avatar_path"`
}

type ProfileDTO struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	AvatarPath     string `json:"avatar_path"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	IsFollowing    bool   `json:"is_following"`
}

type PostDTO struct {
	ID             uint      `json:"id"`
	PublicID       string    `json:"public_id"`
	Caption        string    `json:"caption"`
	ImagePath      string    `json:"image_path"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	AuthorAvatar   string    `json:"author_avatar"`
	LikeCount      int64     `json:"like_count"`
	SaveCount      int64     `json:"save_count"`
	UserHasLiked   bool      `json:"user_has_liked"`
	UserHasSaved   bool      `json:"user_has_saved"`
	CreatedAt      time.Time `json:"created_at"`
}
