package models

import (
	"errors"
	"html"
	"strings"
	"time"

	"github.com/twinj/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID  string    `gorm:"type:uuid;uniqueIndex;column:public_id" json:"public_id"`
	Caption   string    `gorm:"size:2048;not null" json:"caption"`
	ImagePath string    `gorm:"size:255;not null" json:"image_path"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

var ErrPostNotFound = errors.New("post not found")

// FeedRow is one feed entry: a post joined with its author plus engagement
// counts. Viewer columns are raw counts so the same scan works on sqlite
// and postgres; the mapper turns them into booleans.
type FeedRow struct {
	ID             uint      `gorm:"column:id"`
	PublicID       string    `gorm:"column:public_id"`
	Caption        string    `gorm:"column:caption"`
	ImagePath      string    `gorm:"column:image_path"`
	AuthorID       uint      `gorm:"column:author_id"`
	AuthorUsername string    `gorm:"column:author_username"`
	AuthorAvatar   string    `gorm:"column:author_avatar"`
	LikeCount      int64     `gorm:"column:like_count"`
	SaveCount      int64     `gorm:"column:save_count"`
	ViewerLiked    int64     `gorm:"column:viewer_liked"`
	ViewerSaved    int64     `gorm:"column:viewer_saved"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

const feedColumns = `
	posts.id, posts.public_id, posts.caption, posts.image_path, posts.author_id, posts.created_at,
	users.username AS author_username, users.avatar_path AS author_avatar,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count,
	(SELECT COUNT(*) FROM saves WHERE saves.post_id = posts.id) AS save_count,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS viewer_liked,
	(SELECT COUNT(*) FROM saves WHERE saves.post_id = posts.id AND saves.user_id = ?) AS viewer_saved`

func (p *Post) Prepare() {
	p.Caption = html.EscapeString(strings.TrimSpace(p.Caption))
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(p.PublicID) == "" {
		p.PublicID = uuid.NewV4().String()
	}
	return nil
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)
	if p.Caption == "" {
		errorMessages["Required_caption"] = "Required Caption"
	}
	if p.ImagePath == "" {
		errorMessages["Required_image"] = "Image file is required"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Required Author"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	err := db.Create(&p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	err := db.Where("id = ?", pid).Take(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FeedPosts returns every post newest-first, annotated for the optional
// viewer. viewerID zero means no viewer; the correlated checks then match
// nothing, which is exactly the anonymous shape.
func (p *Post) FeedPosts(db *gorm.DB, viewerID uint) ([]FeedRow, error) {
	rows := []FeedRow{}
	err := db.Raw(`SELECT `+feedColumns+`
		FROM posts
		JOIN users ON users.id = posts.author_id
		ORDER BY posts.created_at DESC, posts.id DESC`,
		viewerID, viewerID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *Post) FeedPostByID(db *gorm.DB, pid uint, viewerID uint) (*FeedRow, error) {
	var row FeedRow
	result := db.Raw(`SELECT `+feedColumns+`
		FROM posts
		JOIN users ON users.id = posts.author_id
		WHERE posts.id = ?`,
		viewerID, viewerID, pid,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return &row, nil
}

func (p *Post) FeedPostsByAuthor(db *gorm.DB, authorID uint, viewerID uint) ([]FeedRow, error) {
	rows := []FeedRow{}
	err := db.Raw(`SELECT `+feedColumns+`
		FROM posts
		JOIN users ON users.id = posts.author_id
		WHERE posts.author_id = ?
		ORDER BY posts.created_at DESC, posts.id DESC`,
		viewerID, viewerID, authorID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SavedFeedPosts lists the posts a user has saved, newest save first.
func (p *Post) SavedFeedPosts(db *gorm.DB, userID uint) ([]FeedRow, error) {
	rows := []FeedRow{}
	err := db.Raw(`SELECT `+feedColumns+`
		FROM posts
		JOIN users ON users.id = posts.author_id
		JOIN saves viewer_saves ON viewer_saves.post_id = posts.id AND viewer_saves.user_id = ?
		ORDER BY viewer_saves.created_at DESC, viewer_saves.id DESC`,
		userID, userID, userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeletePost removes the post together with its likes and saves in one
// transaction, so a deleted post never leaves dangling join rows behind.
func (p *Post) DeletePost(db *gorm.DB, pid uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", pid).Delete(&Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", pid).Delete(&Save{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", pid).Delete(&Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}
