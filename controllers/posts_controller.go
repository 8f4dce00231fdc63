package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"pawsgram/cache"
	"pawsgram/models"
	"pawsgram/utils/fileformat"
	"pawsgram/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// Uploads above this size are rejected outright.
const maxImageBytes = 5 << 20

// optionalViewerID reads the ?userId= query the feed annotations are
// computed for. Zero means anonymous.
func optionalViewerID(c *gin.Context) uint {
	raw := strings.TrimSpace(c.Query("userId"))
	if raw == "" {
		return 0
	}
	viewerID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(viewerID)
}

// GetPosts godoc
// @Summary      Feed
// @Description  All posts newest-first, annotated for the optional viewer
// @Tags         posts
// @Produce      json
// @Param        userId  query     int  false  "Viewer user ID"
// @Success      200     {object}  PostListEnvelope
// @Router       /posts [get]
func (server *Server) GetPosts(c *gin.Context) {
	viewerID := optionalViewerID(c)

	if cached, err := cache.Get(c.Request.Context(), feedCacheKey(viewerID)); err == nil && cached != "" {
		var posts []PostDTO
		if json.Unmarshal([]byte(cached), &posts) == nil {
			c.JSON(http.StatusOK, gin.H{
				"status":   http.StatusOK,
				"response": posts,
			})
			return
		}
	}

	post := models.Post{}
	rows, err := post.FeedPosts(server.DB, viewerID)
	if err != nil {
		log.Printf("feed query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while fetching posts",
		})
		return
	}

	posts := feedRowsToPostDTOs(rows)
	if payload, err := json.Marshal(posts); err == nil {
		_ = cache.Set(c.Request.Context(), feedCacheKey(viewerID), payload, feedCacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": posts,
	})
}

// GetPost godoc
// @Summary      Get a post
// @Description  One post by id, annotated for the optional viewer
// @Tags         posts
// @Produce      json
// @Param        id      path      int  true   "Post ID"
// @Param        userId  query     int  false  "Viewer user ID"
// @Success      200     {object}  PostEnvelope
// @Failure      404     {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (server *Server) GetPost(c *gin.Context) {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Invalid Request",
		})
		return
	}

	post := models.Post{}
	row, err := post.FeedPostByID(server.DB, uint(pid), optionalViewerID(c))
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "Post not found",
			})
			return
		}
		log.Printf("post query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while fetching post",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": feedRowToPostDTO(*row),
	})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Publish an image post with a caption (multipart)
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        caption  formData  string  true  "Caption"
// @Param        image    formData  file    true  "Image file"
// @Success      201      {object}  PostEnvelope
// @Failure      400      {object}  ErrorResponse
// @Router       /posts [post]
// @Security     BearerAuth
func (server *Server) CreatePost(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	errList = map[string]string{}

	file, err := c.FormFile("image")
	if err != nil {
		errList["Required_image"] = "Image file is required"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}
	if file.Size > maxImageBytes {
		errList["Invalid_image"] = "Image too large (max 5MB)"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Cannot open file",
		})
		return
	}
	defer f.Close()

	buf := make([]byte, file.Size)
	if _, err := f.Read(buf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Could not read file",
		})
		return
	}
	fileType := http.DetectContentType(buf)
	if !strings.HasPrefix(fileType, "image/") {
		errList["Invalid_image"] = "Not an image"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	imagePath, err := server.Storage.Save(c.Request.Context(), fileformat.UniqueFormat(file.Filename), buf, fileType)
	if err != nil {
		log.Printf("image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Failed to store image",
		})
		return
	}

	post := models.Post{
		Caption:   c.PostForm("caption"),
		ImagePath: imagePath,
		AuthorID:  uid,
	}
	post.Prepare()
	errorMessages := post.Validate()
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	postCreated, err := post.SavePost(server.DB)
	if err != nil {
		log.Printf("post insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Database error while creating post",
		})
		return
	}
	invalidateFeedCache()

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": postCreated,
	})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Delete a post you own, along with its likes and saves
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  SimpleMessageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
// @Security     BearerAuth
func (server *Server) DeletePost(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	pid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Invalid Request",
		})
		return
	}

	post := models.Post{}
	found, err := post.FindPostByID(server.DB, uint(pid))
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "Post not found",
			})
			return
		}
		log.Printf("post lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while deleting post",
		})
		return
	}

	if found.AuthorID != uid {
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  "You can only delete your own posts",
		})
		return
	}

	if err := post.DeletePost(server.DB, uint(pid)); err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "Post not found",
			})
			return
		}
		log.Printf("post delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while deleting post",
		})
		return
	}
	invalidateFeedCache()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Post deleted successfully",
	})
}
