package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"pawsgram/models"
	"pawsgram/utils/formaterror"
	"pawsgram/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// SavePost godoc
// @Summary      Save a post
// @Tags         saves
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  SimpleMessageResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /posts/{id}/save [post]
// @Security     BearerAuth
func (server *Server) SavePost(c *gin.Context) {
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
	if _, err := post.FindPostByID(server.DB, uint(pid)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Post not found",
		})
		return
	}

	save := models.Save{UserID: uid, PostID: uint(pid)}
	if _, err := save.SaveSave(server.DB); err != nil {
		if errors.Is(err, models.ErrAlreadySaved) || formaterror.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"status": http.StatusConflict,
				"error":  "You have already saved this post",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while saving post",
		})
		return
	}
	invalidateFeedCache()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Post saved successfully",
	})
}

// UnsavePost godoc
// @Summary      Unsave a post
// @Tags         saves
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  SimpleMessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/save [delete]
// @Security     BearerAuth
func (server *Server) UnsavePost(c *gin.Context) {
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

	save := models.Save{}
	if err := save.DeleteSave(server.DB, uid, uint(pid)); err != nil {
		if errors.Is(err, models.ErrSaveNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "Saved post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while unsaving post",
		})
		return
	}
	invalidateFeedCache()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Post unsaved successfully",
	})
}

// GetSavedPosts godoc
// @Summary      Saved posts
// @Description  Posts the authenticated user has saved, newest save first
// @Tags         saves
// @Produce      json
// @Success      200  {object}  PostListEnvelope
// @Router       /users/saved [get]
// @Security     BearerAuth
func (server *Server) GetSavedPosts(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	post := models.Post{}
	rows, err := post.SavedFeedPosts(server.DB, uid)
	if err != nil {
		log.Printf("saved posts query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while fetching saved posts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": feedRowsToPostDTOs(rows),
	})
}
