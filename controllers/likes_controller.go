package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"pawsgram/models"
	"pawsgram/utils/formaterror"
	"pawsgram/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// LikePost godoc
// @Summary      Like a post
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  SimpleMessageResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /posts/{id}/like [post]
// @Security     BearerAuth
func (server *Server) LikePost(c *gin.Context) {
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

	like := models.Like{UserID: uid, PostID: uint(pid)}
	if _, err := like.SaveLike(server.DB); err != nil {
		if errors.Is(err, models.ErrAlreadyLiked) || formaterror.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"status": http.StatusConflict,
				"error":  "You have already liked this post",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while liking post",
		})
		return
	}
	invalidateFeedCache()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Post liked successfully",
	})
}

// UnlikePost godoc
// @Summary      Unlike a post
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  SimpleMessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/like [delete]
// @Security     BearerAuth
func (server *Server) UnlikePost(c *gin.Context) {
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

	like := models.Like{}
	if err := like.DeleteLike(server.DB, uid, uint(pid)); err != nil {
		if errors.Is(err, models.ErrLikeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "Like not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while unliking post",
		})
		return
	}
	invalidateFeedCache()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Post unliked successfully",
	})
}
