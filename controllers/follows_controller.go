package controllers

import (
	"errors"
	"log"
	"net/http"

	"pawsgram/models"
	"pawsgram/utils/formaterror"
	"pawsgram/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// FollowUser godoc
// @Summary      Follow a user
// @Description  Follow another user as the authenticated user
// @Tags         follows
// @Produce      json
// @Param        username  path      string  true  "User ID or username"
// @Success      200  {object}  SimpleMessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users/{username}/follow [post]
// @Security     BearerAuth
func (server *Server) FollowUser(c *gin.Context) {
	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
		return
	}

	if requestorID == target.ID {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "You cannot follow yourself",
		})
		return
	}

	follow := models.Follow{FollowerID: requestorID, FollowedID: target.ID}
	if _, err := follow.SaveFollow(server.DB); err != nil {
		if errors.Is(err, models.ErrAlreadyFollowing) || formaterror.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"status": http.StatusConflict,
				"error":  "You are already following this user",
			})
			return
		}
		log.Printf("follow insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while following user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "User followed successfully",
	})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Unfollow another user as the authenticated user
// @Tags         follows
// @Produce      json
// @Param        username  path      string  true  "User ID or username"
// @Success      200  {object}  SimpleMessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/follow [delete]
// @Security     BearerAuth
func (server *Server) UnfollowUser(c *gin.Context) {
	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
		return
	}

	follow := models.Follow{}
	if err := follow.DeleteFollow(server.DB, requestorID, target.ID); err != nil {
		if errors.Is(err, models.ErrFollowNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "You are not following this user",
			})
			return
		}
		log.Printf("follow delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while unfollowing user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "User unfollowed successfully",
	})
}

// GetFollowers godoc
// @Summary      List followers
// @Tags         follows
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  UserListEnvelope
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/followers [get]
func (server *Server) GetFollowers(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
		return
	}

	follow := models.Follow{}
	followers, err := follow.FollowersOf(server.DB, target.ID)
	if err != nil {
		log.Printf("followers query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while fetching followers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": usersToSummaries(followers),
	})
}

// GetFollowing godoc
// @Summary      List following
// @Tags         follows
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  UserListEnvelope
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/following [get]
func (server *Server) GetFollowing(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
		return
	}

	follow := models.Follow{}
	following, err := follow.FollowingOf(server.DB, target.ID)
	if err != nil {
		log.Printf("following query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while fetching following",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": usersToSummaries(following),
	})
}
