package controllers

import (
	"errors"
	"html"
	"log"
	"net/http"
	"strings"

	"pawsgram/models"
	"pawsgram/utils/fileformat"
	"pawsgram/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// GetProfile godoc
// @Summary      Get a profile
// @Description  Profile fields, follow counts, viewer follow state, and the
// @Description  user's posts annotated like the feed
// @Tags         users
// @Produce      json
// @Param        username  path      string  true   "Username"
// @Param        userId    query     int     false  "Viewer user ID"
// @Success      200  {object}  ProfileEnvelope
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username} [get]
func (server *Server) GetProfile(c *gin.Context) {
	user := models.User{}
	found, err := user.FindUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
			return
		}
		log.Printf("profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while fetching user profile",
		})
		return
	}

	viewerID := optionalViewerID(c)

	serverError := func(err error) {
		log.Printf("profile assembly failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error while fetching user profile",
		})
	}

	follow := models.Follow{}
	followerCount, err := follow.CountFollowers(server.DB, found.ID)
	if err != nil {
		serverError(err)
		return
	}
	followingCount, err := follow.CountFollowing(server.DB, found.ID)
	if err != nil {
		serverError(err)
		return
	}
	isFollowing, err := follow.IsFollowing(server.DB, viewerID, found.ID)
	if err != nil {
		serverError(err)
		return
	}

	post := models.Post{}
	rows, err := post.FeedPostsByAuthor(server.DB, found.ID, viewerID)
	if err != nil {
		serverError(err)
		return
	}

	profile := ProfileDTO{
		ID:             found.ID,
		Username:       found.Username,
		Name:           found.Name,
		Bio:            found.Bio,
		AvatarPath:     found.AvatarPath,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"profile": profile,
			"posts":   feedRowsToPostDTOs(rows),
		},
	})
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Sparse update of name, bio, and avatar image (multipart)
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        name   formData  string  false  "Display name"
// @Param        bio    formData  string  false  "Bio"
// @Param        image  formData  file    false  "Avatar image"
// @Success      200  {object}  UserEnvelope
// @Failure      400  {object}  ErrorResponse
// @Router       /users/profile [put]
// @Security     BearerAuth
func (server *Server) UpdateProfile(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	errList = map[string]string{}

	// Only whitelisted columns ever make it into the patch.
	patch := map[string]interface{}{}

	if name, exists := c.GetPostForm("name"); exists && strings.TrimSpace(name) != "" {
		patch["name"] = html.EscapeString(strings.TrimSpace(name))
	}
	if bio, exists := c.GetPostForm("bio"); exists && strings.TrimSpace(bio) != "" {
		patch["bio"] = html.EscapeString(strings.TrimSpace(bio))
	}

	if file, err := c.FormFile("image"); err == nil {
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

		avatarPath, err := server.Storage.Save(c.Request.Context(), fileformat.UniqueFormat(file.Filename), buf, fileType)
		if err != nil {
			log.Printf("avatar upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"error":  "Failed to store image",
			})
			return
		}
		patch["avatar_path"] = avatarPath
	}

	if len(patch) == 0 {
		errList["No_fields"] = "No fields to update provided"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	user := models.User{}
	updated, err := user.UpdateProfile(server.DB, uid, patch)
	if err != nil {
		log.Printf("profile update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Database error while updating profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(updated),
	})
}
