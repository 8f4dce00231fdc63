package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"pawsgram/auth"
	"pawsgram/mailer"
	"pawsgram/models"
	"pawsgram/security"
	"pawsgram/utils/formaterror"

	"github.com/gin-gonic/gin"
)

// Register godoc
// @Summary      Register
// @Description  Create a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user  body      RegisterRequest  true  "Registration payload"
// @Success      201   {object}  UserEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /auth/register [post]
func (server *Server) Register(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Unable to get request",
		})
		return
	}
	user := models.User{}
	err = json.Unmarshal(body, &user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("")
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	taken, err := user.UsernameOrEmailTaken(server.DB, user.Username, user.Email)
	if err != nil {
		log.Printf("registration lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error during registration",
		})
		return
	}
	if taken {
		errList["Taken_account"] = "Username or email already exists"
		c.JSON(http.StatusConflict, gin.H{
			"status": http.StatusConflict,
			"error":  errList,
		})
		return
	}

	if err := user.HashPassword(); err != nil {
		log.Printf("password hash failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error during registration",
		})
		return
	}

	userCreated, err := user.SaveUser(server.DB)
	if err != nil {
		// The unique indexes are the backstop for the race between the
		// pre-check and the insert.
		if formaterror.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"status": http.StatusConflict,
				"error":  formaterror.FormatError(err.Error()),
			})
			return
		}
		log.Printf("registration insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error during registration",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": userToResponse(userCreated),
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Login payload"
// @Success      200          {object}  LoginEnvelope
// @Failure      401          {object}  ErrorResponse
// @Router       /auth/login [post]
func (server *Server) Login(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Unable to get request",
		})
		return
	}
	user := models.User{}
	err = json.Unmarshal(body, &user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	userData, err := server.SignIn(user.Email, user.Password)
	if err != nil {
		// Uniform body: never reveal whether the email exists.
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Invalid credentials",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) SignIn(email, password string) (map[string]interface{}, error) {

	user := models.User{}

	found, err := user.FindUserByEmail(server.DB, email)
	if err != nil {
		return nil, err
	}
	if err := security.VerifyPassword(found.Password, password); err != nil {
		return nil, err
	}
	token, err := auth.CreateToken(found.ID, found.Username)
	if err != nil {
		return nil, err
	}

	userData := make(map[string]interface{})
	userData["token"] = token
	userData["id"] = found.ID
	userData["public_id"] = found.PublicID
	userData["username"] = found.Username
	userData["email"] = found.Email
	userData["avatar_path"] = found.AvatarPath

	return userData, nil
}

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Email a one-shot reset token to the given address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      ForgotPasswordRequest  true  "Email payload"
// @Success      200      {object}  SimpleMessageResponse
// @Router       /auth/password/forgot [post]
func (server *Server) ForgotPassword(c *gin.Context) {

	errList = map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Unable to get request",
		})
		return
	}
	user := models.User{}
	if err := json.Unmarshal(body, &user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("forgotpassword")
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	// Same response whether or not the address has an account.
	okResponse := gin.H{
		"status":   http.StatusOK,
		"response": "If that email has an account, a reset link is on the way",
	}

	found, err := user.FindUserByEmail(server.DB, user.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusOK, okResponse)
			return
		}
		log.Printf("forgot password lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error",
		})
		return
	}

	resetModel := models.PasswordReset{}
	reset, err := resetModel.CreateForEmail(server.DB, found.Email)
	if err != nil {
		log.Printf("reset token create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error",
		})
		return
	}

	if err := mailer.SendPasswordReset(found.Email, found.Name, reset.Token); err != nil {
		log.Printf("reset mail failed for %s: %v", found.Email, err)
	}

	c.JSON(http.StatusOK, okResponse)
}

// ResetPassword godoc
// @Summary      Reset password
// @Description  Set a new password using an emailed reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      ResetPasswordRequest  true  "Token and new password"
// @Success      200      {object}  SimpleMessageResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /auth/password/reset [post]
func (server *Server) ResetPassword(c *gin.Context) {

	errList = map[string]string{}

	var payload struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	if payload.Token == "" || len(payload.Password) < 6 {
		errList["Invalid_request"] = "Token and a password of at least 6 characters are required"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	resetModel := models.PasswordReset{}
	reset, err := resetModel.FindValidToken(server.DB, payload.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Invalid or expired reset token",
		})
		return
	}

	user := models.User{Email: reset.Email, Password: payload.Password}
	if err := user.UpdatePassword(server.DB); err != nil {
		log.Printf("password update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Server error",
		})
		return
	}
	if err := reset.Consume(server.DB); err != nil {
		log.Printf("reset token consume failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Password updated successfully",
	})
}
