package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawsgram/controllers"
	"pawsgram/middlewares"
	"pawsgram/models"
	"pawsgram/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Minimal valid PNG signature, enough for http.DetectContentType to report
// image/png.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

func newTestServer(t *testing.T) (*controllers.Server, *gin.Engine) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Save{},
		&models.Follow{},
		&models.PasswordReset{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	local, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}

	server := &controllers.Server{DB: db, Storage: local}

	r := gin.Default()
	r.POST("/api/auth/register", server.Register)
	r.POST("/api/auth/login", server.Login)
	r.POST("/api/auth/password/forgot", server.ForgotPassword)
	r.POST("/api/auth/password/reset", server.ResetPassword)

	r.GET("/api/posts", server.GetPosts)
	r.POST("/api/posts", middlewares.TokenAuthMiddleware(db), server.CreatePost)
	r.GET("/api/posts/:id", server.GetPost)
	r.DELETE("/api/posts/:id", middlewares.TokenAuthMiddleware(db), server.DeletePost)
	r.POST("/api/posts/:id/like", middlewares.TokenAuthMiddleware(db), server.LikePost)
	r.DELETE("/api/posts/:id/like", middlewares.TokenAuthMiddleware(db), server.UnlikePost)
	r.POST("/api/posts/:id/save", middlewares.TokenAuthMiddleware(db), server.SavePost)
	r.DELETE("/api/posts/:id/save", middlewares.TokenAuthMiddleware(db), server.UnsavePost)

	r.GET("/api/users/saved", middlewares.TokenAuthMiddleware(db), server.GetSavedPosts)
	r.PUT("/api/users/profile", middlewares.TokenAuthMiddleware(db), server.UpdateProfile)
	r.GET("/api/users/:username", server.GetProfile)
	r.GET("/api/users/:username/followers", server.GetFollowers)
	r.GET("/api/users/:username/following", server.GetFollowing)
	r.POST("/api/users/:username/follow", middlewares.TokenAuthMiddleware(db), server.FollowUser)
	r.DELETE("/api/users/:username/follow", middlewares.TokenAuthMiddleware(db), server.UnfollowUser)

	server.Router = r
	return server, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Error creating request body: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}
	return body
}

func registerUser(t *testing.T, r *gin.Engine, name, username, email, password string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering %s, got %d: %s", username, w.Code, w.Body.String())
	}
}

func loginUser(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 logging in %s, got %d: %s", email, w.Code, w.Body.String())
	}
	body := parseBody(t, w)
	token, ok := body["response"].(map[string]interface{})["token"].(string)
	if !ok {
		t.Fatalf("Token not found in login response")
	}
	return token
}

// createPost uploads a tiny PNG with the given caption and returns the new
// post's id.
func createPost(t *testing.T, r *gin.Engine, token, caption string) uint {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("caption", caption); err != nil {
		t.Fatalf("Error writing caption field: %v", err)
	}
	part, err := writer.CreateFormFile("image", "photo.png")
	if err != nil {
		t.Fatalf("Error creating form file: %v", err)
	}
	if _, err := part.Write(pngBytes); err != nil {
		t.Fatalf("Error writing image bytes: %v", err)
	}
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating post, got %d: %s", w.Code, w.Body.String())
	}
	response := parseBody(t, w)["response"].(map[string]interface{})
	return uint(response["id"].(float64))
}
