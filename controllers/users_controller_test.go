package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func putProfileForm(t *testing.T, r http.Handler, token string, fields map[string]string, withImage bool) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	if withImage {
		part, err := writer.CreateFormFile("image", "avatar.png")
		if err != nil {
			t.Fatalf("Error creating form file: %v", err)
		}
		if _, err := part.Write(pngBytes); err != nil {
			t.Fatalf("Error writing image bytes: %v", err)
		}
	}
	writer.Close()

	req, _ := http.NewRequest(http.MethodPut, "/api/users/profile", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfile(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "Ada Lovelace", "ada", "ada@x.com", "password1")
	token := loginUser(t, r, "ada@x.com", "password1")
	createPost(t, r, token, "my first post")

	w := doJSON(t, r, http.MethodGet, "/api/users/ada", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)["response"].(map[string]interface{})
	profile := response["profile"].(map[string]interface{})
	assert.Equal(t, "ada", profile["username"])
	assert.Equal(t, "Ada Lovelace", profile["name"])
	assert.Equal(t, float64(0), profile["follower_count"])

	posts := response["posts"].([]interface{})
	assert.Len(t, posts, 1)
	assert.Equal(t, "my first post", posts[0].(map[string]interface{})["caption"])
}

func TestGetProfileNotFound(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/users/ghost", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfileSparse(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "Ada Lovelace", "ada", "ada@x.com", "password1")
	token := loginUser(t, r, "ada@x.com", "password1")

	// Nothing supplied: validation failure.
	w := putProfileForm(t, r, token, map[string]string{}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bio only: bio changes, name stays.
	w = putProfileForm(t, r, token, map[string]string{"bio": "counting machines"}, false)
	assert.Equal(t, http.StatusOK, w.Code)
	response := parseBody(t, w)["response"].(map[string]interface{})
	assert.Equal(t, "counting machines", response["bio"])
	assert.Equal(t, "Ada Lovelace", response["name"])
	assert.Empty(t, response["avatar_path"])

	// Image only: avatar set, bio kept.
	w = putProfileForm(t, r, token, map[string]string{}, true)
	assert.Equal(t, http.StatusOK, w.Code)
	response = parseBody(t, w)["response"].(map[string]interface{})
	assert.NotEmpty(t, response["avatar_path"])
	assert.Equal(t, "counting machines", response["bio"])
}

func TestUpdateProfileRequiresAuth(t *testing.T) {
	_, r := newTestServer(t)

	w := putProfileForm(t, r, "", map[string]string{"bio": "anonymous"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
