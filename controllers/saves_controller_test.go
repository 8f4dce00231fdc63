package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveUnsave(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "A", "a1", "a@x.com", "password1")
	token := loginUser(t, r, "a@x.com", "password1")
	pid := createPost(t, r, token, "keeper")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/save", pid), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/save", pid), nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d/save", pid), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d/save", pid), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavedPostsList(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "A", "a1", "a@x.com", "password1")
	registerUser(t, r, "B", "b1", "b@x.com", "password1")
	tokenA := loginUser(t, r, "a@x.com", "password1")
	tokenB := loginUser(t, r, "b@x.com", "password1")

	first := createPost(t, r, tokenA, "first")
	second := createPost(t, r, tokenA, "second")

	// b1 saves both, first then second: the list is newest save first.
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/save", first), nil, tokenB)
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/save", second), nil, tokenB)

	w := doJSON(t, r, http.MethodGet, "/api/users/saved", nil, tokenB)
	assert.Equal(t, http.StatusOK, w.Code)

	posts := parseBody(t, w)["response"].([]interface{})
	assert.Len(t, posts, 2)
	assert.Equal(t, float64(second), posts[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(first), posts[1].(map[string]interface{})["id"])

	// a1 saved nothing.
	w = doJSON(t, r, http.MethodGet, "/api/users/saved", nil, tokenA)
	assert.Equal(t, http.StatusOK, w.Code)
	posts = parseBody(t, w)["response"].([]interface{})
	assert.Len(t, posts, 0)
}

func TestSavedPostsRequiresAuth(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/users/saved", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
