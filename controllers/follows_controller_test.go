package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowUnfollow(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "A", "a1", "a@x.com", "password1")
	registerUser(t, r, "B", "b1", "b@x.com", "password1")
	tokenA := loginUser(t, r, "a@x.com", "password1")

	// a1 follows b1 by username.
	w := doJSON(t, r, http.MethodPost, "/api/users/b1/follow", nil, tokenA)
	assert.Equal(t, http.StatusOK, w.Code)

	// Following twice conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/users/b1/follow", nil, tokenA)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Follower count shows up on the profile.
	w = doJSON(t, r, http.MethodGet, "/api/users/b1?userId=1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	profile := parseBody(t, w)["response"].(map[string]interface{})["profile"].(map[string]interface{})
	assert.Equal(t, float64(1), profile["follower_count"])
	assert.Equal(t, float64(0), profile["following_count"])
	assert.Equal(t, true, profile["is_following"])

	w = doJSON(t, r, http.MethodDelete, "/api/users/b1/follow", nil, tokenA)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unfollowing an absent relation 404s.
	w = doJSON(t, r, http.MethodDelete, "/api/users/b1/follow", nil, tokenA)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Count decremented back.
	w = doJSON(t, r, http.MethodGet, "/api/users/b1", nil, "")
	profile = parseBody(t, w)["response"].(map[string]interface{})["profile"].(map[string]interface{})
	assert.Equal(t, float64(0), profile["follower_count"])
	assert.Equal(t, false, profile["is_following"])
}

func TestSelfFollowRejected(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "A", "a1", "a@x.com", "password1")
	token := loginUser(t, r, "a@x.com", "password1")

	w := doJSON(t, r, http.MethodPost, "/api/users/a1/follow", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Numeric id form is caught the same way.
	w = doJSON(t, r, http.MethodPost, "/api/users/1/follow", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowUnknownUser(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "A", "a1", "a@x.com", "password1")
	token := loginUser(t, r, "a@x.com", "password1")

	w := doJSON(t, r, http.MethodPost, "/api/users/ghost/follow", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowersAndFollowingLists(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "A", "a1", "a@x.com", "password1")
	registerUser(t, r, "B", "b1", "b@x.com", "password1")
	registerUser(t, r, "C", "c1", "c@x.com", "password1")
	tokenA := loginUser(t, r, "a@x.com", "password1")
	tokenC := loginUser(t, r, "c@x.com", "password1")

	doJSON(t, r, http.MethodPost, "/api/users/b1/follow", nil, tokenA)
	doJSON(t, r, http.MethodPost, "/api/users/b1/follow", nil, tokenC)

	w := doJSON(t, r, http.MethodGet, "/api/users/b1/followers", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	followers := parseBody(t, w)["response"].([]interface{})
	assert.Len(t, followers, 2)

	usernames := map[string]bool{}
	for _, f := range followers {
		usernames[f.(map[string]interface{})["username"].(string)] = true
	}
	assert.True(t, usernames["a1"])
	assert.True(t, usernames["c1"])

	w = doJSON(t, r, http.MethodGet, "/api/users/a1/following", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	following := parseBody(t, w)["response"].([]interface{})
	assert.Len(t, following, 1)
	assert.Equal(t, "b1", following[0].(map[string]interface{})["username"])

	w = doJSON(t, r, http.MethodGet, "/api/users/ghost/followers", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
