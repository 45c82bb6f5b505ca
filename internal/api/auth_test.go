package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	rec := doRequest(t, env, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada Lovelace",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada", resp.User.Username)
}

func TestRegisterEndpointValidation(t *testing.T) {
	env := setupTestEnv(t)

	rec := doRequest(t, env, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada",
		"username": "ada",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, env, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "ada")

	rec := doRequest(t, env, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "ada")

	rec := doRequest(t, env, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, env, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
