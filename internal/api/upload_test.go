package api

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	rec := doRequest(t, env, http.MethodPost, "/api/upload", "", gin.H{
		"fileName": "cut.mp4",
		"fileType": "video/mp4",
		"fileSize": 1024,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadPresignsVideo(t *testing.T) {
	env := setupTestEnv(t)
	user, token := registerUser(t, env, "maker")

	rec := doRequest(t, env, http.MethodPost, "/api/upload", token, gin.H{
		"fileName": "cut.mp4",
		"fileType": "video/mp4",
		"fileSize": 1024,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		UploadURL string `json:"uploadUrl"`
		Key       string `json:"key"`
		PublicURL string `json:"publicUrl"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, strings.HasPrefix(resp.Key, "uploads/"+user.Email+"/"))
	assert.True(t, strings.HasPrefix(resp.UploadURL, "https://storage.test/signed/"))
	assert.True(t, strings.HasPrefix(resp.PublicURL, "https://cdn.test/"))
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	env := setupTestEnv(t)
	_, token := registerUser(t, env, "maker")

	rec := doRequest(t, env, http.MethodPost, "/api/upload", token, gin.H{
		"fileName": "notes.pdf",
		"fileType": "application/pdf",
		"fileSize": 1024,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadStorageUnavailable(t *testing.T) {
	env := setupTestEnv(t)
	_, token := registerUser(t, env, "maker")
	env.presigner.err = errors.New("connection refused")

	rec := doRequest(t, env, http.MethodPost, "/api/upload", token, gin.H{
		"fileName": "cut.mp4",
		"fileType": "video/mp4",
		"fileSize": 1024,
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
