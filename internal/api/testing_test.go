package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/service"
	"github.com/screenroom/backend/internal/workflow"
)

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	auth      *service.AuthService
	presigner *stubPresigner
}

type stubPresigner struct {
	err error
}

func (p *stubPresigner) PresignPutObject(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "https://storage.test/signed/" + objectKey, nil
}

func (p *stubPresigner) ObjectPublicURL(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Film{},
		&models.CastCrew{},
		&models.Feedback{},
		&models.Review{},
		&models.Comment{},
		&models.WatchLog{},
	))

	authService := service.NewAuthService(db, "api-test-secret")
	filmService := service.NewFilmService(db, nil)
	feedbackService := service.NewFeedbackService(db)
	statsService := service.NewStatsService(db)
	presigner := &stubPresigner{}
	uploadService := service.NewUploadService(presigner)

	router := gin.New()
	apiGroup := router.Group("/api")
	NewAuthHandler(authService).RegisterRoutes(apiGroup)
	NewFilmHandler(filmService, feedbackService, statsService, authService).RegisterRoutes(apiGroup)
	NewFeedbackHandler(feedbackService, workflow.NewManager(), authService, nil).RegisterRoutes(apiGroup)
	NewUploadHandler(uploadService, authService, authService).RegisterRoutes(apiGroup)

	return &testEnv{router: router, db: db, auth: authService, presigner: presigner}
}

func registerUser(t *testing.T, env *testEnv, username string) (*models.User, string) {
	t.Helper()
	user, token, err := env.auth.Register(context.Background(), username, username, username+"@example.com", "password123")
	require.NoError(t, err)
	return user, token
}

// doRequest performs one request against the test router. A nil body
// sends no payload; an empty token sends no Authorization header.
func doRequest(t *testing.T, env *testEnv, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createFilmViaAPI(t *testing.T, env *testEnv, token string, body gin.H) *models.Film {
	t.Helper()
	rec := doRequest(t, env, http.MethodPost, "/api/films", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var film models.Film
	decodeBody(t, rec, &film)
	return &film
}
