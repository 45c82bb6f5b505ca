package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/middleware"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/service"
	"github.com/screenroom/backend/internal/types"
)

type FilmHandler struct {
	filmService     service.IFilmService
	feedbackService service.IFeedbackService
	statsService    service.IStatsService
	validator       middleware.TokenValidator
}

func NewFilmHandler(
	filmService service.IFilmService,
	feedbackService service.IFeedbackService,
	statsService service.IStatsService,
	validator middleware.TokenValidator,
) *FilmHandler {
	return &FilmHandler{
		filmService:     filmService,
		feedbackService: feedbackService,
		statsService:    statsService,
		validator:       validator,
	}
}

func (h *FilmHandler) RegisterRoutes(router *gin.RouterGroup) {
	films := router.Group("/films")
	{
		films.POST("", middleware.AuthMiddleware(h.validator), h.CreateFilm)
		films.GET("/my-films", middleware.AuthMiddleware(h.validator), h.MyFilms)
		films.GET("/:id", h.GetFilm)
		films.DELETE("/:id/delete", middleware.AuthMiddleware(h.validator), h.DeleteFilm)
		films.POST("/:id/view", h.RecordView)
		films.POST("/:id/reviews", middleware.AuthMiddleware(h.validator), h.SubmitReview)
	}
}

// FilmDetailResponse is a film with its creator, public feedback and
// read-time stats.
type FilmDetailResponse struct {
	models.Film
	Feedback []types.FeedbackResponse `json:"feedback"`
	Stats    types.FilmStats          `json:"stats"`
}

// FilmWithStats pairs a film with its stats for listings.
type FilmWithStats struct {
	models.Film
	Stats types.FilmStats `json:"stats"`
}

func (h *FilmHandler) CreateFilm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and video URL are required"})
		return
	}

	film, err := h.filmService.CreateFilm(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, film)
}

func (h *FilmHandler) GetFilm(c *gin.Context) {
	filmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
		return
	}

	film, err := h.filmService.GetFilm(c.Request.Context(), filmID)
	if err != nil {
		respondError(c, err)
		return
	}

	requester := optionalUserID(c, h.validator)
	opts := types.ListFeedbackOptions{RequesterID: requester}
	if requester != nil && *requester == film.CreatorID {
		opts.IncludePrivate = true
	}
	feedback, err := h.feedbackService.ListByFilm(c.Request.Context(), filmID, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.statsService.StatsForFilm(c.Request.Context(), filmID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FilmDetailResponse{
		Film:     *film,
		Feedback: feedbackResponses(feedback),
		Stats:    *stats,
	})
}

func (h *FilmHandler) MyFilms(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	films, err := h.filmService.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]FilmWithStats, 0, len(films))
	for _, film := range films {
		stats, err := h.statsService.StatsForFilm(c.Request.Context(), film.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, FilmWithStats{Film: *film, Stats: *stats})
	}

	c.JSON(http.StatusOK, out)
}

func (h *FilmHandler) DeleteFilm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
		return
	}

	counts, err := h.filmService.DeleteFilm(c.Request.Context(), filmID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"deletedCounts": counts,
	})
}

func (h *FilmHandler) RecordView(c *gin.Context) {
	filmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
		return
	}

	viewer := optionalUserID(c, h.validator)
	if err := h.filmService.RecordView(c.Request.Context(), filmID, viewer); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": true})
}

func (h *FilmHandler) SubmitReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
		return
	}

	var req types.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.filmService.SubmitReview(c.Request.Context(), filmID, userID, req.Rating, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
