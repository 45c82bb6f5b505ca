package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/middleware"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/service"
	"github.com/screenroom/backend/internal/types"
	"github.com/screenroom/backend/internal/workflow"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
	sessions        *workflow.Manager
	validator       middleware.TokenValidator
	rateLimit       gin.HandlerFunc
}

// NewFeedbackHandler wires feedback submission routes. rateLimit may be
// nil when no limiter is configured.
func NewFeedbackHandler(
	feedbackService service.IFeedbackService,
	sessions *workflow.Manager,
	validator middleware.TokenValidator,
	rateLimit gin.HandlerFunc,
) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		sessions:        sessions,
		validator:       validator,
		rateLimit:       rateLimit,
	}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.validator)

	films := router.Group("/films/:id")
	films.GET("/feedback", h.ListFeedback)

	submit := films.Group("", auth)
	if h.rateLimit != nil {
		submit.Use(h.rateLimit)
	}
	{
		submit.POST("/feedback", h.CreateFeedback)
		submit.POST("/feedback/session", h.OpenSession)
		submit.POST("/feedback/session/:sid/prompt", h.SelectPrompt)
		submit.POST("/feedback/session/:sid/content", h.SetContent)
		submit.POST("/feedback/session/:sid/options", h.SetOptions)
		submit.POST("/feedback/session/:sid/back", h.StepBack)
		submit.POST("/feedback/session/:sid/submit", h.Submit)
		submit.DELETE("/feedback/session/:sid", h.AbandonSession)
	}
}

// CreateFeedback persists one feedback entry directly, outside the
// guided session flow.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
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

	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.FilmID = filmID

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedbackResponse(feedback))
}

// ListFeedback returns a film's feedback, newest first. includePrivate
// is only honored for the film's creator.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	filmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
		return
	}

	var requester *uuid.UUID
	if userID, ok := currentUserID(c); ok {
		requester = &userID
	} else {
		requester = optionalUserID(c, h.validator)
	}

	opts := types.ListFeedbackOptions{
		IncludePrivate: c.Query("includePrivate") == "true",
		RequesterID:    requester,
	}

	feedback, err := h.feedbackService.ListByFilm(c.Request.Context(), filmID, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedbackResponses(feedback))
}

type openSessionRequest struct {
	PlaybackTime *int `json:"playbackTime"`
}

type sessionResponse struct {
	SessionID uuid.UUID      `json:"session_id"`
	State     workflow.State `json:"state"`
}

func (h *FeedbackHandler) OpenSession(c *gin.Context) {
	userID, _ := currentUserID(c)
	filmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
		return
	}

	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := h.sessions.Open(filmID, userID, req.PlaybackTime)
	c.JSON(http.StatusCreated, sessionResponse{SessionID: session.ID, State: session.State()})
}

func (h *FeedbackHandler) SelectPrompt(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		PromptType models.PromptType `json:"promptType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SelectPrompt(req.PromptType); err != nil {
		h.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State()})
}

func (h *FeedbackHandler) SetContent(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SetContent(req.Content); err != nil {
		h.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State()})
}

func (h *FeedbackHandler) SetOptions(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var opts workflow.Options
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SetOptions(opts); err != nil {
		h.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State()})
}

func (h *FeedbackHandler) StepBack(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.Back(); err != nil {
		h.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State()})
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	feedback, err := session.Submit(c.Request.Context(), h.feedbackService)
	if err != nil {
		if errors.Is(err, workflow.ErrInvalidTransition) {
			h.workflowError(c, err)
			return
		}
		// Submission failed in the store; the session keeps its input so
		// the viewer can retry explicitly.
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedbackResponse(feedback))
}

func (h *FeedbackHandler) AbandonSession(c *gin.Context) {
	userID, _ := currentUserID(c)
	sessionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	if err := h.sessions.Close(sessionID, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": true})
}

func (h *FeedbackHandler) session(c *gin.Context) (*workflow.Session, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}

	sessionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}

	session, err := h.sessions.Get(sessionID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}

func (h *FeedbackHandler) workflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// feedbackResponse converts a store record into its API shape. The
// store has already redacted anonymous authors.
func feedbackResponse(f *models.Feedback) types.FeedbackResponse {
	resp := types.FeedbackResponse{
		ID:          f.ID,
		FilmID:      f.FilmID,
		Content:     f.Content,
		Type:        f.Type,
		PromptType:  f.PromptType,
		Timestamp:   f.Timestamp,
		IsPrivate:   f.IsPrivate,
		IsAnonymous: f.IsAnonymous,
		CreatedAt:   f.CreatedAt,
	}
	if f.Author != nil {
		author := f.Author.Public()
		resp.Author = &author
	}
	return resp
}

func feedbackResponses(feedback []*models.Feedback) []types.FeedbackResponse {
	out := make([]types.FeedbackResponse, len(feedback))
	for i, f := range feedback {
		out[i] = feedbackResponse(f)
	}
	return out
}
