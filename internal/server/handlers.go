// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/edustream/internal/app"
	"github.com/pdiddy/edustream/internal/catalog"
	"github.com/pdiddy/edustream/internal/logger"
	"github.com/pdiddy/edustream/pkg/types"
)

var (
	errEmptyInput     = errors.New("input is empty")
	errBusy           = errors.New("another request is still in progress")
	errNoConversation = errors.New("no course is open")
	errReplaced       = errors.New("conversation was replaced")
)

type handler struct {
	app *app.App
	log *logger.Logger
}

type searchRequest struct {
	Query string `json:"query"`
}

type navigateRequest struct {
	View types.View `json:"view" binding:"required"`
}

type tutorMessageRequest struct {
	Text string `json:"text"`

	// ConversationID, when set, must name the active conversation.
	ConversationID string `json:"conversationId,omitempty"`
}

func (h *handler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *handler) state(c *gin.Context) {
	RespondOK(c, h.app.State())
}

func (h *handler) categories(c *gin.Context) {
	RespondOK(c, gin.H{"categories": catalog.Categories})
}

func (h *handler) listCourses(c *gin.Context) {
	RespondOK(c, gin.H{"courses": h.app.Courses()})
}

func (h *handler) getCourse(c *gin.Context) {
	id := c.Param("id")
	course, err := h.app.Course(id)
	if err != nil {
		h.courseError(c, err)
		return
	}
	RespondOK(c, gin.H{"course": course, "enrolled": h.app.IsEnrolled(id)})
}

func (h *handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		RespondError(c, http.StatusBadRequest, "empty_input", errEmptyInput)
		return
	}

	out, err := h.app.Search(c.Request.Context(), req.Query)
	if err != nil {
		h.log.Error("search failed", "query", req.Query, "error", err)
		RespondError(c, http.StatusBadGateway, "generation_failed", errors.New(app.GenerationFailedNotice))
		return
	}
	if !out.Accepted {
		RespondError(c, http.StatusConflict, "busy", errBusy)
		return
	}
	RespondOK(c, gin.H{"source": out.Source, "state": h.app.State()})
}

func (h *handler) selectCourse(c *gin.Context) {
	if err := h.app.SelectCourseByID(c.Param("id")); err != nil {
		h.courseError(c, err)
		return
	}
	RespondOK(c, h.app.State())
}

func (h *handler) enroll(c *gin.Context) {
	if err := h.app.Enroll(c.Param("id")); err != nil {
		h.courseError(c, err)
		return
	}
	RespondOK(c, h.app.State())
}

func (h *handler) navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.app.Navigate(req.View); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_view", err)
		return
	}
	RespondOK(c, h.app.State())
}

func (h *handler) myLearning(c *gin.Context) {
	RespondOK(c, gin.H{"courses": h.app.MyLearning()})
}

func (h *handler) tutor(c *gin.Context) {
	t := h.app.Tutor()
	if t == nil {
		RespondError(c, http.StatusNotFound, "no_conversation", errNoConversation)
		return
	}
	RespondOK(c, t)
}

func (h *handler) tutorMessage(c *gin.Context) {
	var req tutorMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		RespondError(c, http.StatusBadRequest, "empty_input", errEmptyInput)
		return
	}

	t := h.app.Tutor()
	switch {
	case t == nil:
		RespondError(c, http.StatusConflict, "no_conversation", errNoConversation)
		return
	case req.ConversationID != "" && req.ConversationID != t.ID:
		RespondError(c, http.StatusConflict, "conversation_replaced", errReplaced)
		return
	}

	if !h.app.SubmitTutorMessage(c.Request.Context(), req.Text) {
		RespondError(c, http.StatusConflict, "busy", errBusy)
		return
	}
	RespondOK(c, h.app.Tutor())
}

func (h *handler) courseError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrCourseNotFound) {
		RespondError(c, http.StatusNotFound, "course_not_found", err)
		return
	}
	h.log.Error("course request failed", "error", err)
	RespondError(c, http.StatusInternalServerError, "internal", err)
}
