package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/topic-selection-api/internal/dto"
	"github.com/noah-isme/topic-selection-api/pkg/response"
)

type teacherCatalogue interface {
	AddTopic(ctx context.Context, accessToken string, req dto.TopicInfoRequest) (*dto.TopicResult, error)
	ListMyTopics(ctx context.Context, accessToken string) (*dto.TopicsResult, error)
	ListPendingApplications(ctx context.Context, accessToken string) (*dto.ApplicationsResult, error)
	ReviewApplication(ctx context.Context, accessToken string, req dto.ReviewApplicationRequest) (*dto.ReviewResult, error)
}

// TeacherHandler exposes the teacher topic catalogue endpoints.
type TeacherHandler struct {
	teachers teacherCatalogue
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(teachers teacherCatalogue) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// AddTopic godoc
// @Summary Add a topic to the caller's catalogue
// @Tags Teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.TopicInfoRequest true "Topic"
// @Success 200 {object} dto.TopicResult
// @Failure 400 {object} response.Envelope
// @Router /teacher/topics [post]
func (h *TeacherHandler) AddTopic(c *gin.Context) {
	var req dto.TopicInfoRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.teachers.AddTopic(c.Request.Context(), accessToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Topics godoc
// @Summary List the caller's topics
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TopicsResult
// @Router /teacher/topics [get]
func (h *TeacherHandler) Topics(c *gin.Context) {
	res, err := h.teachers.ListMyTopics(c.Request.Context(), accessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// PendingApplications godoc
// @Summary List pending applications to the caller's topics
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationsResult
// @Router /teacher/applications [get]
func (h *TeacherHandler) PendingApplications(c *gin.Context) {
	res, err := h.teachers.ListPendingApplications(c.Request.Context(), accessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Review godoc
// @Summary Approve or reject an application
// @Tags Teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReviewApplicationRequest true "Decision"
// @Success 200 {object} dto.ReviewResult
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /teacher/applications/review [post]
func (h *TeacherHandler) Review(c *gin.Context) {
	var req dto.ReviewApplicationRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.teachers.ReviewApplication(c.Request.Context(), accessToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
