package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/topic-selection-api/internal/dto"
	"github.com/noah-isme/topic-selection-api/pkg/response"
)

type studentWorkflow interface {
	ListEligibleTopics(ctx context.Context, accessToken string) (*dto.SelectableTopicsResult, error)
	ListEligibleTeachers(ctx context.Context, accessToken string) (*dto.SelectableTeachersResult, error)
	ApplyToExistingTopic(ctx context.Context, accessToken string, req dto.ApplyRequest) (*dto.ApplyResult, error)
	ProposeAndApplyToNewTopic(ctx context.Context, accessToken string, req dto.ProposeRequest) (*dto.ProposeResult, error)
	GetMyApprovedTeacher(ctx context.Context, accessToken string) (*dto.TeacherInfoResult, error)
	GetMyApprovedTopicWithType(ctx context.Context, accessToken string) (*dto.ApprovedTopicResult, error)
	GetApplicationHistory(ctx context.Context, accessToken string) (*dto.ApplicationHistoryResult, error)
}

type historyExporter interface {
	ExportApplicationHistory(ctx context.Context, accessToken, format string) (*dto.ExportFile, error)
}

// StudentHandler exposes the student topic selection endpoints.
type StudentHandler struct {
	students studentWorkflow
	exports  historyExporter
}

// NewStudentHandler constructs StudentHandler. exports may be nil when
// history downloads are disabled.
func NewStudentHandler(students studentWorkflow, exports historyExporter) *StudentHandler {
	return &StudentHandler{students: students, exports: exports}
}

// Topics godoc
// @Summary List topics the student may apply to
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SelectableTopicsResult
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /student/topics [get]
func (h *StudentHandler) Topics(c *gin.Context) {
	res, err := h.students.ListEligibleTopics(c.Request.Context(), accessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Teachers godoc
// @Summary List teachers guiding the student's profession
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SelectableTeachersResult
// @Failure 401 {object} response.Envelope
// @Router /student/teachers [get]
func (h *StudentHandler) Teachers(c *gin.Context) {
	res, err := h.students.ListEligibleTeachers(c.Request.Context(), accessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Apply godoc
// @Summary Apply to an existing topic
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ApplyRequest true "Target topic"
// @Success 200 {object} dto.ApplyResult
// @Failure 400 {object} response.Envelope
// @Router /student/applications [post]
func (h *StudentHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	// Malformed bodies reach the service empty; it gates before validating.
	_ = c.ShouldBind(&req)
	if req.TopicID == "" {
		req.TopicID = c.Query("topicId")
	}

	res, err := h.students.ApplyToExistingTopic(c.Request.Context(), accessToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Propose godoc
// @Summary Propose a new topic to a teacher and apply to it
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ProposeRequest true "Teacher and topic"
// @Success 200 {object} dto.ProposeResult
// @Failure 400 {object} response.Envelope
// @Router /student/proposals [post]
func (h *StudentHandler) Propose(c *gin.Context) {
	var req dto.ProposeRequest
	_ = c.ShouldBindJSON(&req)
	if req.TID == "" {
		req.TID = c.Query("tid")
	}

	res, err := h.students.ProposeAndApplyToNewTopic(c.Request.Context(), accessToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ApprovedTeacher godoc
// @Summary Get the supervisor of the student's approved topic
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TeacherInfoResult
// @Failure 400 {object} response.Envelope
// @Router /student/teacher [get]
func (h *StudentHandler) ApprovedTeacher(c *gin.Context) {
	res, err := h.students.GetMyApprovedTeacher(c.Request.Context(), accessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ApprovedTopic godoc
// @Summary Get the student's approved topic with its type
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApprovedTopicResult
// @Failure 400 {object} response.Envelope
// @Router /student/topic [get]
func (h *StudentHandler) ApprovedTopic(c *gin.Context) {
	res, err := h.students.GetMyApprovedTopicWithType(c.Request.Context(), accessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// History godoc
// @Summary List the student's applications
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationHistoryResult
// @Failure 400 {object} response.Envelope
// @Router /student/applications [get]
func (h *StudentHandler) History(c *gin.Context) {
	res, err := h.students.GetApplicationHistory(c.Request.Context(), accessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ExportHistory godoc
// @Summary Download the student's application history
// @Tags Student
// @Produce text/csv,application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /student/applications/export [get]
func (h *StudentHandler) ExportHistory(c *gin.Context) {
	file, err := h.exports.ExportApplicationHistory(c.Request.Context(), accessToken(c), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}
