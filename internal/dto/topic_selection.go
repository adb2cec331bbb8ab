package dto

import "github.com/noah-isme/topic-selection-api/internal/models"

// TopicInfoRequest is the payload for creating a topic, either by a teacher
// or by a student proposing one.
type TopicInfoRequest struct {
	TopicName    string `json:"topicName" validate:"required,max=255"`
	Introduction string `json:"introduction" validate:"max=4000"`
	TypeID       string `json:"typeId" validate:"required,max=32"`
}

// ApplyRequest targets an existing topic.
type ApplyRequest struct {
	TopicID string `json:"topicId" form:"topicId" validate:"required"`
}

// ProposeRequest creates a topic for a teacher and applies to it.
type ProposeRequest struct {
	TID   string           `json:"tid" validate:"required"`
	Topic TopicInfoRequest `json:"topic"`
}

// ReviewApplicationRequest is a teacher's decision on a pending application.
type ReviewApplicationRequest struct {
	SID     string `json:"sid" validate:"required"`
	TopicID string `json:"topicId" validate:"required"`
	Approve bool   `json:"approve"`
}

// SelectableTopicsResult lists topics a student may apply to.
type SelectableTopicsResult struct {
	Topics []models.SelectableTopic `json:"topics"`
}

// SelectableTeachersResult lists teachers a student may pick.
type SelectableTeachersResult struct {
	Teachers []models.Teacher `json:"teachers"`
}

// ApplyResult is returned after an application is recorded.
type ApplyResult struct {
	Application models.Application `json:"application"`
}

// ProposeResult is returned after a proposed topic and its application are
// committed together.
type ProposeResult struct {
	Topic       models.Topic       `json:"topic"`
	Application models.Application `json:"application"`
}

// TeacherInfoResult carries the student's approved supervisor.
type TeacherInfoResult struct {
	Teacher models.Teacher `json:"userInfo"`
}

// ApprovedTopicResult carries the student's approved topic and its type.
type ApprovedTopicResult struct {
	Topic models.Topic     `json:"topic"`
	Type  models.TopicType `json:"type"`
}

// ApplicationRecord is one row of a student's application history.
type ApplicationRecord struct {
	Topic       models.Topic       `json:"topicInfo"`
	TeacherName string             `json:"teacherName"`
	Application models.Application `json:"applyInfo"`
}

// ApplicationHistoryResult lists a student's applications in ledger order.
type ApplicationHistoryResult struct {
	Records []ApplicationRecord `json:"applyRecord"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// TopicResult wraps a single topic.
type TopicResult struct {
	Topic models.Topic `json:"topic"`
}

// TopicsResult wraps a topic list.
type TopicsResult struct {
	Topics []models.Topic `json:"topics"`
}

// ApplicationsResult wraps an application list.
type ApplicationsResult struct {
	Applications []models.Application `json:"applications"`
}

// ReviewResult is returned after a teacher decides on an application.
type ReviewResult struct {
	Application models.Application `json:"application"`
}
