package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/topic-selection-api/internal/dto"
	"github.com/noah-isme/topic-selection-api/internal/models"
	appErrors "github.com/noah-isme/topic-selection-api/pkg/errors"
)

type teacherSessionResolver interface {
	ResolveTeacher(ctx context.Context, accessToken string) (*models.Teacher, error)
}

type teacherTopicStore interface {
	Create(ctx context.Context, topic *models.Topic) (int64, error)
	FindByID(ctx context.Context, topicID string) (*models.Topic, error)
	ListByTeacher(ctx context.Context, tid string) ([]models.Topic, error)
	AssignStudent(ctx context.Context, topicID, sid string) (int64, error)
}

type teacherApplicationStore interface {
	FindByKey(ctx context.Context, sid, topicID string) (*models.Application, error)
	ListPendingByTeacher(ctx context.Context, tid string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, sid, topicID string, from, to models.ApplicationStatus) (int64, error)
}

// TeacherService manages a teacher's topic catalogue and the applications
// made against it.
type TeacherService struct {
	sessions     teacherSessionResolver
	topics       teacherTopicStore
	applications teacherApplicationStore
	tx           txRunner
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	newTopicID   func() string
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(sessions teacherSessionResolver, topics teacherTopicStore, applications teacherApplicationStore, tx txRunner, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		sessions:     sessions,
		topics:       topics,
		applications: applications,
		tx:           tx,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		newTopicID:   uuid.NewString,
	}
}

// AddTopic creates a teacher authored topic owned by the caller.
func (s *TeacherService) AddTopic(ctx context.Context, accessToken string, req dto.TopicInfoRequest) (*dto.TopicResult, error) {
	teacher, err := s.sessions.ResolveTeacher(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordWorkflow("add_topic", outcomeInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid topic payload")
	}

	topic := models.Topic{
		TopicID:      s.newTopicID(),
		TopicName:    req.TopicName,
		Introduction: req.Introduction,
		TID:          teacher.TID,
		TypeID:       req.TypeID,
		Source:       models.TopicSourceTeacher,
	}
	rows, err := s.topics.Create(ctx, &topic)
	if err != nil {
		s.metrics.RecordWorkflow("add_topic", outcomeError)
		return nil, s.storageError(err, "create topic")
	}
	if rows != 1 {
		s.metrics.RecordWorkflow("add_topic", outcomeNoData)
		return nil, appErrors.ErrNoData
	}

	s.metrics.RecordWorkflow("add_topic", outcomeSuccess)
	s.cache.InvalidateEligibleTopics(ctx)
	return &dto.TopicResult{Topic: topic}, nil
}

// ListMyTopics returns every topic owned by the caller.
func (s *TeacherService) ListMyTopics(ctx context.Context, accessToken string) (*dto.TopicsResult, error) {
	teacher, err := s.sessions.ResolveTeacher(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	topics, err := s.topics.ListByTeacher(ctx, teacher.TID)
	if err != nil {
		return nil, s.storageError(err, "list teacher topics")
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	return &dto.TopicsResult{Topics: topics}, nil
}

// ListPendingApplications returns pending applications to the caller's topics.
func (s *TeacherService) ListPendingApplications(ctx context.Context, accessToken string) (*dto.ApplicationsResult, error) {
	teacher, err := s.sessions.ResolveTeacher(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListPendingByTeacher(ctx, teacher.TID)
	if err != nil {
		return nil, s.storageError(err, "list pending applications")
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return &dto.ApplicationsResult{Applications: apps}, nil
}

// ReviewApplication approves or rejects a pending application. Approval
// also assigns the topic to the student, which succeeds only once per topic.
func (s *TeacherService) ReviewApplication(ctx context.Context, accessToken string, req dto.ReviewApplicationRequest) (*dto.ReviewResult, error) {
	teacher, err := s.sessions.ResolveTeacher(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	topic, err := s.topics.FindByID(ctx, req.TopicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoData
		}
		return nil, s.storageError(err, "load topic")
	}
	if topic.TID != teacher.TID {
		return nil, appErrors.ErrForbidden
	}

	app, err := s.applications.FindByKey(ctx, req.SID, req.TopicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoData
		}
		return nil, s.storageError(err, "load application")
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, appErrors.Clone(appErrors.ErrNoData, "application is not pending")
	}

	next := models.ApplicationStatusRejected
	if req.Approve {
		next = models.ApplicationStatusApproved
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rows, err := s.applications.UpdateStatus(ctx, req.SID, req.TopicID, models.ApplicationStatusPending, next)
		if err != nil {
			return s.storageError(err, "update application status")
		}
		if rows != 1 {
			return appErrors.Clone(appErrors.ErrNoData, "application is not pending")
		}
		if !req.Approve {
			return nil
		}
		rows, err = s.topics.AssignStudent(ctx, req.TopicID, req.SID)
		if err != nil {
			return s.storageError(err, "assign topic")
		}
		if rows != 1 {
			s.logger.Info("topic already assigned", zap.String("topic_id", req.TopicID), zap.String("sid", req.SID))
			return appErrors.ErrAlreadyAssigned
		}
		return nil
	})
	if err != nil {
		appErr := appErrors.FromError(err)
		s.metrics.RecordWorkflow("review", outcomeOf(appErr))
		return nil, appErr
	}

	s.metrics.RecordWorkflow("review", outcomeSuccess)
	app.Status = next
	return &dto.ReviewResult{Application: *app}, nil
}

func (s *TeacherService) storageError(err error, action string) error {
	s.logger.Error(action, zap.Error(err))
	return appErrors.Storage(err, action)
}
