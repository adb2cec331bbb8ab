package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/topic-selection-api/internal/dto"
	"github.com/noah-isme/topic-selection-api/internal/models"
	"github.com/noah-isme/topic-selection-api/internal/repository"
	appErrors "github.com/noah-isme/topic-selection-api/pkg/errors"
)

type studentSessionResolver interface {
	ResolveStudent(ctx context.Context, accessToken string) (*models.Student, error)
}

type studentTopicStore interface {
	ListSelectable(ctx context.Context, professionID string) ([]models.SelectableTopic, error)
	Create(ctx context.Context, topic *models.Topic) (int64, error)
	FindByIDs(ctx context.Context, topicIDs []string) ([]models.Topic, error)
	ListAssignedToStudent(ctx context.Context, sid string) ([]models.Topic, error)
}

type studentTeacherDirectory interface {
	FindByID(ctx context.Context, tid string) (*models.Teacher, error)
	FindByIDs(ctx context.Context, tids []string) ([]models.Teacher, error)
	ListByGuideProfession(ctx context.Context, professionID string) ([]models.Teacher, error)
}

type topicTypeReader interface {
	FindByID(ctx context.Context, typeID string) (*models.TopicType, error)
}

type studentApplicationLedger interface {
	Create(ctx context.Context, app *models.Application) (int64, error)
	ListByStudent(ctx context.Context, sid string) ([]models.Application, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// StudentServiceParams groups the StudentService dependencies.
type StudentServiceParams struct {
	Sessions     studentSessionResolver
	Topics       studentTopicStore
	Teachers     studentTeacherDirectory
	TopicTypes   topicTypeReader
	Applications studentApplicationLedger
	Tx           txRunner
	Cache        *CacheService
	Metrics      *MetricsService
	CacheTTL     time.Duration
	Validator    *validator.Validate
	Logger       *zap.Logger
	Now          func() time.Time
	NewTopicID   func() string
}

// StudentService runs the student side of topic selection: browsing,
// applying, proposing and reviewing one's own applications.
type StudentService struct {
	sessions     studentSessionResolver
	topics       studentTopicStore
	teachers     studentTeacherDirectory
	topicTypes   topicTypeReader
	applications studentApplicationLedger
	tx           txRunner
	cache        *CacheService
	metrics      *MetricsService
	cacheTTL     time.Duration
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
	newTopicID   func() string
}

// NewStudentService constructs a StudentService.
func NewStudentService(params StudentServiceParams) *StudentService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.NewTopicID == nil {
		params.NewTopicID = uuid.NewString
	}
	return &StudentService{
		sessions:     params.Sessions,
		topics:       params.Topics,
		teachers:     params.Teachers,
		topicTypes:   params.TopicTypes,
		applications: params.Applications,
		tx:           params.Tx,
		cache:        params.Cache,
		metrics:      params.Metrics,
		cacheTTL:     params.CacheTTL,
		validator:    params.Validator,
		logger:       params.Logger,
		now:          params.Now,
		newTopicID:   params.NewTopicID,
	}
}

// ListEligibleTopics returns topics whose owning teacher guides the
// student's profession.
func (s *StudentService) ListEligibleTopics(ctx context.Context, accessToken string) (*dto.SelectableTopicsResult, error) {
	student, err := s.sessions.ResolveStudent(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	key := eligibleTopicsKey(student.ProfessionID)
	var cached []models.SelectableTopic
	if hit, _ := s.cache.Get(ctx, key, &cached); hit && cached != nil {
		return &dto.SelectableTopicsResult{Topics: cached}, nil
	}

	topics, err := s.topics.ListSelectable(ctx, student.ProfessionID)
	if err != nil {
		return nil, s.storageError(err, "list eligible topics")
	}
	if topics == nil {
		topics = []models.SelectableTopic{}
	}
	_ = s.cache.Set(ctx, key, topics, s.cacheTTL)
	return &dto.SelectableTopicsResult{Topics: topics}, nil
}

// ListEligibleTeachers returns teachers who guide the student's profession.
func (s *StudentService) ListEligibleTeachers(ctx context.Context, accessToken string) (*dto.SelectableTeachersResult, error) {
	student, err := s.sessions.ResolveStudent(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	key := eligibleTeachersKey(student.ProfessionID)
	var cached []models.Teacher
	if hit, _ := s.cache.Get(ctx, key, &cached); hit && cached != nil {
		return &dto.SelectableTeachersResult{Teachers: cached}, nil
	}

	teachers, err := s.teachers.ListByGuideProfession(ctx, student.ProfessionID)
	if err != nil {
		return nil, s.storageError(err, "list eligible teachers")
	}
	if teachers == nil {
		teachers = []models.Teacher{}
	}
	_ = s.cache.Set(ctx, key, teachers, s.cacheTTL)
	return &dto.SelectableTeachersResult{Teachers: teachers}, nil
}

// ApplyToExistingTopic records a pending application to an existing topic.
func (s *StudentService) ApplyToExistingTopic(ctx context.Context, accessToken string, req dto.ApplyRequest) (*dto.ApplyResult, error) {
	student, err := s.sessions.ResolveStudent(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordWorkflow("apply", outcomeInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	app := s.pendingApplication(student.SID, req.TopicID)
	err = s.insertApplication(ctx, &app)
	s.metrics.RecordWorkflow("apply", outcomeOf(err))
	if err != nil {
		return nil, err
	}
	return &dto.ApplyResult{Application: app}, nil
}

// ProposeAndApplyToNewTopic creates a student proposed topic for the given
// teacher and applies to it. Both rows commit together or not at all.
func (s *StudentService) ProposeAndApplyToNewTopic(ctx context.Context, accessToken string, req dto.ProposeRequest) (*dto.ProposeResult, error) {
	student, err := s.sessions.ResolveStudent(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordWorkflow("propose", outcomeInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid topic payload")
	}

	topic := models.Topic{
		TopicID:      s.newTopicID(),
		TopicName:    req.Topic.TopicName,
		Introduction: req.Topic.Introduction,
		TID:          req.TID,
		TypeID:       req.Topic.TypeID,
		Source:       models.TopicSourceStudent,
	}
	app := s.pendingApplication(student.SID, topic.TopicID)

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rows, err := s.topics.Create(ctx, &topic)
		if err != nil {
			return s.storageError(err, "create topic")
		}
		if rows != 1 {
			return appErrors.ErrNoData
		}
		return s.insertApplication(ctx, &app)
	})
	if err != nil {
		appErr := appErrors.FromError(err)
		s.metrics.RecordWorkflow("propose", outcomeOf(appErr))
		return nil, appErr
	}

	s.metrics.RecordWorkflow("propose", outcomeSuccess)
	s.cache.InvalidateEligibleTopics(ctx)
	return &dto.ProposeResult{Topic: topic, Application: app}, nil
}

// GetMyApprovedTeacher returns the supervisor of the student's assigned topic.
func (s *StudentService) GetMyApprovedTeacher(ctx context.Context, accessToken string) (*dto.TeacherInfoResult, error) {
	student, err := s.sessions.ResolveStudent(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	topic, err := s.assignedTopic(ctx, student.SID)
	if err != nil {
		return nil, err
	}

	teacher, err := s.teachers.FindByID(ctx, topic.TID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoData
		}
		return nil, s.storageError(err, "load approved teacher")
	}
	return &dto.TeacherInfoResult{Teacher: *teacher}, nil
}

// GetMyApprovedTopicWithType returns the student's assigned topic and its type.
func (s *StudentService) GetMyApprovedTopicWithType(ctx context.Context, accessToken string) (*dto.ApprovedTopicResult, error) {
	student, err := s.sessions.ResolveStudent(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	topic, err := s.assignedTopic(ctx, student.SID)
	if err != nil {
		return nil, err
	}

	topicType, err := s.topicTypes.FindByID(ctx, topic.TypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoData
		}
		return nil, s.storageError(err, "load topic type")
	}
	return &dto.ApprovedTopicResult{Topic: *topic, Type: *topicType}, nil
}

// GetApplicationHistory returns one record per application in ledger order,
// each joined with its topic and the owning teacher's name.
func (s *StudentService) GetApplicationHistory(ctx context.Context, accessToken string) (*dto.ApplicationHistoryResult, error) {
	student, err := s.sessions.ResolveStudent(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	apps, err := s.applications.ListByStudent(ctx, student.SID)
	if err != nil {
		return nil, s.storageError(err, "list applications")
	}
	if len(apps) == 0 {
		return nil, appErrors.ErrNoData
	}

	topicIDs := make([]string, 0, len(apps))
	for _, app := range apps {
		topicIDs = appendUnique(topicIDs, app.TopicID)
	}
	topicList, err := s.topics.FindByIDs(ctx, topicIDs)
	if err != nil {
		return nil, s.storageError(err, "load application topics")
	}
	topics := make(map[string]models.Topic, len(topicList))
	teacherIDs := make([]string, 0, len(topicList))
	for _, topic := range topicList {
		topics[topic.TopicID] = topic
		teacherIDs = appendUnique(teacherIDs, topic.TID)
	}

	teacherList, err := s.teachers.FindByIDs(ctx, teacherIDs)
	if err != nil {
		return nil, s.storageError(err, "load application teachers")
	}
	teachers := make(map[string]string, len(teacherList))
	for _, teacher := range teacherList {
		teachers[teacher.TID] = teacher.Name
	}

	records := make([]dto.ApplicationRecord, 0, len(apps))
	for _, app := range apps {
		topic, ok := topics[app.TopicID]
		if !ok {
			return nil, s.storageError(fmt.Errorf("topic %s of application not found", app.TopicID), "load application history")
		}
		name, ok := teachers[topic.TID]
		if !ok {
			return nil, s.storageError(fmt.Errorf("teacher %s of topic %s not found", topic.TID, topic.TopicID), "load application history")
		}
		records = append(records, dto.ApplicationRecord{Topic: topic, TeacherName: name, Application: app})
	}
	return &dto.ApplicationHistoryResult{Records: records}, nil
}

func (s *StudentService) pendingApplication(sid, topicID string) models.Application {
	return models.Application{
		SID:       sid,
		TopicID:   topicID,
		ApplyTime: s.now().UTC(),
		Status:    models.ApplicationStatusPending,
	}
}

func (s *StudentService) insertApplication(ctx context.Context, app *models.Application) error {
	rows, err := s.applications.Create(ctx, app)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			s.logger.Info("duplicate application rejected", zap.String("sid", app.SID), zap.String("topic_id", app.TopicID))
			return appErrors.ErrAlreadyApplied
		}
		return s.storageError(err, "create application")
	}
	if rows != 1 {
		return appErrors.ErrNoData
	}
	return nil
}

func (s *StudentService) assignedTopic(ctx context.Context, sid string) (*models.Topic, error) {
	topics, err := s.topics.ListAssignedToStudent(ctx, sid)
	if err != nil {
		return nil, s.storageError(err, "list assigned topics")
	}
	if len(topics) == 0 {
		return nil, appErrors.ErrNoData
	}
	return &topics[0], nil
}

func (s *StudentService) storageError(err error, action string) error {
	s.logger.Error(action, zap.Error(err))
	return appErrors.Storage(err, action)
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
