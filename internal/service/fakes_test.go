package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/topic-selection-api/internal/models"
	"github.com/noah-isme/topic-selection-api/internal/repository"
	appErrors "github.com/noah-isme/topic-selection-api/pkg/errors"
)

const testSecret = "test-secret"

// memDB is an in-memory stand-in for the five tables.
type memDB struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	students map[string]models.Student
	teachers map[string]models.Teacher
	types    map[string]models.TopicType
	topics   map[string]models.Topic
	apps     []models.Application

	failTopicCreate error
	failAppCreate   error
	lookupErr       error
	topicRowsZero   bool

	selectableCalls int

	inTx bool
	undo []func()
}

func newMemDB() *memDB {
	db := &memDB{
		students: map[string]models.Student{
			"s1": {SID: "s1", Name: "Ana", ProfessionID: "cs"},
			"s2": {SID: "s2", Name: "Bayu", ProfessionID: "math"},
			"s3": {SID: "s3", Name: "Cahya", ProfessionID: "bio"},
		},
		teachers: map[string]models.Teacher{
			"t1": {TID: "t1", Name: "Budi", GuideProfessionID: "cs"},
			"t2": {TID: "t2", Name: "Citra", GuideProfessionID: "cs"},
			"t3": {TID: "t3", Name: "Dewi", GuideProfessionID: "math"},
		},
		types: map[string]models.TopicType{
			"ty1": {TypeID: "ty1", TypeName: "Research"},
			"ty2": {TypeID: "ty2", TypeName: "Engineering"},
		},
		topics: map[string]models.Topic{},
	}
	db.addTopic(models.Topic{TopicID: "tp1", TopicName: "Compilers", TID: "t1", TypeID: "ty1", Source: models.TopicSourceTeacher})
	db.addTopic(models.Topic{TopicID: "tp2", TopicName: "Databases", TID: "t2", TypeID: "ty2", Source: models.TopicSourceTeacher})
	db.addTopic(models.Topic{TopicID: "tp3", TopicName: "Networks", TID: "t1", TypeID: "ty1", Source: models.TopicSourceTeacher})
	db.addTopic(models.Topic{TopicID: "tp4", TopicName: "Topology", TID: "t3", TypeID: "ty2", Source: models.TopicSourceTeacher})
	return db
}

func (db *memDB) addTopic(topic models.Topic) {
	db.topics[topic.TopicID] = topic
}

func (db *memDB) topicCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.topics)
}

func (db *memDB) applicationCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.apps)
}

// RunInTx serialises transactions and replays the undo journal when fn fails.
func (db *memDB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.Lock()
	db.inTx = true
	db.undo = nil
	db.mu.Unlock()

	err := fn(ctx)

	db.mu.Lock()
	defer db.mu.Unlock()
	if err != nil {
		for i := len(db.undo) - 1; i >= 0; i-- {
			db.undo[i]()
		}
	}
	db.inTx = false
	db.undo = nil
	return err
}

// journal must be called with mu held.
func (db *memDB) journal(undo func()) {
	if db.inTx {
		db.undo = append(db.undo, undo)
	}
}

type memStudents struct{ db *memDB }

func (r memStudents) FindByID(ctx context.Context, sid string) (*models.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.lookupErr != nil {
		return nil, r.db.lookupErr
	}
	s, ok := r.db.students[sid]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

type memTeachers struct{ db *memDB }

func (r memTeachers) FindByID(ctx context.Context, tid string) (*models.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.lookupErr != nil {
		return nil, r.db.lookupErr
	}
	t, ok := r.db.teachers[tid]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (r memTeachers) FindByIDs(ctx context.Context, tids []string) ([]models.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Teacher{}
	for _, id := range tids {
		if t, ok := r.db.teachers[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r memTeachers) ListByGuideProfession(ctx context.Context, professionID string) ([]models.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Teacher{}
	for _, t := range r.db.teachers {
		if t.GuideProfessionID == professionID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memTopicTypes struct{ db *memDB }

func (r memTopicTypes) FindByID(ctx context.Context, typeID string) (*models.TopicType, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.types[typeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

type memTopics struct{ db *memDB }

func (r memTopics) ListSelectable(ctx context.Context, professionID string) ([]models.SelectableTopic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.selectableCalls++
	out := []models.SelectableTopic{}
	for _, topic := range r.db.topics {
		teacher := r.db.teachers[topic.TID]
		if teacher.GuideProfessionID != professionID {
			continue
		}
		st := models.SelectableTopic{
			TopicID:     topic.TopicID,
			TopicName:   topic.TopicName,
			TypeID:      topic.TypeID,
			TID:         topic.TID,
			TeacherName: teacher.Name,
			Source:      topic.Source,
		}
		if ty, ok := r.db.types[topic.TypeID]; ok {
			name := ty.TypeName
			st.TypeName = &name
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicID < out[j].TopicID })
	return out, nil
}

func (r memTopics) Create(ctx context.Context, topic *models.Topic) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failTopicCreate != nil {
		return 0, r.db.failTopicCreate
	}
	if r.db.topicRowsZero {
		return 0, nil
	}
	if _, exists := r.db.topics[topic.TopicID]; exists {
		return 0, fmt.Errorf("create topic %s: %w", topic.TopicID, repository.ErrUniqueViolation)
	}
	r.db.topics[topic.TopicID] = *topic
	id := topic.TopicID
	r.db.journal(func() { delete(r.db.topics, id) })
	return 1, nil
}

func (r memTopics) FindByID(ctx context.Context, topicID string) (*models.Topic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.topics[topicID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (r memTopics) FindByIDs(ctx context.Context, topicIDs []string) ([]models.Topic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Topic{}
	for _, id := range topicIDs {
		if t, ok := r.db.topics[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r memTopics) ListAssignedToStudent(ctx context.Context, sid string) ([]models.Topic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	applied := map[string]time.Time{}
	for _, app := range r.db.apps {
		if app.SID == sid {
			applied[app.TopicID] = app.ApplyTime
		}
	}
	out := []models.Topic{}
	for _, t := range r.db.topics {
		if t.SID != nil && *t.SID == sid {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := applied[out[i].TopicID], applied[out[j].TopicID]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].TopicID < out[j].TopicID
	})
	return out, nil
}

func (r memTopics) ListByTeacher(ctx context.Context, tid string) ([]models.Topic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Topic{}
	for _, t := range r.db.topics {
		if t.TID == tid {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicID < out[j].TopicID })
	return out, nil
}

func (r memTopics) AssignStudent(ctx context.Context, topicID, sid string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.topics[topicID]
	if !ok || t.SID != nil {
		return 0, nil
	}
	t.SID = &sid
	r.db.topics[topicID] = t
	r.db.journal(func() {
		prev := r.db.topics[topicID]
		prev.SID = nil
		r.db.topics[topicID] = prev
	})
	return 1, nil
}

type memApplications struct{ db *memDB }

func (r memApplications) Create(ctx context.Context, app *models.Application) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failAppCreate != nil {
		return 0, r.db.failAppCreate
	}
	for _, existing := range r.db.apps {
		if existing.SID == app.SID && existing.TopicID == app.TopicID {
			return 0, fmt.Errorf("create application: %w", repository.ErrUniqueViolation)
		}
	}
	n := len(r.db.apps)
	r.db.apps = append(r.db.apps, *app)
	r.db.journal(func() { r.db.apps = r.db.apps[:n] })
	return 1, nil
}

func (r memApplications) ListByStudent(ctx context.Context, sid string) ([]models.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Application{}
	for _, app := range r.db.apps {
		if app.SID == sid {
			out = append(out, app)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ApplyTime.Equal(out[j].ApplyTime) {
			return out[i].ApplyTime.Before(out[j].ApplyTime)
		}
		return out[i].TopicID < out[j].TopicID
	})
	return out, nil
}

func (r memApplications) FindByKey(ctx context.Context, sid, topicID string) (*models.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, app := range r.db.apps {
		if app.SID == sid && app.TopicID == topicID {
			found := app
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memApplications) ListPendingByTeacher(ctx context.Context, tid string) ([]models.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Application{}
	for _, app := range r.db.apps {
		if app.Status == models.ApplicationStatusPending && r.db.topics[app.TopicID].TID == tid {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r memApplications) UpdateStatus(ctx context.Context, sid, topicID string, from, to models.ApplicationStatus) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, app := range r.db.apps {
		if app.SID == sid && app.TopicID == topicID && app.Status == from {
			r.db.apps[i].Status = to
			idx := i
			r.db.journal(func() { r.db.apps[idx].Status = from })
			return 1, nil
		}
	}
	return 0, nil
}

// memCache is an in-memory CacheRepository.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// stepClock returns base, base+1m, base+2m, ...
type stepClock struct {
	mu   sync.Mutex
	next time.Time
}

func newStepClock() *stepClock {
	return &stepClock{next: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Minute)
	return now
}

func signToken(t *testing.T, secret, userID string, role models.UserRole, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &models.JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func studentToken(t *testing.T, sid string) string {
	return signToken(t, testSecret, sid, models.RoleStudent, time.Hour)
}

func teacherToken(t *testing.T, tid string) string {
	return signToken(t, testSecret, tid, models.RoleTeacher, time.Hour)
}

type fixture struct {
	db       *memDB
	sessions *SessionService
	students *StudentService
	teachers *TeacherService
	cache    *memCache
	metrics  *MetricsService
	clock    *stepClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	sessions := NewSessionService(memStudents{db}, memTeachers{db}, nil, SessionConfig{Secret: testSecret})
	cache := newMemCache()
	metrics := NewMetricsService()
	cacheSvc := NewCacheService(cache, metrics, time.Minute, nil, true)
	clock := newStepClock()

	students := NewStudentService(StudentServiceParams{
		Sessions:     sessions,
		Topics:       memTopics{db},
		Teachers:     memTeachers{db},
		TopicTypes:   memTopicTypes{db},
		Applications: memApplications{db},
		Tx:           db,
		Cache:        cacheSvc,
		Metrics:      metrics,
		Now:          clock.Now,
	})
	teachers := NewTeacherService(sessions, memTopics{db}, memApplications{db}, db, cacheSvc, metrics, nil, nil)

	return &fixture{db: db, sessions: sessions, students: students, teachers: teachers, cache: cache, metrics: metrics, clock: clock}
}
