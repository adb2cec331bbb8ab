package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/topic-selection-api/internal/models"
)

const topicColumns = `t.topic_id, t.topic_name, t.introduction, t.tid, t.type_id, t.source, t.sid`

// TopicRepository manages the topic catalogue.
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository constructs a TopicRepository.
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// ListSelectable returns topics owned by teachers who guide the given
// profession, joined with teacher and type names.
func (r *TopicRepository) ListSelectable(ctx context.Context, professionID string) ([]models.SelectableTopic, error) {
	const query = `SELECT t.topic_id, t.topic_name, t.introduction, t.type_id, ty.type_name, t.tid, te.name AS teacher_name, t.source
        FROM topics t
        JOIN teachers te ON te.tid = t.tid
        LEFT JOIN topic_types ty ON ty.type_id = t.type_id
        WHERE te.guide_profession_id = $1
        ORDER BY te.name, t.topic_name, t.topic_id`
	topics := []models.SelectableTopic{}
	if err := querier(ctx, r.db).SelectContext(ctx, &topics, query, professionID); err != nil {
		return nil, fmt.Errorf("list selectable topics: %w", err)
	}
	return topics, nil
}

// Create inserts a topic and reports the affected row count.
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) (int64, error) {
	const query = `INSERT INTO topics (topic_id, topic_name, introduction, tid, type_id, source, sid)
        VALUES (:topic_id, :topic_name, :introduction, :tid, :type_id, :source, :sid)`
	res, err := querier(ctx, r.db).NamedExecContext(ctx, query, topic)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("create topic %s: %w", topic.TopicID, ErrUniqueViolation)
		}
		return 0, fmt.Errorf("create topic: %w", err)
	}
	return res.RowsAffected()
}

// FindByID fetches a topic. sql.ErrNoRows is returned untouched.
func (r *TopicRepository) FindByID(ctx context.Context, topicID string) (*models.Topic, error) {
	const query = `SELECT ` + topicColumns + ` FROM topics t WHERE t.topic_id = $1`
	var topic models.Topic
	if err := querier(ctx, r.db).GetContext(ctx, &topic, query, topicID); err != nil {
		return nil, err
	}
	return &topic, nil
}

// FindByIDs returns the topics with the given ids in no particular order.
func (r *TopicRepository) FindByIDs(ctx context.Context, topicIDs []string) ([]models.Topic, error) {
	topics := []models.Topic{}
	if len(topicIDs) == 0 {
		return topics, nil
	}
	const query = `SELECT ` + topicColumns + ` FROM topics t WHERE t.topic_id = ANY($1)`
	if err := querier(ctx, r.db).SelectContext(ctx, &topics, query, pq.Array(topicIDs)); err != nil {
		return nil, fmt.Errorf("find topics by id: %w", err)
	}
	return topics, nil
}

// ListAssignedToStudent returns topics approved for the student, most
// recently applied first, ties broken by topic id.
func (r *TopicRepository) ListAssignedToStudent(ctx context.Context, sid string) ([]models.Topic, error) {
	const query = `SELECT ` + topicColumns + `
        FROM topics t
        LEFT JOIN applications a ON a.topic_id = t.topic_id AND a.sid = t.sid
        WHERE t.sid = $1
        ORDER BY a.apply_time DESC NULLS LAST, t.topic_id`
	topics := []models.Topic{}
	if err := querier(ctx, r.db).SelectContext(ctx, &topics, query, sid); err != nil {
		return nil, fmt.Errorf("list assigned topics: %w", err)
	}
	return topics, nil
}

// ListByTeacher returns topics owned by the teacher.
func (r *TopicRepository) ListByTeacher(ctx context.Context, tid string) ([]models.Topic, error) {
	const query = `SELECT ` + topicColumns + ` FROM topics t WHERE t.tid = $1 ORDER BY t.topic_name, t.topic_id`
	topics := []models.Topic{}
	if err := querier(ctx, r.db).SelectContext(ctx, &topics, query, tid); err != nil {
		return nil, fmt.Errorf("list teacher topics: %w", err)
	}
	return topics, nil
}

// AssignStudent sets the approved student on a topic that has none yet and
// reports the affected row count; zero means the topic was already taken.
func (r *TopicRepository) AssignStudent(ctx context.Context, topicID, sid string) (int64, error) {
	const query = `UPDATE topics SET sid = $1 WHERE topic_id = $2 AND sid IS NULL`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, sid, topicID)
	if err != nil {
		return 0, fmt.Errorf("assign topic %s: %w", topicID, err)
	}
	return res.RowsAffected()
}
