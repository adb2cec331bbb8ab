package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/topic-selection-api/internal/models"
)

// TopicTypeRepository reads the topic category lookup.
type TopicTypeRepository struct {
	db *sqlx.DB
}

// NewTopicTypeRepository constructs a TopicTypeRepository.
func NewTopicTypeRepository(db *sqlx.DB) *TopicTypeRepository {
	return &TopicTypeRepository{db: db}
}

// FindByID fetches a topic type. sql.ErrNoRows is returned untouched.
func (r *TopicTypeRepository) FindByID(ctx context.Context, typeID string) (*models.TopicType, error) {
	const query = `SELECT type_id, type_name FROM topic_types WHERE type_id = $1`
	var topicType models.TopicType
	if err := querier(ctx, r.db).GetContext(ctx, &topicType, query, typeID); err != nil {
		return nil, err
	}
	return &topicType, nil
}
