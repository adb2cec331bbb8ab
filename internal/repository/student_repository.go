package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/topic-selection-api/internal/models"
)

// StudentRepository reads student identity records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID fetches a student by sid. sql.ErrNoRows is returned untouched.
func (r *StudentRepository) FindByID(ctx context.Context, sid string) (*models.Student, error) {
	const query = `SELECT sid, name, profession_id FROM students WHERE sid = $1`
	var student models.Student
	if err := querier(ctx, r.db).GetContext(ctx, &student, query, sid); err != nil {
		return nil, err
	}
	return &student, nil
}
