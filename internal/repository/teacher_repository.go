package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/topic-selection-api/internal/models"
)

const teacherColumns = `tid, name, guide_profession_id, phone, email, topic_demand`

// TeacherRepository is the read side of the teacher directory.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID fetches a teacher by tid. sql.ErrNoRows is returned untouched.
func (r *TeacherRepository) FindByID(ctx context.Context, tid string) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE tid = $1`
	var teacher models.Teacher
	if err := querier(ctx, r.db).GetContext(ctx, &teacher, query, tid); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByIDs returns the teachers with the given ids in no particular order.
func (r *TeacherRepository) FindByIDs(ctx context.Context, tids []string) ([]models.Teacher, error) {
	teachers := []models.Teacher{}
	if len(tids) == 0 {
		return teachers, nil
	}
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE tid = ANY($1)`
	if err := querier(ctx, r.db).SelectContext(ctx, &teachers, query, pq.Array(tids)); err != nil {
		return nil, fmt.Errorf("find teachers by id: %w", err)
	}
	return teachers, nil
}

// ListByGuideProfession returns teachers eligible to supervise the given
// profession ordered by name.
func (r *TeacherRepository) ListByGuideProfession(ctx context.Context, professionID string) ([]models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE guide_profession_id = $1 ORDER BY name, tid`
	teachers := []models.Teacher{}
	if err := querier(ctx, r.db).SelectContext(ctx, &teachers, query, professionID); err != nil {
		return nil, fmt.Errorf("list teachers by profession: %w", err)
	}
	return teachers, nil
}
