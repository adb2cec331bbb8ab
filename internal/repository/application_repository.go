package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/topic-selection-api/internal/models"
)

const applicationColumns = `a.sid, a.topic_id, a.apply_time, a.status`

// ApplicationRepository is the application ledger. Uniqueness of
// (sid, topic_id) is enforced by the table's primary key.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts an application and reports the affected row count. A
// second application for the same pair yields ErrUniqueViolation.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	if app.ApplyTime.IsZero() {
		app.ApplyTime = time.Now().UTC()
	}
	const query = `INSERT INTO applications (sid, topic_id, apply_time, status)
        VALUES (:sid, :topic_id, :apply_time, :status)`
	res, err := querier(ctx, r.db).NamedExecContext(ctx, query, app)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("create application %s/%s: %w", app.SID, app.TopicID, ErrUniqueViolation)
		}
		return 0, fmt.Errorf("create application: %w", err)
	}
	return res.RowsAffected()
}

// ListByStudent returns the student's applications oldest first.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, sid string) ([]models.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications a WHERE a.sid = $1 ORDER BY a.apply_time, a.topic_id`
	apps := []models.Application{}
	if err := querier(ctx, r.db).SelectContext(ctx, &apps, query, sid); err != nil {
		return nil, fmt.Errorf("list student applications: %w", err)
	}
	return apps, nil
}

// FindByKey fetches one application. sql.ErrNoRows is returned untouched.
func (r *ApplicationRepository) FindByKey(ctx context.Context, sid, topicID string) (*models.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications a WHERE a.sid = $1 AND a.topic_id = $2`
	var app models.Application
	if err := querier(ctx, r.db).GetContext(ctx, &app, query, sid, topicID); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListPendingByTeacher returns pending applications against the teacher's
// topics, oldest first.
func (r *ApplicationRepository) ListPendingByTeacher(ctx context.Context, tid string) ([]models.Application, error) {
	const query = `SELECT ` + applicationColumns + `
        FROM applications a
        JOIN topics t ON t.topic_id = a.topic_id
        WHERE t.tid = $1 AND a.status = $2
        ORDER BY a.apply_time, a.sid`
	apps := []models.Application{}
	if err := querier(ctx, r.db).SelectContext(ctx, &apps, query, tid, models.ApplicationStatusPending); err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus moves an application from one status to another and reports
// the affected row count; zero means it was not in the expected status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, sid, topicID string, from, to models.ApplicationStatus) (int64, error) {
	const query = `UPDATE applications SET status = $1 WHERE sid = $2 AND topic_id = $3 AND status = $4`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, to, sid, topicID, from)
	if err != nil {
		return 0, fmt.Errorf("update application status: %w", err)
	}
	return res.RowsAffected()
}
