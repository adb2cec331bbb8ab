package models

import "time"

// ApplicationStatus is stored as a single character code.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "0"
	ApplicationStatusApproved ApplicationStatus = "1"
	ApplicationStatusRejected ApplicationStatus = "2"
)

// String returns a human readable label.
func (s ApplicationStatus) String() string {
	switch s {
	case ApplicationStatusPending:
		return "Pending"
	case ApplicationStatusApproved:
		return "Approved"
	case ApplicationStatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Application is a student's request to work on a topic. (SID, TopicID) is
// unique.
type Application struct {
	SID       string            `db:"sid" json:"sid"`
	TopicID   string            `db:"topic_id" json:"topicId"`
	ApplyTime time.Time         `db:"apply_time" json:"applyTime"`
	Status    ApplicationStatus `db:"status" json:"status"`
}
