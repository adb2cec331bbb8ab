package models

// Teacher represents a supervisor. GuideProfessionID names the student
// cohort the teacher may supervise.
type Teacher struct {
	TID               string  `db:"tid" json:"tid"`
	Name              string  `db:"name" json:"name"`
	GuideProfessionID string  `db:"guide_profession_id" json:"guideProfessionId"`
	Phone             *string `db:"phone" json:"phone,omitempty"`
	Email             *string `db:"email" json:"email,omitempty"`
	TopicDemand       *string `db:"topic_demand" json:"topicDemand,omitempty"`
}
