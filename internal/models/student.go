package models

// Student is a learner who may apply to topics supervised by teachers of
// the same profession.
type Student struct {
	SID          string `db:"sid" json:"sid"`
	Name         string `db:"name" json:"name"`
	ProfessionID string `db:"profession_id" json:"professionId"`
}
