package models

// TopicSource records who authored a topic.
type TopicSource string

const (
	TopicSourceTeacher TopicSource = "0"
	TopicSourceStudent TopicSource = "1"
)

// Topic is a research topic owned by exactly one teacher. SID is set once a
// teacher approves a student's application to it.
type Topic struct {
	TopicID      string      `db:"topic_id" json:"topicId"`
	TopicName    string      `db:"topic_name" json:"topicName"`
	Introduction string      `db:"introduction" json:"introduction"`
	TID          string      `db:"tid" json:"tid"`
	TypeID       string      `db:"type_id" json:"typeId"`
	Source       TopicSource `db:"source" json:"source"`
	SID          *string     `db:"sid" json:"sid,omitempty"`
}

// TopicType is the category lookup referenced by Topic.TypeID.
type TopicType struct {
	TypeID   string `db:"type_id" json:"typeId"`
	TypeName string `db:"type_name" json:"typeName"`
}

// SelectableTopic is a topic joined with its teacher and type names, as
// shown to students browsing the catalogue.
type SelectableTopic struct {
	TopicID      string      `db:"topic_id" json:"topicId"`
	TopicName    string      `db:"topic_name" json:"topicName"`
	Introduction string      `db:"introduction" json:"introduction"`
	TypeID       string      `db:"type_id" json:"typeId"`
	TypeName     *string     `db:"type_name" json:"typeName,omitempty"`
	TID          string      `db:"tid" json:"tid"`
	TeacherName  string      `db:"teacher_name" json:"teacherName"`
	Source       TopicSource `db:"source" json:"source"`
}
