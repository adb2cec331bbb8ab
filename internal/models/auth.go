package models

import "github.com/golang-jwt/jwt/v5"

// UserRole is the role tag carried by access tokens.
type UserRole string

const (
	RoleStudent UserRole = "Student"
	RoleTeacher UserRole = "Teacher"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the resolved owner of a session. The set of variants is
// closed: StudentIdentity and TeacherIdentity.
type Identity interface {
	Role() UserRole
	isIdentity()
}

// StudentIdentity is a session resolved to a student.
type StudentIdentity struct {
	Student Student
}

// Role implements Identity.
func (StudentIdentity) Role() UserRole { return RoleStudent }

func (StudentIdentity) isIdentity() {}

// TeacherIdentity is a session resolved to a teacher.
type TeacherIdentity struct {
	Teacher Teacher
}

// Role implements Identity.
func (TeacherIdentity) Role() UserRole { return RoleTeacher }

func (TeacherIdentity) isIdentity() {}
