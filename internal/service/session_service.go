package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/topic-selection-api/internal/models"
	appErrors "github.com/noah-isme/topic-selection-api/pkg/errors"
)

type sessionStudentReader interface {
	FindByID(ctx context.Context, sid string) (*models.Student, error)
}

type sessionTeacherReader interface {
	FindByID(ctx context.Context, tid string) (*models.Teacher, error)
}

// SessionConfig holds the access token verification settings.
type SessionConfig struct {
	Secret string
	Issuer string
}

// SessionService turns access tokens into identities and enforces the role
// an operation requires.
type SessionService struct {
	students sessionStudentReader
	teachers sessionTeacherReader
	logger   *zap.Logger
	config   SessionConfig
}

// NewSessionService constructs a SessionService.
func NewSessionService(students sessionStudentReader, teachers sessionTeacherReader, logger *zap.Logger, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{students: students, teachers: teachers, logger: logger, config: config}
}

// Resolve validates the token and loads the identity for the required role.
func (s *SessionService) Resolve(ctx context.Context, accessToken string, role models.UserRole) (models.Identity, error) {
	claims, err := s.parse(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, appErrors.ErrForbidden
	}

	switch role {
	case models.RoleStudent:
		student, err := s.students.FindByID(ctx, claims.UserID)
		if err != nil {
			return nil, s.lookupError(err, "load student")
		}
		return models.StudentIdentity{Student: *student}, nil
	case models.RoleTeacher:
		teacher, err := s.teachers.FindByID(ctx, claims.UserID)
		if err != nil {
			return nil, s.lookupError(err, "load teacher")
		}
		return models.TeacherIdentity{Teacher: *teacher}, nil
	default:
		return nil, appErrors.ErrForbidden
	}
}

// ResolveStudent resolves a session that must belong to a student.
func (s *SessionService) ResolveStudent(ctx context.Context, accessToken string) (*models.Student, error) {
	identity, err := s.Resolve(ctx, accessToken, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	student, ok := identity.(models.StudentIdentity)
	if !ok {
		return nil, appErrors.ErrForbidden
	}
	return &student.Student, nil
}

// ResolveTeacher resolves a session that must belong to a teacher.
func (s *SessionService) ResolveTeacher(ctx context.Context, accessToken string) (*models.Teacher, error) {
	identity, err := s.Resolve(ctx, accessToken, models.RoleTeacher)
	if err != nil {
		return nil, err
	}
	teacher, ok := identity.(models.TeacherIdentity)
	if !ok {
		return nil, appErrors.ErrForbidden
	}
	return &teacher.Teacher, nil
}

func (s *SessionService) parse(accessToken string) (*models.JWTClaims, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, appErrors.ErrUnauthorized
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(accessToken, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		s.logger.Debug("rejected access token", zap.Error(err))
		return nil, appErrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

func (s *SessionService) lookupError(err error, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.ErrUnauthorized
	}
	s.logger.Error(action, zap.Error(err))
	return appErrors.Storage(err, action)
}
