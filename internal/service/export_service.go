package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/topic-selection-api/internal/dto"
	"github.com/noah-isme/topic-selection-api/internal/models"
	"github.com/noah-isme/topic-selection-api/pkg/export"
	appErrors "github.com/noah-isme/topic-selection-api/pkg/errors"
)

const applicationTimeLayout = "2006-01-02 15:04:05"

var historyHeaders = []string{"Applied At", "Topic ID", "Topic", "Teacher", "Type", "Source", "Status"}

type applicationHistoryProvider interface {
	GetApplicationHistory(ctx context.Context, accessToken string) (*dto.ApplicationHistoryResult, error)
}

// ExportService renders a student's application history as a download.
type ExportService struct {
	history   applicationHistoryProvider
	renderers map[string]export.Renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Without explicit renderers
// csv and pdf are available.
func NewExportService(history applicationHistoryProvider, logger *zap.Logger, renderers ...export.Renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(renderers) == 0 {
		renderers = []export.Renderer{export.NewCSVExporter(), export.NewPDFExporter()}
	}
	byFormat := make(map[string]export.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Extension()] = r
	}
	return &ExportService{history: history, renderers: byFormat, logger: logger, now: time.Now}
}

// ExportApplicationHistory renders the caller's application history in the
// requested format.
func (s *ExportService) ExportApplicationHistory(ctx context.Context, accessToken, format string) (*dto.ExportFile, error) {
	history, err := s.history.GetApplicationHistory(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	body, err := renderer.Render(historyDataset(history))
	if err != nil {
		s.logger.Error("render application history", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to render export")
	}

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("application-history-%s.%s", s.now().UTC().Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func historyDataset(history *dto.ApplicationHistoryResult) export.Dataset {
	rows := make([][]string, 0, len(history.Records))
	for _, record := range history.Records {
		source := "Teacher"
		if record.Topic.Source == models.TopicSourceStudent {
			source = "Student"
		}
		rows = append(rows, []string{
			record.Application.ApplyTime.UTC().Format(applicationTimeLayout),
			record.Topic.TopicID,
			record.Topic.TopicName,
			record.TeacherName,
			record.Topic.TypeID,
			source,
			record.Application.Status.String(),
		})
	}
	return export.Dataset{Title: "Application History", Headers: historyHeaders, Rows: rows}
}
