package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
	"github.com/noah-isme/enare-prep-api/pkg/export"
)

// Report formats accepted by the history export.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

var historyReportHeaders = []string{"Date", "Subject", "Topic", "Correct", "Total", "Percentage", "Performance", "Next Review"}

type reportFileStore interface {
	Save(filename string, data []byte) (string, error)
}

// ReportFile is a rendered history report ready for download.
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders the study history into downloadable report files.
type ExportService struct {
	sessions sessionReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	files    reportFileStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(sessions sessionReader, files reportFileStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sessions: sessions,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		files:    files,
		logger:   logger,
		now:      time.Now,
	}
}

// HistoryReport renders the full history, newest first, in the requested
// format, persists a copy under the exports directory and returns the bytes.
func (s *ExportService) HistoryReport(ctx context.Context, format string) (*ReportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	sessions, err := s.sessions.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	dataset := historyDataset(sessions)

	var data []byte
	contentType := "text/csv"
	switch format {
	case ReportFormatCSV:
		data, err = s.csv.Render(dataset)
	case ReportFormatPDF:
		data, err = s.pdf.Render(dataset, "Study History")
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render history report")
	}

	name := fmt.Sprintf("history_%s_%s.%s", s.now().UTC().Format(models.DateLayout), shortID(), format)
	if s.files != nil {
		if _, err := s.files.Save(name, data); err != nil {
			s.logger.Warn("failed to persist history report", zap.String("file", name), zap.Error(err))
		}
	}

	return &ReportFile{Name: name, ContentType: contentType, Data: data}, nil
}

func historyDataset(sessions []models.StudySession) export.Dataset {
	ordered := append([]models.StudySession(nil), sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date)
	})

	rows := make([]map[string]string, 0, len(ordered))
	for _, session := range ordered {
		rows = append(rows, map[string]string{
			"Date":        session.Date.String(),
			"Subject":     session.SubjectName,
			"Topic":       session.Topic,
			"Correct":     strconv.Itoa(session.Correct),
			"Total":       strconv.Itoa(session.Total),
			"Percentage":  strconv.Itoa(session.Percentage) + "%",
			"Performance": string(session.Performance),
			"Next Review": session.NextReview.String(),
		})
	}
	return export.Dataset{Headers: historyReportHeaders, Rows: rows}
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
