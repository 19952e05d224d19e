package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/techfest-api/internal/models"
	appErrors "github.com/noah-isme/techfest-api/pkg/errors"
	"github.com/noah-isme/techfest-api/pkg/export"
)

// ExportFormat identifies a supported roster export encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var eventExportHeaders = []string{"Title", "Type", "Date", "Location", "Solo Fee", "Team Fee", "Team Event", "Capacity", "Active"}

type eventLister interface {
	List(ctx context.Context) ([]models.Event, error)
}

// ExportService renders the event roster as CSV or PDF for the back office.
type ExportService struct {
	events eventLister
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(events eventLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		events: events,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ExportResult carries rendered bytes plus HTTP presentation hints.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Render produces the event roster in the requested format.
func (s *ExportService) Render(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: eventExportHeaders, Rows: make([]map[string]string, 0, len(events))}
	for _, e := range events {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Title":      e.Title,
			"Type":       string(e.EventType),
			"Date":       e.Date,
			"Location":   e.Location,
			"Solo Fee":   formatFee(e.RegistrationFees.Solo),
			"Team Fee":   formatFee(e.RegistrationFees.Team),
			"Team Event": strconv.FormatBool(e.IsTeamEvent),
			"Capacity":   strconv.Itoa(e.Capacity),
			"Active":     strconv.FormatBool(e.IsActive),
		})
	}

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "events.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, "Event Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "events.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func formatFee(fee float64) string {
	if fee == 0 {
		return "Free"
	}
	return strconv.FormatFloat(fee, 'f', -1, 64)
}
