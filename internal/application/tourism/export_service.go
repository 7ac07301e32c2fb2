package tourism

import (
	"context"
	"fmt"

	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/domain/tourism"
	"github.com/tourdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExportFormat is the document format a client asks for
type ExportFormat string

const (
	ExportFormatPDF   ExportFormat = "pdf"
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatWord  ExportFormat = "word"
)

// IsValid reports whether f is a supported format
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatPDF, ExportFormatExcel, ExportFormatWord:
		return true
	}
	return false
}

// ExportKind names an exportable collection
type ExportKind string

const (
	ExportTours        ExportKind = "tours"
	ExportTourists     ExportKind = "tourists"
	ExportTransactions ExportKind = "transactions"
)

// DateRange is an inclusive YYYY-MM-DD window. An empty bound is open.
type DateRange struct {
	From string
	To   string
}

// Contains reports whether date falls inside the window
func (r *DateRange) Contains(date string) bool {
	if r == nil {
		return true
	}
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// ExportRequest asks for an export of one collection
type ExportRequest struct {
	Format    ExportFormat
	DateRange *DateRange
}

// ExportResult describes the export. No document is produced.
type ExportResult struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Count    int    `json:"count"`
}

// Lister is the read side of a collection
type Lister[T any] interface {
	List() []T
}

// ExportService answers export requests with metadata only
type ExportService struct {
	tours        Lister[tourism.Tour]
	tourists     Lister[tourism.Tourist]
	transactions Lister[tourism.Transaction]
	opts         serviceOptions
}

// NewExportService creates an ExportService
func NewExportService(
	tours Lister[tourism.Tour],
	tourists Lister[tourism.Tourist],
	transactions Lister[tourism.Transaction],
	opts ...Option,
) *ExportService {
	return &ExportService{
		tours:        tours,
		tourists:     tourists,
		transactions: transactions,
		opts:         newServiceOptions(opts),
	}
}

// Export validates the request and counts the records it would include.
// Tours filter on startDate, tourists on bookingDate, transactions on date.
func (s *ExportService) Export(ctx context.Context, kind ExportKind, req ExportRequest) (ExportResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tourism.export", string(kind),
		telemetry.SpanAttrExportKind, string(kind),
		telemetry.SpanAttrFormat, string(req.Format))
	defer span.End()

	if !req.Format.IsValid() {
		err := shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unsupported export format: %q", req.Format))
		telemetry.RecordError(span, err)
		return ExportResult{}, err
	}

	var (
		count int
		err   error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("export", map[string]string{
		telemetry.ProfilingLabelEntity: string(kind),
	}), func(context.Context) {
		count, err = s.count(kind, req.DateRange)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return ExportResult{}, err
	}

	result := ExportResult{
		Message:  fmt.Sprintf("%s exported successfully in %s format", cases.Title(language.English).String(string(kind)), req.Format),
		Filename: fmt.Sprintf("%s-export-%d.%s", kind, s.opts.now().UnixMilli(), req.Format),
		Count:    count,
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCount, count)
	s.opts.metrics.RecordExport(ctx, string(kind), string(req.Format))
	s.opts.log(ctx).Info("Export requested",
		zap.String("entity", string(kind)),
		zap.String("format", string(req.Format)),
		zap.Int("count", count),
	)
	return result, nil
}

func (s *ExportService) count(kind ExportKind, window *DateRange) (int, error) {
	switch kind {
	case ExportTours:
		return countWhere(s.tours.List(), func(t tourism.Tour) bool { return window.Contains(t.StartDate) }), nil
	case ExportTourists:
		return countWhere(s.tourists.List(), func(t tourism.Tourist) bool { return window.Contains(t.BookingDate) }), nil
	case ExportTransactions:
		return countWhere(s.transactions.List(), func(t tourism.Transaction) bool { return window.Contains(t.Date) }), nil
	default:
		return 0, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown export kind: %q", kind))
	}
}

func countWhere[T any](records []T, keep func(T) bool) int {
	n := 0
	for _, r := range records {
		if keep(r) {
			n++
		}
	}
	return n
}
