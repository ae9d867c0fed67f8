package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"bridgesched/internal/config"
	"bridgesched/internal/dataprocessing"
	apperrors "bridgesched/internal/errors"
	"bridgesched/internal/exporter"
	"bridgesched/internal/metrics"
	"bridgesched/pkg/contracts/domain"
)

// wireDateFormats are the date layouts the preview grid round-trips.
var wireDateFormats = []string{"1/2/2006", "1/2/06"}

// wireDateFormat is the layout preview responses serialize dates with.
const wireDateFormat = "01/02/2006"

// EntryPayload mirrors InspectionEntry on the wire, with dates as m/d/Y
// strings the editable preview grid can show and send back.
type EntryPayload struct {
	Team           string `json:"team"`
	ScheduledDate  string `json:"scheduled_date" validate:"required"`
	DueDate        string `json:"due_date"`
	PrevDueDate    string `json:"prev_due_date"`
	Region         string `json:"region"`
	County         string `json:"county"`
	BIN            string `json:"bin" validate:"required"`
	FeatureCarried string `json:"feature_carried"`
	FeatureCrossed string `json:"feature_crossed"`
	Access         string `json:"access"`
	Town           string `json:"town"`
	LaneClosed     string `json:"lane_closed" validate:"omitempty,oneof=Y N"`
}

// PreviewResponse is the result of parsing one pasted batch: the entries that
// validated plus the rows that did not.
type PreviewResponse struct {
	Entries []EntryPayload            `json:"entries"`
	Issues  []dataprocessing.RowIssue `json:"errors,omitempty"`
	Count   int                       `json:"count"`
}

// GenerateRequest asks for schedule workbooks from already-previewed entries.
// The entries may have been edited in the preview grid; they are shape
// checked but their booked-access grammar is not re-parsed.
type GenerateRequest struct {
	TeamName     string         `json:"team_name" validate:"required"`
	Entries      []EntryPayload `json:"entries" validate:"required,min=1,dive"`
	OutputDir    string         `json:"output_dir"`
	SaveToSystem bool           `json:"save_to_system"`
}

// ScheduleService runs the schedule pipeline: preview parses and validates
// pasted text, generate buckets entries by week, renders workbooks and
// packages them.
type ScheduleService struct {
	entries   *dataprocessing.EntryValidator
	grouper   *dataprocessing.WeekGrouper
	renderer  *exporter.ScheduleRenderer
	packager  *exporter.BatchPackager
	teams     *TeamService
	validate  *validator.Validate
	collector *metrics.Collector
	logger    *slog.Logger
	outputDir string
}

// NewScheduleService wires the pipeline from configuration.
func NewScheduleService(cfg *config.Config, teams *TeamService, collector *metrics.Collector, logger *slog.Logger) (*ScheduleService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	anchor, err := cfg.Schedule.AnchorWeekday()
	if err != nil {
		return nil, err
	}

	dates := dataprocessing.NewDateParser(cfg.Parser.Year(), cfg.Parser.CenturyBase)
	return &ScheduleService{
		entries: dataprocessing.NewEntryValidator(
			dataprocessing.MasterScheduleLayout, dates, cfg.Schedule.Region, teams.CountyName, logger),
		grouper:   dataprocessing.NewWeekGrouper(anchor),
		renderer:  exporter.NewScheduleRenderer(cfg.Schedule, teams.Contacts(), teams.Teams(), logger),
		packager:  exporter.NewBatchPackager(logger),
		teams:     teams,
		validate:  validator.New(),
		collector: collector,
		logger:    logger.With(slog.String("component", "schedule_service")),
		outputDir: cfg.Paths.OutputDir,
	}, nil
}

// Preview parses pasted master-sheet text into entries, surfacing per-row
// issues inline instead of failing the call. No documents are rendered.
func (s *ScheduleService) Preview(ctx context.Context, rawText string) *PreviewResponse {
	batch := s.entries.ParseBatch(rawText)

	s.collector.PreviewsTotal.Inc()
	s.collector.RowIssuesTotal.Add(float64(len(batch.Issues)))
	s.logger.InfoContext(ctx, "previewed batch",
		slog.Int("entries", len(batch.Entries)),
		slog.Int("issues", len(batch.Issues)))

	payloads := make([]EntryPayload, 0, len(batch.Entries))
	for _, entry := range batch.Entries {
		payloads = append(payloads, toPayload(entry))
	}
	return &PreviewResponse{Entries: payloads, Issues: batch.Issues, Count: len(payloads)}
}

// Generate buckets the submitted entries by week, renders one workbook per
// week and packages the result. Only structural failures are fatal here; a
// failed directory side-write surfaces as a warning on the result.
func (s *ScheduleService) Generate(ctx context.Context, req GenerateRequest) (*domain.BatchResult, error) {
	if err := s.validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		field, message := "request", "is malformed"
		if ok := errors.As(err, &invalid); ok && len(invalid) > 0 {
			field, message = strings.ToLower(invalid[0].Field()), "failed on "+invalid[0].Tag()
		}
		return nil, &apperrors.ValidationError{Field: field, Message: message}
	}

	if _, ok := s.teams.Resolve(req.TeamName); !ok {
		return nil, &apperrors.UnknownTeamError{Name: req.TeamName}
	}

	entries := s.toDomain(ctx, req.Entries, req.TeamName)
	if len(entries) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}

	buckets := s.grouper.Group(entries)
	docs, err := s.renderer.RenderAll(ctx, buckets, req.TeamName)
	if err != nil {
		return nil, err
	}

	result, err := s.packager.Package(docs, s.resolveOutputDir(req))
	if err != nil {
		return nil, err
	}

	s.collector.BatchesTotal.Inc()
	s.collector.DocumentsTotal.Add(float64(len(docs)))
	s.collector.SideWriteFailures.Add(float64(len(result.Warnings)))
	s.logger.InfoContext(ctx, "generated schedule batch",
		slog.String("team", req.TeamName),
		slog.Int("entries", len(entries)),
		slog.Int("weeks", len(buckets)),
		slog.Int("saved", len(result.SavedPaths)),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

// resolveOutputDir returns the side-write directory, or "" when the caller
// did not ask for copies on the server.
func (s *ScheduleService) resolveOutputDir(req GenerateRequest) string {
	if !req.SaveToSystem && req.OutputDir == "" {
		return ""
	}
	if req.OutputDir != "" {
		return req.OutputDir
	}
	return s.outputDir
}

// toDomain converts edited grid payloads back into entries. Payloads missing
// a BIN or a parseable scheduled date are dropped with a warning, matching
// how the grid treats incomplete rows.
func (s *ScheduleService) toDomain(ctx context.Context, payloads []EntryPayload, teamName string) []domain.InspectionEntry {
	entries := make([]domain.InspectionEntry, 0, len(payloads))
	for i, p := range payloads {
		scheduled, ok := parseWireDate(p.ScheduledDate)
		if strings.TrimSpace(p.BIN) == "" || !ok {
			s.logger.WarnContext(ctx, "dropping incomplete entry",
				slog.Int("index", i), slog.String("bin", p.BIN))
			continue
		}

		laneClosed := domain.LaneClosedNo
		if strings.ToUpper(strings.TrimSpace(p.LaneClosed)) == string(domain.LaneClosedYes) {
			laneClosed = domain.LaneClosedYes
		}

		entry := domain.InspectionEntry{
			Team:           teamName,
			ScheduledDate:  scheduled,
			Region:         p.Region,
			County:         strings.TrimSpace(p.County),
			BIN:            strings.TrimSpace(p.BIN),
			FeatureCarried: strings.TrimSpace(p.FeatureCarried),
			FeatureCrossed: strings.TrimSpace(p.FeatureCrossed),
			Access:         strings.TrimSpace(p.Access),
			Town:           strings.TrimSpace(p.Town),
			LaneClosed:     laneClosed,
		}
		if due, ok := parseWireDate(p.DueDate); ok {
			entry.DueDate = &due
		}
		if prev, ok := parseWireDate(p.PrevDueDate); ok {
			entry.PrevDueDate = &prev
		}
		entries = append(entries, entry)
	}
	return entries
}

func toPayload(entry domain.InspectionEntry) EntryPayload {
	due, prev := "", ""
	if entry.DueDate != nil {
		due = entry.DueDate.Format(wireDateFormat)
	}
	if entry.PrevDueDate != nil {
		prev = entry.PrevDueDate.Format(wireDateFormat)
	}
	return EntryPayload{
		Team:           entry.Team,
		ScheduledDate:  entry.ScheduledDate.Format(wireDateFormat),
		DueDate:        due,
		PrevDueDate:    prev,
		Region:         entry.Region,
		County:         entry.County,
		BIN:            entry.BIN,
		FeatureCarried: entry.FeatureCarried,
		FeatureCrossed: entry.FeatureCrossed,
		Access:         entry.Access,
		Town:           entry.Town,
		LaneClosed:     string(entry.LaneClosed),
	}
}

// parseWireDate parses an m/d/Y or m/d/y grid date. "-" and "" mean absent.
func parseWireDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "-" {
		return time.Time{}, false
	}
	for _, layout := range wireDateFormats {
		if d, err := time.Parse(layout, value); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
