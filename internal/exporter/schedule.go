package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"bridgesched/internal/config"
	"bridgesched/pkg/contracts/domain"
)

// Worksheet geometry of the weekly schedule template. The block above the
// data table holds the headings, contacts, teams and access legend; the data
// table header sits on row 24 with entries below it.
const (
	templateLastRow = 22
	spacerRow       = 23
	tableHeaderRow  = 24
	dataStartRow    = 25
	gridLastRow     = 148
	tableLastCol    = 11
)

var tableHeaders = []string{
	"TEAM", "SCHEDULED DATE", "DUE DATE", "REGION", "COUNTY", "BIN",
	"FEATURE CARRIED", "FEATURE CROSSED", "ACCESS", "TOWN/LOC", "LANE CLOSED",
}

var columnWidths = map[string]float64{
	"A": 14.1, "B": 18, "C": 18, "D": 13.6, "E": 17.1, "F": 16.1,
	"G": 29.7, "H": 34, "I": 25.5, "J": 20.6, "K": 15, "L": 13,
	"M": 13, "N": 13, "O": 13, "P": 13, "Q": 13, "R": 13, "S": 13,
}

// contactRows pairs a name row with its phone row in the contacts block.
var contactRows = [][2]int{{5, 6}, {8, 9}, {11, 12}, {14, 15}, {17, 18}, {20, 21}}

var accessLegend = []string{
	"W = Walking",
	"SL = Step Ladder",
	"EL = Extension Ladder",
	"BT = Bucket Truck",
	"UB = Under Bridge Unit",
}

// ScheduleRenderer lays out one weekly schedule workbook per week bucket.
// Each render builds its own workbook and style set, so buckets render
// independently and in parallel.
type ScheduleRenderer struct {
	cfg      config.ScheduleConfig
	contacts []domain.Personnel
	teams    []domain.Team
	logger   *slog.Logger
}

// NewScheduleRenderer creates a renderer using the given template text and
// the directory content printed in the schedule header.
func NewScheduleRenderer(cfg config.ScheduleConfig, contacts []domain.Personnel, teams []domain.Team, logger *slog.Logger) *ScheduleRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleRenderer{
		cfg:      cfg,
		contacts: contacts,
		teams:    teams,
		logger:   logger.With(slog.String("component", "schedule_renderer")),
	}
}

// styleSet holds the workbook style IDs, built once per workbook and shared
// across every cell that uses them.
type styleSet struct {
	border       int
	title        int
	titleRight   int
	titleDate    int
	normal       int
	normalCenter int
	normalRight  int
	tableHeader  int
	tableCell    int
	tableDate    int
	laneClosed   int
}

// Filename returns the deterministic file name for one team's weekly
// schedule.
func (r *ScheduleRenderer) Filename(teamName string, weekStart time.Time) string {
	return fmt.Sprintf("%s Region %s Bridge Inspection Weekly Schedule - Week of %s.xlsx",
		teamName, r.cfg.Region, weekStart.Format("1-2-06"))
}

// Render produces the workbook for one week bucket.
func (r *ScheduleRenderer) Render(bucket domain.WeekBucket, teamName string) (*domain.RenderedDocument, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Region " + r.cfg.Region
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build styles: %w", err)
	}

	if err := r.layoutTemplate(f, sheet, styles, bucket); err != nil {
		return nil, err
	}
	if err := r.writeEntries(f, sheet, styles, bucket.Entries); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	r.logger.Debug("rendered weekly schedule",
		slog.String("team", teamName),
		slog.Time("week_start", bucket.Start),
		slog.Int("entries", len(bucket.Entries)))

	return &domain.RenderedDocument{
		Filename:    r.Filename(teamName, bucket.Start),
		ContentType: domain.ContentTypeXLSX,
		WeekStart:   bucket.Start,
		Content:     buf.Bytes(),
	}, nil
}

// RenderAll renders every bucket, fanning the independent renders out across
// goroutines and returning documents in bucket order.
func (r *ScheduleRenderer) RenderAll(ctx context.Context, buckets []domain.WeekBucket, teamName string) ([]domain.RenderedDocument, error) {
	docs := make([]domain.RenderedDocument, len(buckets))
	g, _ := errgroup.WithContext(ctx)
	for i, bucket := range buckets {
		i, bucket := i, bucket
		g.Go(func() error {
			doc, err := r.Render(bucket, teamName)
			if err != nil {
				return fmt.Errorf("week of %s: %w", bucket.Start.Format("01/02/2006"), err)
			}
			docs[i] = *doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	titleFont := &excelize.Font{Family: "Arial", Size: 9, Bold: true}
	normalFont := &excelize.Font{Family: "Arial", Size: 9}
	tableFont := &excelize.Font{Family: "Arial", Size: 10}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	dateFmt := "mm/dd/yy"

	var (
		s   styleSet
		err error
	)
	if s.border, err = f.NewStyle(&excelize.Style{Border: thin}); err != nil {
		return nil, err
	}
	if s.title, err = f.NewStyle(&excelize.Style{Border: thin, Font: titleFont}); err != nil {
		return nil, err
	}
	if s.titleRight, err = f.NewStyle(&excelize.Style{Border: thin, Font: titleFont, Alignment: &excelize.Alignment{Horizontal: "right"}}); err != nil {
		return nil, err
	}
	if s.titleDate, err = f.NewStyle(&excelize.Style{Border: thin, Font: titleFont, Alignment: center, CustomNumFmt: &dateFmt}); err != nil {
		return nil, err
	}
	if s.normal, err = f.NewStyle(&excelize.Style{Border: thin, Font: normalFont}); err != nil {
		return nil, err
	}
	if s.normalCenter, err = f.NewStyle(&excelize.Style{Border: thin, Font: normalFont, Alignment: center}); err != nil {
		return nil, err
	}
	if s.normalRight, err = f.NewStyle(&excelize.Style{Border: thin, Font: normalFont, Alignment: &excelize.Alignment{Horizontal: "right"}}); err != nil {
		return nil, err
	}
	if s.tableHeader, err = f.NewStyle(&excelize.Style{Border: thin, Font: tableFont, Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}}); err != nil {
		return nil, err
	}
	if s.tableCell, err = f.NewStyle(&excelize.Style{Border: thin, Font: tableFont, Alignment: center}); err != nil {
		return nil, err
	}
	if s.tableDate, err = f.NewStyle(&excelize.Style{Border: thin, Font: tableFont, Alignment: center, CustomNumFmt: &dateFmt}); err != nil {
		return nil, err
	}
	if s.laneClosed, err = f.NewStyle(&excelize.Style{
		Border:    thin,
		Font:      tableFont,
		Alignment: center,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEB9C"}},
	}); err != nil {
		return nil, err
	}
	return &s, nil
}

// layoutTemplate writes everything above the data rows: dimensions, border
// grid, headings, contacts, teams, access legend and the table header.
func (r *ScheduleRenderer) layoutTemplate(f *excelize.File, sheet string, s *styleSet, bucket domain.WeekBucket) error {
	for col, width := range columnWidths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	for row := 1; row <= templateLastRow; row++ {
		if err := f.SetRowHeight(sheet, row, 12.75); err != nil {
			return fmt.Errorf("failed to set row height: %w", err)
		}
	}
	if err := f.SetRowHeight(sheet, spacerRow, 4.5); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, tableHeaderRow, 30); err != nil {
		return err
	}
	for row := dataStartRow; row <= gridLastRow+11; row++ {
		if err := f.SetRowHeight(sheet, row, 15); err != nil {
			return err
		}
	}

	// Border grid under the template block and the data table.
	if err := f.SetCellStyle(sheet, "A1", "K22", s.border); err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(tableLastCol, gridLastRow)
	start, _ := excelize.CoordinatesToCellName(1, dataStartRow)
	if err := f.SetCellStyle(sheet, start, end, s.border); err != nil {
		return err
	}

	r.writeHeadings(f, sheet, s, bucket)
	r.writeContacts(f, sheet, s)
	r.writeTeams(f, sheet, s)
	r.writeAccessLegend(f, sheet, s)

	for col, header := range tableHeaders {
		cellName, _ := excelize.CoordinatesToCellName(col+1, tableHeaderRow)
		setCell(f, sheet, cellName, header, s.tableHeader)
	}
	return nil
}

func (r *ScheduleRenderer) writeHeadings(f *excelize.File, sheet string, s *styleSet, bucket domain.WeekBucket) {
	setCell(f, sheet, "A1", r.cfg.Company, s.title)
	setCell(f, sheet, "A2", r.cfg.Title, s.title)
	setCell(f, sheet, "A3", r.cfg.ContractNo, s.title)

	f.MergeCell(sheet, "H1", "I1")
	setCell(f, sheet, "H1", "Inspection Schedule for Week of:", s.titleRight)

	setCell(f, sheet, "J1", bucket.Start, s.titleDate)
	setCell(f, sheet, "K1", bucket.End(), s.titleDate)
	setCell(f, sheet, "J2", "("+bucket.Start.Weekday().String()+")", s.normalCenter)
	setCell(f, sheet, "K2", "("+bucket.End().Weekday().String()+")", s.normalCenter)

	f.MergeCell(sheet, "G3", "H3")
}

func (r *ScheduleRenderer) writeContacts(f *excelize.File, sheet string, s *styleSet) {
	for i, rows := range contactRows {
		if i >= len(r.contacts) {
			break
		}
		contact := r.contacts[i]
		nameCell, _ := excelize.CoordinatesToCellName(1, rows[0])
		setCell(f, sheet, nameCell, contact.Name+", "+contact.Role, s.normal)

		phoneRow := rows[1]
		if contact.OfficePhone != "" {
			officeCell, _ := excelize.CoordinatesToCellName(1, phoneRow)
			setCell(f, sheet, officeCell, "Office PH "+contact.OfficePhone, s.normal)
		}
		if contact.CellPhone != "" {
			// Cell phone shifts to column C when an office phone occupies A.
			col, label, style := 1, "Cell PH", s.normal
			if contact.OfficePhone != "" {
				col, label, style = 3, "Cell", s.normalCenter
			}
			cellName, _ := excelize.CoordinatesToCellName(col, phoneRow)
			setCell(f, sheet, cellName, label+" "+contact.CellPhone, style)
		}
	}
}

func (r *ScheduleRenderer) writeTeams(f *excelize.File, sheet string, s *styleSet) {
	setCell(f, sheet, "F3", "Inspection Teams:", s.normal)
	const startRow = 3
	for i, team := range r.teams {
		row := startRow + i
		teamCell, _ := excelize.CoordinatesToCellName(7, row)
		endCell, _ := excelize.CoordinatesToCellName(8, row)
		f.MergeCell(sheet, teamCell, endCell)
		setCell(f, sheet, teamCell, team.String(), s.normalCenter)

		phoneCell, _ := excelize.CoordinatesToCellName(9, row)
		setCell(f, sheet, phoneCell, team.Phone, s.normalCenter)
	}
}

func (r *ScheduleRenderer) writeAccessLegend(f *excelize.File, sheet string, s *styleSet) {
	setCell(f, sheet, "G18", "Access Key:", s.normalRight)
	for i, line := range accessLegend {
		cellName, _ := excelize.CoordinatesToCellName(8, 18+i)
		setCell(f, sheet, cellName, line, s.normal)
	}
}

// writeEntries populates one data row per entry below the table header. A
// missing due date renders as a literal dash so blank never means "skipped".
// The lane-closed flag cell is the single conditionally styled cell.
func (r *ScheduleRenderer) writeEntries(f *excelize.File, sheet string, s *styleSet, entries []domain.InspectionEntry) error {
	for i, entry := range entries {
		row := dataStartRow + i

		var dueDate interface{} = "-"
		dueStyle := s.tableCell
		if entry.DueDate != nil {
			dueDate = *entry.DueDate
			dueStyle = s.tableDate
		}
		laneStyle := s.tableCell
		if entry.LaneClosed == domain.LaneClosedYes {
			laneStyle = s.laneClosed
		}

		cells := []struct {
			value interface{}
			style int
		}{
			{entry.Team, s.tableCell},
			{entry.ScheduledDate, s.tableDate},
			{dueDate, dueStyle},
			{entry.Region, s.tableCell},
			{entry.County, s.tableCell},
			{entry.BIN, s.tableCell},
			{entry.FeatureCarried, s.tableCell},
			{entry.FeatureCrossed, s.tableCell},
			{entry.Access, s.tableCell},
			{entry.Town, s.tableCell},
			{string(entry.LaneClosed), laneStyle},
		}
		for col, c := range cells {
			cellName, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			setCell(f, sheet, cellName, c.value, c.style)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet, cellName string, value interface{}, style int) {
	f.SetCellValue(sheet, cellName, value)
	f.SetCellStyle(sheet, cellName, cellName, style)
}
