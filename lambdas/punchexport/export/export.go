package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"axiapac.com/attendance/report"
	"axiapac.com/attendance/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Event struct {
	Date string `json:"date"` // yyyy-MM-dd, defaults to yesterday
}

type Result struct {
	Key  string `json:"key"`
	Rows int    `json:"rows"`
}

type Source interface {
	ForDate(ctx context.Context, date string) ([]store.PunchLog, error)
}

type Sink interface {
	WriteFile(ctx context.Context, key string, contentType string, body io.Reader) error
}

type Exporter struct {
	Source Source
	Sink   Sink
	Prefix string
	Loc    *time.Location
	Now    func() time.Time
}

// Run writes the day's punch report to the sink and returns its key.
func (e *Exporter) Run(ctx context.Context, ev Event) (Result, error) {
	date := ev.Date
	if date == "" {
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		loc := e.Loc
		if loc == nil {
			loc = time.UTC
		}
		date = now().In(loc).AddDate(0, 0, -1).Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Result{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	rows, err := e.Source.ForDate(ctx, date)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load punches for %s: %w", date, err)
	}

	f, err := report.BuildDailyReport(date, rows)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build report: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return Result{}, err
	}

	key := e.Prefix + report.FileName(date)
	if err := e.Sink.WriteFile(ctx, key, xlsxContentType, &buf); err != nil {
		return Result{}, err
	}
	return Result{Key: key, Rows: len(rows)}, nil
}
