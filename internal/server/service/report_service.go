package service

import (
	"context"
	"time"

	"github.com/busshop-tracker/internal/domain/entry"
	"github.com/busshop-tracker/internal/domain/report"
)

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	entryRepo entry.Repository
}

// NewReportService creates a new report service
func NewReportService(entryRepo entry.Repository) ReportService {
	return &ReportServiceImpl{
		entryRepo: entryRepo,
	}
}

// WeeklyReport computes the Monday-through-Sunday bounds of the week
// containing now, fetches the in-range entries, and aggregates them per
// mechanic.
func (s *ReportServiceImpl) WeeklyReport(ctx context.Context, now time.Time) (*report.Weekly, error) {
	start, end := report.WeekBounds(now)

	entries, err := s.entryRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &report.Weekly{
		Start: start,
		End:   end,
		Rows:  report.Build(entries),
	}, nil
}
