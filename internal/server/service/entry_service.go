package service

import (
	"context"
	"time"

	"github.com/busshop-tracker/internal/domain/entry"
)

// EntryServiceImpl implements the EntryService interface
type EntryServiceImpl struct {
	entryRepo entry.Repository
}

// NewEntryService creates a new entry service
func NewEntryService(entryRepo entry.Repository) EntryService {
	return &EntryServiceImpl{
		entryRepo: entryRepo,
	}
}

// Upsert assigns an id when absent, recomputes the derived fields, and writes
// the record as a single atomic replace. The derived fields are never trusted
// from the caller.
func (s *EntryServiceImpl) Upsert(ctx context.Context, e *entry.Entry) (*entry.Entry, error) {
	if e.ID == "" {
		e.ID = entry.NewID()
	}
	e.Derive(time.Now())

	if e.Photos == nil {
		e.Photos = []string{}
	}
	if e.Parts == nil {
		e.Parts = []entry.Part{}
	}

	if err := s.entryRepo.Upsert(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// List fetches all entries and narrows them in memory by role visibility and
// criteria. Acceptable at the scale of a single shop's records.
func (s *EntryServiceImpl) List(ctx context.Context, actor entry.Actor, criteria entry.Criteria) ([]*entry.Entry, error) {
	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return entry.Filter(entries, actor, criteria), nil
}

// Delete removes a work order by id, idempotently
func (s *EntryServiceImpl) Delete(ctx context.Context, id string) error {
	return s.entryRepo.Delete(ctx, id)
}
