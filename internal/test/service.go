// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/telekom/refresher/internal/reporting"
)

var (
	ErrFakeSignIn  = errors.New("invalid personal access token")
	ErrFakeCatalog = errors.New("catalog unavailable")
	ErrFakeRefresh = errors.New("refresh rejected")
)

// FakeService is an in-memory reporting.Service recording every call in Events.
type FakeService struct {
	mu      sync.Mutex
	Events  *EventLog
	Catalog []reporting.Workbook

	FailSignIn      bool
	FailSignInAfter int
	FailCatalog     bool
	FailRefresh     map[string]bool
	FailJob         map[string]bool

	signIns int
	jobs    int
}

func NewFakeService(events *EventLog, workbooks ...reporting.Workbook) *FakeService {
	return &FakeService{
		Events:      events,
		Catalog:     workbooks,
		FailRefresh: make(map[string]bool),
		FailJob:     make(map[string]bool),
	}
}

func (s *FakeService) SignIn(_ context.Context, credentials reporting.Credentials) (*reporting.Session, error) {
	s.Events.Add("service:signin")
	s.mu.Lock()
	defer s.mu.Unlock()

	s.signIns++
	if s.FailSignIn || (s.FailSignInAfter > 0 && s.signIns > s.FailSignInAfter) {
		return nil, ErrFakeSignIn
	}
	return &reporting.Session{
		Token:      fmt.Sprintf("token-%d", s.signIns),
		SiteID:     credentials.Site,
		ApiVersion: "3.4",
	}, nil
}

func (s *FakeService) SignOut(context.Context, *reporting.Session) error {
	s.Events.Add("service:signout")
	return nil
}

func (s *FakeService) Workbooks(ctx context.Context, _ *reporting.Session) iter.Seq2[reporting.Workbook, error] {
	s.Events.Add("service:workbooks")
	return reporting.Pager(ctx, func(_ context.Context, pageNumber int) ([]reporting.Workbook, reporting.Pagination, error) {
		if s.FailCatalog {
			return nil, reporting.Pagination{}, ErrFakeCatalog
		}

		// two workbooks per page
		var start = (pageNumber - 1) * 2
		var end = min(start+2, len(s.Catalog))
		if start >= len(s.Catalog) {
			return nil, reporting.Pagination{PageNumber: pageNumber, PageSize: 2, TotalAvailable: len(s.Catalog)}, nil
		}
		return s.Catalog[start:end], reporting.Pagination{PageNumber: pageNumber, PageSize: 2, TotalAvailable: len(s.Catalog)}, nil
	})
}

func (s *FakeService) RefreshWorkbook(_ context.Context, _ *reporting.Session, workbookID string) (*reporting.Job, error) {
	s.Events.Add("service:refresh:" + workbookID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailRefresh[workbookID] {
		return nil, ErrFakeRefresh
	}
	s.jobs++
	return &reporting.Job{
		ID:        fmt.Sprintf("job-%s", workbookID),
		Type:      "RefreshExtract",
		CreatedAt: time.Now(),
	}, nil
}

func (s *FakeService) WaitForJob(_ context.Context, _ *reporting.Session, jobID string) (*reporting.Job, error) {
	s.Events.Add("service:wait:" + jobID)
	s.mu.Lock()
	defer s.mu.Unlock()

	var workbookID = jobID[len("job-"):]
	var finishCode = 0
	if s.FailJob[workbookID] {
		finishCode = 1
	}
	var completedAt = time.Now()
	var job = &reporting.Job{ID: jobID, Progress: 100, FinishCode: &finishCode, CompletedAt: &completedAt}

	if finishCode != 0 {
		return job, fmt.Errorf("%w: job %s", reporting.ErrJobFailed, jobID)
	}
	return job, nil
}
