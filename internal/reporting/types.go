// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package reporting

import (
	"context"
	"iter"
	"time"
)

// Service is a session based reporting server hosting dashboards (workbooks) in folders (projects).
type Service interface {
	SignIn(ctx context.Context, credentials Credentials) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
	Workbooks(ctx context.Context, session *Session) iter.Seq2[Workbook, error]
	RefreshWorkbook(ctx context.Context, session *Session, workbookID string) (*Job, error)
	WaitForJob(ctx context.Context, session *Session, jobID string) (*Job, error)
}

// Credentials identify a personal access token on a site.
type Credentials struct {
	TokenName   string
	TokenSecret string
	Site        string
}

type Session struct {
	Token      string
	SiteID     string
	UserID     string
	ApiVersion string
}

// Workbook describes a dashboard in the catalog.
type Workbook struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
}

type JobState string

const (
	JobPending   JobState = "pending"
	JobComplete  JobState = "complete"
	JobFailed    JobState = "failed"
	JobCancelled JobState = "cancelled"
)

// Job is an asynchronous refresh running on the server.
type Job struct {
	ID          string
	Type        string
	Progress    int
	FinishCode  *int
	CreatedAt   time.Time
	CompletedAt *time.Time
	Notes       []string
}

func (j *Job) State() JobState {
	if j.CompletedAt == nil || j.FinishCode == nil {
		return JobPending
	}

	switch *j.FinishCode {
	case 0:
		return JobComplete
	case 2:
		return JobCancelled
	default:
		return JobFailed
	}
}

func (j *Job) Terminal() bool {
	return j.State() != JobPending
}
