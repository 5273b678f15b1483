// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package reporting

import (
	"fmt"
	"strconv"
	"time"
)

type serverInfoResponse struct {
	ServerInfo struct {
		RestApiVersion string `json:"restApiVersion"`
	} `json:"serverInfo"`
}

type signInRequest struct {
	Credentials struct {
		PersonalAccessTokenName   string `json:"personalAccessTokenName"`
		PersonalAccessTokenSecret string `json:"personalAccessTokenSecret"`
		Site                      struct {
			ContentUrl string `json:"contentUrl"`
		} `json:"site"`
	} `json:"credentials"`
}

type signInResponse struct {
	Credentials struct {
		Token string `json:"token"`
		Site  struct {
			ID         string `json:"id"`
			ContentUrl string `json:"contentUrl"`
		} `json:"site"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	} `json:"credentials"`
}

type workbooksResponse struct {
	Pagination Pagination `json:"pagination"`
	Workbooks  struct {
		Workbook []workbookPayload `json:"workbook"`
	} `json:"workbooks"`
}

type workbookPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Project struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
}

type jobResponse struct {
	Job jobPayload `json:"job"`
}

type jobPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Progress    string `json:"progress,omitempty"`
	FinishCode  string `json:"finishCode,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	StatusNotes struct {
		StatusNote []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
			Text  string `json:"text"`
		} `json:"statusNote"`
	} `json:"statusNotes"`
}

type errorResponse struct {
	Error *APIError `json:"error"`
}

func (p *jobPayload) toJob() (*Job, error) {
	var job = &Job{ID: p.ID, Type: p.Type}
	var err error

	if p.Progress != "" {
		if job.Progress, err = strconv.Atoi(p.Progress); err != nil {
			return nil, fmt.Errorf("%w: job progress %q", ErrUnexpectedReply, p.Progress)
		}
	}
	if p.FinishCode != "" {
		code, err := strconv.Atoi(p.FinishCode)
		if err != nil {
			return nil, fmt.Errorf("%w: job finish code %q", ErrUnexpectedReply, p.FinishCode)
		}
		job.FinishCode = &code
	}
	if p.CreatedAt != "" {
		if job.CreatedAt, err = time.Parse(time.RFC3339, p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: job creation time %q", ErrUnexpectedReply, p.CreatedAt)
		}
	}
	if p.CompletedAt != "" {
		completedAt, err := time.Parse(time.RFC3339, p.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: job completion time %q", ErrUnexpectedReply, p.CompletedAt)
		}
		job.CompletedAt = &completedAt
	}
	for _, note := range p.StatusNotes.StatusNote {
		if note.Text != "" {
			job.Notes = append(job.Notes, note.Text)
		}
	}

	return job, nil
}
