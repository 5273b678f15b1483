// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package reporting

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/telekom/refresher/internal/config"
	"github.com/valyala/fasthttp"
)

const (
	serverInfoVersion = "2.4"
	authHeader        = "X-Tableau-Auth"
)

var errJobPending = errors.New("job still pending")

// TableauClient talks to the Tableau Server REST API.
type TableauClient struct {
	client         *fasthttp.Client
	address        string
	apiVersion     string
	pageSize       int
	requestTimeout time.Duration
	jobTimeout     time.Duration
	pollInterval   time.Duration
	logger         *zerolog.Logger
}

type Option func(c *TableauClient)

// WithDial replaces the dialer of the underlying HTTP client.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *TableauClient) {
		c.client.Dial = dial
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *TableauClient) {
		c.logger = logger
	}
}

func NewTableauClient(cfg config.ReportingConfiguration, opts ...Option) *TableauClient {
	var client = &TableauClient{
		client: &fasthttp.Client{
			Name:      "refresher",
			TLSConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
		},
		address:        strings.TrimRight(cfg.Address, "/"),
		apiVersion:     cfg.ApiVersion,
		pageSize:       cfg.PageSize,
		requestTimeout: cfg.RequestTimeout,
		jobTimeout:     cfg.JobTimeout,
		pollInterval:   cfg.PollInterval,
		logger:         &log.Logger,
	}

	if client.pageSize <= 0 {
		client.pageSize = 100
	}
	if client.requestTimeout <= 0 {
		client.requestTimeout = 30 * time.Second
	}
	if client.pollInterval <= 0 {
		client.pollInterval = 5 * time.Second
	}

	for _, opt := range opts {
		opt(client)
	}
	return client
}

// SignIn negotiates the REST API version and authenticates with a personal access token.
func (c *TableauClient) SignIn(ctx context.Context, credentials Credentials) (*Session, error) {
	var version = c.serverVersion(ctx)

	var request = signInRequest{}
	request.Credentials.PersonalAccessTokenName = credentials.TokenName
	request.Credentials.PersonalAccessTokenSecret = credentials.TokenSecret
	request.Credentials.Site.ContentUrl = credentials.Site

	var response signInResponse
	if err := c.do(ctx, fasthttp.MethodPost, c.url(version, "auth", "signin"), "", request, &response); err != nil {
		return nil, fmt.Errorf("sign in as %s failed: %w", credentials.TokenName, err)
	}
	if response.Credentials.Token == "" {
		return nil, fmt.Errorf("%w: sign in returned no token", ErrUnexpectedReply)
	}

	return &Session{
		Token:      response.Credentials.Token,
		SiteID:     response.Credentials.Site.ID,
		UserID:     response.Credentials.User.ID,
		ApiVersion: version,
	}, nil
}

func (c *TableauClient) SignOut(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrNotSignedIn
	}
	return c.do(ctx, fasthttp.MethodPost, c.url(session.ApiVersion, "auth", "signout"), session.Token, nil, nil)
}

func (c *TableauClient) Workbooks(ctx context.Context, session *Session) iter.Seq2[Workbook, error] {
	return Pager(ctx, func(ctx context.Context, pageNumber int) ([]Workbook, Pagination, error) {
		if session == nil {
			return nil, Pagination{}, ErrNotSignedIn
		}

		var query = url.Values{}
		query.Set("pageSize", strconv.Itoa(c.pageSize))
		query.Set("pageNumber", strconv.Itoa(pageNumber))

		var response workbooksResponse
		var uri = c.url(session.ApiVersion, "sites", session.SiteID, "workbooks") + "?" + query.Encode()
		if err := c.do(ctx, fasthttp.MethodGet, uri, session.Token, nil, &response); err != nil {
			return nil, Pagination{}, fmt.Errorf("could not list workbooks (page %d): %w", pageNumber, err)
		}

		var workbooks = make([]Workbook, 0, len(response.Workbooks.Workbook))
		for _, wb := range response.Workbooks.Workbook {
			workbooks = append(workbooks, Workbook{
				ID:          wb.ID,
				Name:        wb.Name,
				ProjectID:   wb.Project.ID,
				ProjectName: wb.Project.Name,
			})
		}
		return workbooks, response.Pagination, nil
	})
}

func (c *TableauClient) RefreshWorkbook(ctx context.Context, session *Session, workbookID string) (*Job, error) {
	if session == nil {
		return nil, ErrNotSignedIn
	}

	var response jobResponse
	var uri = c.url(session.ApiVersion, "sites", session.SiteID, "workbooks", workbookID, "refresh")
	if err := c.do(ctx, fasthttp.MethodPost, uri, session.Token, struct{}{}, &response); err != nil {
		return nil, fmt.Errorf("could not request refresh of workbook %s: %w", workbookID, err)
	}
	if response.Job.ID == "" {
		return nil, fmt.Errorf("%w: refresh returned no job", ErrUnexpectedReply)
	}
	return response.Job.toJob()
}

// WaitForJob polls the job with exponential backoff until it reaches a terminal state, the
// configured job timeout elapses or ctx is done.
func (c *TableauClient) WaitForJob(ctx context.Context, session *Session, jobID string) (*Job, error) {
	if session == nil {
		return nil, ErrNotSignedIn
	}

	var policy = backoff.NewExponentialBackOff()
	policy.InitialInterval = c.pollInterval
	policy.MaxInterval = 12 * c.pollInterval
	policy.MaxElapsedTime = c.jobTimeout

	var job *Job
	var operation = func() error {
		current, err := c.job(ctx, session, jobID)
		if err != nil {
			return backoff.Permanent(err)
		}
		job = current
		if !job.Terminal() {
			return errJobPending
		}
		return nil
	}

	var notify = func(_ error, wait time.Duration) {
		c.logger.Debug().Fields(map[string]any{
			"jobId":    jobID,
			"progress": job.Progress,
			"nextPoll": wait.String(),
		}).Msg("Job still running")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		if errors.Is(err, errJobPending) {
			return job, fmt.Errorf("%w: job %s still pending after %s", ErrJobTimeout, jobID, c.jobTimeout)
		}
		return job, err
	}

	switch job.State() {
	case JobFailed:
		return job, fmt.Errorf("%w: job %s: %s", ErrJobFailed, jobID, strings.Join(job.Notes, "; "))
	case JobCancelled:
		return job, fmt.Errorf("%w: job %s", ErrJobCancelled, jobID)
	default:
		return job, nil
	}
}

func (c *TableauClient) job(ctx context.Context, session *Session, jobID string) (*Job, error) {
	var response jobResponse
	var uri = c.url(session.ApiVersion, "sites", session.SiteID, "jobs", jobID)
	if err := c.do(ctx, fasthttp.MethodGet, uri, session.Token, nil, &response); err != nil {
		return nil, fmt.Errorf("could not query job %s: %w", jobID, err)
	}
	return response.Job.toJob()
}

// serverVersion asks the server for its newest REST API version and falls back to the
// configured one.
func (c *TableauClient) serverVersion(ctx context.Context) string {
	var response serverInfoResponse
	if err := c.do(ctx, fasthttp.MethodGet, c.url(serverInfoVersion, "serverinfo"), "", nil, &response); err != nil {
		c.logger.Debug().Err(err).Str("fallback", c.apiVersion).Msg("Could not determine server API version")
		return c.apiVersion
	}
	if response.ServerInfo.RestApiVersion == "" {
		return c.apiVersion
	}
	return response.ServerInfo.RestApiVersion
}

func (c *TableauClient) url(version string, segments ...string) string {
	var escaped = make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return fmt.Sprintf("%s/api/%s/%s", c.address, version, strings.Join(escaped, "/"))
}

func (c *TableauClient) do(ctx context.Context, method string, uri string, token string, body any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var req = fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	var resp = fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if token != "" {
		req.Header.Set(authHeader, token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	var deadline = time.Now().Add(c.requestTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return err
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return decodeAPIError(status, resp.Body())
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedReply, err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var response errorResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Error == nil {
		return &APIError{Status: status}
	}
	response.Error.Status = status
	return response.Error
}
