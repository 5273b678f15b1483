// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package refresh

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/telekom/refresher/internal/config"
	"github.com/telekom/refresher/internal/reporting"
	"github.com/telekom/refresher/internal/trigger"
	"github.com/telekom/refresher/internal/utils"
)

// Dispatcher runs refresh cycles: it consumes the trigger file, resolves the configured
// dashboards in the catalog and refreshes them one after another.
type Dispatcher struct {
	config   *config.Configuration
	sentinel *trigger.Sentinel
	service  reporting.Service
	logger   *zerolog.Logger
	recorder Recorder
	now      func() time.Time
	state    State
}

type Option func(d *Dispatcher)

func WithRecorder(recorder Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = recorder
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func NewDispatcher(
	cfg *config.Configuration,
	sentinel *trigger.Sentinel,
	service reporting.Service,
	logger *zerolog.Logger,
	opts ...Option,
) *Dispatcher {
	var dispatcher = &Dispatcher{
		config:   cfg,
		sentinel: sentinel,
		service:  service,
		logger:   logger,
		recorder: noopRecorder{},
		now:      time.Now,
		state:    StateIdle,
	}

	for _, opt := range opts {
		opt(dispatcher)
	}
	return dispatcher
}

func (d *Dispatcher) State() State {
	return d.state
}

// Run performs one cycle. It returns a nil report and nil error if no trigger file exists, a
// *CycleError if the cycle had to be aborted and the report otherwise. Failures of individual
// dashboards are part of the report and never returned as error.
func (d *Dispatcher) Run(ctx context.Context) (*Report, error) {
	d.transition(StateIdle)

	present, err := d.sentinel.Poll()
	if err != nil {
		d.logger.Error().Err(err).Str("path", d.sentinel.Path()).Msg("Could not check for trigger file")
		return nil, d.abort(StageConsume, err)
	}
	if !present {
		d.logger.Info().Str("path", d.sentinel.Path()).Msg("Trigger file not received yet")
		d.recorder.CycleFinished(CycleIdle, d.now())
		return nil, nil
	}

	d.transition(StateTriggerDetected)
	d.logger.Info().Str("path", d.sentinel.Path()).Msg("Trigger file received")

	if err := d.sentinel.Consume(); err != nil {
		d.logger.Error().Err(err).Str("path", d.sentinel.Path()).
			Msg("Trigger file cannot be deleted as it is used by someone or another process. Please close the trigger file and try again")
		return nil, d.abort(StageConsume, err)
	}
	d.logger.Info().Msg("Trigger file deleted")

	var report = newReport(d.now())
	var logger = d.logger.With().Str("cycle", report.ID.String()).Logger()

	d.transition(StateAuthenticating)
	session, err := d.service.SignIn(ctx, d.credentials())
	if err != nil {
		logger.Error().Err(err).Fields(utils.CreateFieldsForSession(d.config.Reporting.Address, nil)).
			Str("site", d.config.Reporting.Site).
			Msg("Encountered error while logging on to the server")
		return report, d.abort(StageAuthenticate, err)
	}

	logger.Debug().Fields(utils.CreateFieldsForSession(d.config.Reporting.Address, session)).Msg("Signed in")

	d.transition(StateCatalogFetch)
	resolved, err := d.resolve(ctx, session, &logger)
	d.signOut(ctx, session, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Encountered error while retrieving the list of workbooks from the server")
		return report, d.abort(StageCatalog, err)
	}

	d.transition(StateDispatching)
	for _, name := range d.requestedDashboards() {
		workbooks, ok := resolved[name]
		if !ok {
			logger.Warn().Str("dashboard", name).Str("folders", utils.DescribeFolders(d.config.Folders)).
				Msg("Dashboard not found in any configured folder")
			report.Outcomes = append(report.Outcomes, Outcome{
				Dashboard: name,
				Status:    OutcomeNotFound,
				Err:       &ItemError{Stage: StageCatalog, Dashboard: name, Err: ErrDashboardNotFound},
			})
			d.recorder.DashboardFinished(string(OutcomeNotFound), 0)
			continue
		}

		for _, workbook := range workbooks {
			report.Outcomes = append(report.Outcomes, d.refresh(ctx, workbook, &logger))
		}
	}

	d.transition(StateDone)
	report.FinishedAt = d.now()
	d.recorder.CycleFinished(CycleCompleted, report.FinishedAt)

	logger.Info().Fields(map[string]any{
		"refreshed": report.Count(OutcomeRefreshed),
		"failed":    report.Count(OutcomeFailed),
		"notFound":  report.Count(OutcomeNotFound),
		"duration":  report.FinishedAt.Sub(report.StartedAt).String(),
	}).Msg("Refresh cycle completed")

	return report, nil
}

// resolve walks the whole catalog and keeps the workbooks whose folder and name are allowed,
// grouped by name.
func (d *Dispatcher) resolve(ctx context.Context, session *reporting.Session, logger *zerolog.Logger) (map[string][]reporting.Workbook, error) {
	var resolved = make(map[string][]reporting.Workbook)

	var scanned = 0
	for workbook, err := range d.service.Workbooks(ctx, session) {
		if err != nil {
			return nil, err
		}
		scanned++

		if !slices.Contains(d.config.Folders, workbook.ProjectName) || !slices.Contains(d.config.Dashboards, workbook.Name) {
			continue
		}
		resolved[workbook.Name] = append(resolved[workbook.Name], workbook)
		logger.Debug().Fields(utils.GetFieldsOfWorkbook(&workbook)).Msg("Resolved dashboard")
	}

	logger.Info().Fields(map[string]any{
		"scanned":  scanned,
		"resolved": len(resolved),
	}).Msg("Catalog retrieved")
	return resolved, nil
}

// refresh requests and awaits the refresh of a single workbook in its own session.
func (d *Dispatcher) refresh(ctx context.Context, workbook reporting.Workbook, logger *zerolog.Logger) Outcome {
	var outcome = Outcome{Dashboard: workbook.Name, Folder: workbook.ProjectName, ID: workbook.ID}
	var fields = utils.GetFieldsOfWorkbook(&workbook)

	var fail = func(stage Stage, err error) Outcome {
		outcome.Status = OutcomeFailed
		outcome.Err = &ItemError{Stage: stage, Dashboard: workbook.Name, Err: err}
		logger.Error().Err(err).Fields(fields).Str("stage", string(stage)).
			Msgf("Refresh failed for: %s. Will continue with the next dashboard in the queue", workbook.Name)
		d.recorder.DashboardFinished(string(OutcomeFailed), 0)
		return outcome
	}

	session, err := d.service.SignIn(ctx, d.credentials())
	if err != nil {
		return fail(StageSession, err)
	}
	defer d.signOut(ctx, session, logger)

	job, err := d.service.RefreshWorkbook(ctx, session, workbook.ID)
	if err != nil {
		return fail(StageRequest, err)
	}
	outcome.JobID = job.ID
	fields = utils.CreateFieldsForJob(&workbook, job)
	logger.Info().Fields(fields).Msgf("Refresh requested for: %s", workbook.Name)

	var waitCtx, cancel = d.jobContext(ctx)
	defer cancel()

	var startedAt = d.now()
	if _, err := d.service.WaitForJob(waitCtx, session, job.ID); err != nil {
		return fail(StageWait, err)
	}
	var wait = d.now().Sub(startedAt)

	outcome.Status = OutcomeRefreshed
	d.recorder.DashboardFinished(string(OutcomeRefreshed), wait)
	logger.Info().Fields(fields).Str("wait", wait.String()).Msgf("Refresh completed for: %s", workbook.Name)
	return outcome
}

func (d *Dispatcher) jobContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.config.Reporting.JobTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.config.Reporting.JobTimeout)
}

func (d *Dispatcher) signOut(ctx context.Context, session *reporting.Session, logger *zerolog.Logger) {
	if err := d.service.SignOut(ctx, session); err != nil {
		logger.Warn().Err(err).Msg("Could not sign out from the server")
	}
}

// requestedDashboards returns the configured names in order, without duplicates.
func (d *Dispatcher) requestedDashboards() []string {
	var names = make([]string, 0, len(d.config.Dashboards))
	for _, name := range d.config.Dashboards {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func (d *Dispatcher) credentials() reporting.Credentials {
	return reporting.Credentials{
		TokenName:   d.config.Reporting.TokenName,
		TokenSecret: d.config.Reporting.TokenSecret,
		Site:        d.config.Reporting.Site,
	}
}

func (d *Dispatcher) transition(state State) {
	if d.state != state {
		d.logger.Debug().Str("from", d.state.String()).Str("to", state.String()).Msg("State changed")
	}
	d.state = state
}

func (d *Dispatcher) abort(stage Stage, err error) error {
	d.recorder.CycleFinished(CycleAborted, d.now())
	return &CycleError{Stage: stage, Err: fmt.Errorf("%s: %w", d.state, err)}
}
