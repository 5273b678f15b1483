// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/telekom/refresher/internal/reporting"
	"github.com/valyala/fasthttp/fasthttputil"
)

const (
	FakeTableauAddress = "http://tableau.test"
	FakeTableauToken   = "fake-session-token"
	FakeTableauSiteID  = "site-0001"
	FakeTableauVersion = "3.19"
)

// FakeTableau serves a small subset of the Tableau REST API over an in-memory listener.
type FakeTableau struct {
	mu       sync.Mutex
	app      *fiber.App
	listener *fasthttputil.InmemoryListener

	Events    *EventLog
	Catalog   []reporting.Workbook
	TokenName string
	Secret    string

	NoServerInfo bool
	FailCatalog  bool
	PendingPolls int
	FailJob      map[string]bool

	polls map[string]int
}

func NewFakeTableau(workbooks ...reporting.Workbook) *FakeTableau {
	var fake = &FakeTableau{
		listener:  fasthttputil.NewInmemoryListener(),
		Events:    new(EventLog),
		Catalog:   workbooks,
		TokenName: "refresher",
		Secret:    "secret",
		FailJob:   make(map[string]bool),
		polls:     make(map[string]int),
	}

	fake.app = fiber.New(fiber.Config{DisableStartupMessage: true})
	fake.app.Get("/api/2.4/serverinfo", fake.serverInfo)
	fake.app.Post("/api/:version/auth/signin", fake.signIn)
	fake.app.Post("/api/:version/auth/signout", fake.withToken, fake.signOut)
	fake.app.Get("/api/:version/sites/:site/workbooks", fake.withToken, fake.workbooks)
	fake.app.Post("/api/:version/sites/:site/workbooks/:id/refresh", fake.withToken, fake.refresh)
	fake.app.Get("/api/:version/sites/:site/jobs/:id", fake.withToken, fake.job)

	go func() {
		_ = fake.app.Listener(fake.listener)
	}()
	return fake
}

// Dial connects to the in-memory listener and can be passed to reporting.WithDial.
func (f *FakeTableau) Dial(string) (net.Conn, error) {
	return f.listener.Dial()
}

func (f *FakeTableau) Close() {
	_ = f.app.Shutdown()
}

func (f *FakeTableau) serverInfo(ctx *fiber.Ctx) error {
	f.Events.Add("tableau:serverinfo")
	if f.NoServerInfo {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	return ctx.JSON(fiber.Map{
		"serverInfo": fiber.Map{
			"productVersion": fiber.Map{"value": "2023.3.0"},
			"restApiVersion": FakeTableauVersion,
		},
	})
}

func (f *FakeTableau) signIn(ctx *fiber.Ctx) error {
	f.Events.Add("tableau:signin:" + ctx.Params("version"))

	var request struct {
		Credentials struct {
			PersonalAccessTokenName   string `json:"personalAccessTokenName"`
			PersonalAccessTokenSecret string `json:"personalAccessTokenSecret"`
			Site                      struct {
				ContentUrl string `json:"contentUrl"`
			} `json:"site"`
		} `json:"credentials"`
	}
	if err := ctx.BodyParser(&request); err != nil {
		return apiError(ctx, fiber.StatusBadRequest, "400000", "Bad Request", err.Error())
	}

	if request.Credentials.PersonalAccessTokenName != f.TokenName || request.Credentials.PersonalAccessTokenSecret != f.Secret {
		return apiError(ctx, fiber.StatusUnauthorized, "401001", "Signin Error", "Error signing in to Tableau Server")
	}

	return ctx.JSON(fiber.Map{
		"credentials": fiber.Map{
			"token": FakeTableauToken,
			"site":  fiber.Map{"id": FakeTableauSiteID, "contentUrl": request.Credentials.Site.ContentUrl},
			"user":  fiber.Map{"id": "user-0001"},
		},
	})
}

func (f *FakeTableau) signOut(ctx *fiber.Ctx) error {
	f.Events.Add("tableau:signout")
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (f *FakeTableau) withToken(ctx *fiber.Ctx) error {
	if ctx.Get("X-Tableau-Auth") != FakeTableauToken {
		return apiError(ctx, fiber.StatusUnauthorized, "401002", "Unauthorized Access", "Invalid authentication credentials were provided")
	}
	if site := ctx.Params("site"); site != "" && site != FakeTableauSiteID {
		return apiError(ctx, fiber.StatusNotFound, "404000", "Site not found", site)
	}
	return ctx.Next()
}

func (f *FakeTableau) workbooks(ctx *fiber.Ctx) error {
	var pageSize = ctx.QueryInt("pageSize", 100)
	var pageNumber = ctx.QueryInt("pageNumber", 1)
	f.Events.Add(fmt.Sprintf("tableau:workbooks:%d", pageNumber))

	if f.FailCatalog {
		return apiError(ctx, fiber.StatusInternalServerError, "500000", "Internal Server Error", "catalog unavailable")
	}

	var start = min((pageNumber-1)*pageSize, len(f.Catalog))
	var end = min(start+pageSize, len(f.Catalog))

	var items = make([]fiber.Map, 0, end-start)
	for _, wb := range f.Catalog[start:end] {
		items = append(items, fiber.Map{
			"id":      wb.ID,
			"name":    wb.Name,
			"project": fiber.Map{"id": wb.ProjectID, "name": wb.ProjectName},
		})
	}

	return ctx.JSON(fiber.Map{
		"pagination": fiber.Map{
			"pageNumber":     strconv.Itoa(pageNumber),
			"pageSize":       strconv.Itoa(pageSize),
			"totalAvailable": strconv.Itoa(len(f.Catalog)),
		},
		"workbooks": fiber.Map{"workbook": items},
	})
}

func (f *FakeTableau) refresh(ctx *fiber.Ctx) error {
	var id = ctx.Params("id")
	f.Events.Add("tableau:refresh:" + id)

	for _, wb := range f.Catalog {
		if wb.ID == id {
			return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"job": fiber.Map{
					"id":        "job-" + id,
					"mode":      "Asynchronous",
					"type":      "RefreshExtract",
					"createdAt": time.Now().UTC().Format(time.RFC3339),
				},
			})
		}
	}
	return apiError(ctx, fiber.StatusNotFound, "404006", "Resource Not Found", "Workbook "+id+" could not be found")
}

func (f *FakeTableau) job(ctx *fiber.Ctx) error {
	var id = ctx.Params("id")
	f.Events.Add("tableau:job:" + id)

	f.mu.Lock()
	f.polls[id]++
	var polls = f.polls[id]
	f.mu.Unlock()

	var job = fiber.Map{
		"id":        id,
		"type":      "RefreshExtract",
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}

	if polls <= f.PendingPolls {
		job["progress"] = strconv.Itoa(polls * 100 / (f.PendingPolls + 1))
		return ctx.JSON(fiber.Map{"job": job})
	}

	job["progress"] = "100"
	job["completedAt"] = time.Now().UTC().Format(time.RFC3339)
	job["finishCode"] = "0"
	if f.FailJob[strings.TrimPrefix(id, "job-")] {
		job["finishCode"] = "1"
		job["statusNotes"] = fiber.Map{
			"statusNote": []fiber.Map{{"type": "ErrorInfo", "text": "data source connection failed"}},
		}
	}
	return ctx.JSON(fiber.Map{"job": job})
}

func apiError(ctx *fiber.Ctx, status int, code string, summary string, detail string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"summary": summary,
			"detail":  detail,
		},
	})
}
