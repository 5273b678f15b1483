// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"strings"

	"github.com/telekom/refresher/internal/reporting"
)

func GetFieldsOfWorkbook(workbook *reporting.Workbook) map[string]any {
	return map[string]any{
		"dashboard":  workbook.Name,
		"folder":     workbook.ProjectName,
		"resourceId": workbook.ID,
	}
}

func CreateFieldsForJob(workbook *reporting.Workbook, job *reporting.Job) map[string]any {
	var fields = GetFieldsOfWorkbook(workbook)
	if job != nil {
		fields["jobId"] = job.ID
		fields["jobState"] = string(job.State())
	}
	return fields
}

func CreateFieldsForSession(address string, session *reporting.Session) map[string]any {
	var fields = map[string]any{
		"address": address,
	}
	if session != nil {
		fields["site"] = session.SiteID
		fields["apiVersion"] = session.ApiVersion
	}
	return fields
}

// DescribeFolders renders an allow-list for log messages.
func DescribeFolders(folders []string) string {
	if len(folders) == 0 {
		return "<none>"
	}
	var quoted = make([]string, len(folders))
	for i, folder := range folders {
		quoted[i] = fmt.Sprintf("%q", folder)
	}
	return strings.Join(quoted, ", ")
}
