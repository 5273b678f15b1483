// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/telekom/refresher/internal/cmd"

func main() {
	cmd.Execute()
}
