// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no listener could be created for the configured transports")
	errNoServersToRun      = errors.New("server has no listeners to run")
)
