// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import "errors"

var (
	ErrNotTerminal        = errors.New("cannot read password: stdin is not a terminal")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNotSupported       = errors.New("storage does not support encryption management")
	ErrNotEnabled         = errors.New("encryption is not enabled")
	ErrVerificationFailed = errors.New("password does not match the stored data")
)
