// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records persisted by the store package and
// the error conditions shared by every layer.
package models

import "errors"

// Error conditions reported to API callers. Stores and the generator wrap
// these with context; handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
