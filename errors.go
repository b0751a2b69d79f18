// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import "errors"

// Decode errors. All of these are fatal to the current decode:
// no partial state is retained, although a visitor may already have
// received a prefix of the event stream.
var (
	// ErrMalformedHeader is returned when the file envelope does not
	// start with the expected magic number or has an invalid layout.
	ErrMalformedHeader = errors.New("si: malformed header")

	// ErrUnsupportedVersion is returned when the file version is newer
	// than this package understands.
	ErrUnsupportedVersion = errors.New("si: unsupported version")

	// ErrTruncated is returned when a read runs past the end of the
	// byte or float data.
	ErrTruncated = errors.New("si: truncated data")

	// ErrBadOpcode is returned when an opcode byte falls in no category.
	ErrBadOpcode = errors.New("si: bad opcode")

	// ErrUnbalancedGroups is returned when group, masked, or text
	// brackets do not balance over the opcode stream.
	ErrUnbalancedGroups = errors.New("si: unbalanced groups")

	// ErrBadGradientStopColor is returned when a gradient stop color
	// is itself a gradient, which the encoding forbids.
	ErrBadGradientStopColor = errors.New("si: gradient stop color is a gradient")
)
