// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types: structured actionable
// errors with remediation suggestions, and a catalog of known failure
// conditions with markdown help text rendered in the terminal.
package issue
