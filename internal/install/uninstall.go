// SPDX-License-Identifier: MPL-2.0

package install

import (
	"os"

	"patbundle-cli/internal/fsprobe"
	"patbundle-cli/internal/issue"
)

const (
	// StatusRemoved means the target tree was deleted and is gone.
	StatusRemoved UninstallStatus = iota
	// StatusNotInstalled means there was nothing at the target. An
	// idempotent no-op, not an error.
	StatusNotInstalled
	// StatusDeclined means the removal decision was negative. The
	// filesystem is untouched.
	StatusDeclined
	// StatusRemovalFailed means the target still exists after removal.
	StatusRemovalFailed
)

// UninstallStatus is the outcome of an Uninstall call.
type UninstallStatus int

// String returns the human-readable status name.
func (s UninstallStatus) String() string {
	switch s {
	case StatusRemoved:
		return "removed"
	case StatusNotInstalled:
		return "not installed"
	case StatusDeclined:
		return "cancelled"
	case StatusRemovalFailed:
		return "removal failed"
	default:
		return "unknown"
	}
}

// Uninstall removes the bundle tree at target. The confirm callback is
// consulted only when the target exists; a nil callback declines.
//
// The returned error carries detail only for StatusRemovalFailed.
func Uninstall(target string, confirm func() bool) (UninstallStatus, error) {
	if !fsprobe.Exists(target) {
		return StatusNotInstalled, nil
	}

	if confirm == nil || !confirm() {
		return StatusDeclined, nil
	}

	err := os.RemoveAll(target)

	// Re-probe rather than trusting the error: RemoveAll can fail partway
	// and the post-condition is what callers care about.
	if fsprobe.Exists(target) {
		return StatusRemovalFailed, issue.NewErrorContext().
			WithOperation("remove installed bundle").
			WithResource(target).
			WithSuggestion("Check permissions on the target and its contents").
			Wrap(err).
			BuildError()
	}

	return StatusRemoved, nil
}
