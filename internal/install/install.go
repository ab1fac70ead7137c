// SPDX-License-Identifier: MPL-2.0

// Package install copies validated pattern bundles into an install target
// and removes them again.
//
// Install and Uninstall never prompt: callers supply the overwrite/removal
// decision as a callback, so the core stays free of terminal coupling and
// every outcome is expressed as a status value rather than a raw I/O error.
// Concurrent invocations against the same target are undefined behavior;
// the design assumes a single invoking user.
package install

import (
	"os"
	"path/filepath"

	"patbundle-cli/internal/fsprobe"
	"patbundle-cli/internal/issue"
	"patbundle-cli/internal/manifest"
)

const (
	// StatusInstalled means the bundle was copied and verified at the target.
	StatusInstalled InstallStatus = iota
	// StatusCancelled means the target existed and the overwrite decision
	// was negative. The filesystem is untouched.
	StatusCancelled
	// StatusSourceNotFound means the source directory is missing or lacks
	// the manifest's primary instructions file.
	StatusSourceNotFound
	// StatusTargetNotWritable means removing the old target or copying the
	// tree failed, typically on permissions.
	StatusTargetNotWritable
	// StatusVerificationFailed means the copy finished but the primary
	// instructions file is absent at the target. Fatal, not retried.
	StatusVerificationFailed
)

type (
	// InstallStatus is the outcome of an Install call.
	InstallStatus int

	// Options carries the explicit inputs for one Install invocation.
	Options struct {
		// Source is the bundle directory to copy from. Never mutated.
		Source string
		// Target is the directory the bundle is copied to.
		Target string
		// Manifest supplies the primary file used for the source sanity
		// check and post-copy verification.
		Manifest manifest.Manifest
		// Confirm is consulted only when Target already exists. A nil
		// callback declines, leaving the target untouched.
		Confirm func() bool
	}
)

// String returns the human-readable status name.
func (s InstallStatus) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusCancelled:
		return "cancelled"
	case StatusSourceNotFound:
		return "source not found"
	case StatusTargetNotWritable:
		return "target not writable"
	case StatusVerificationFailed:
		return "verification failed"
	default:
		return "unknown"
	}
}

// IssueId maps a failing status to its help-catalog entry, or 0 for
// statuses that are not failures.
func (s InstallStatus) IssueId() issue.Id {
	switch s {
	case StatusSourceNotFound:
		return issue.SourceNotFoundId
	case StatusTargetNotWritable:
		return issue.TargetNotWritableId
	case StatusVerificationFailed:
		return issue.VerificationFailedId
	default:
		return 0
	}
}

// Install copies the source bundle to the target path.
//
// The returned error carries detail for StatusTargetNotWritable and, as a
// non-fatal warning, for a failed receipt write alongside StatusInstalled.
// All other statuses return a nil error: the status is the whole story.
func Install(opts Options) (InstallStatus, error) {
	primary := opts.Manifest.PrimaryFile()
	if !fsprobe.IsDir(opts.Source) || !fsprobe.IsFile(filepath.Join(opts.Source, primary)) {
		return StatusSourceNotFound, nil
	}

	if fsprobe.Exists(opts.Target) {
		if opts.Confirm == nil || !opts.Confirm() {
			return StatusCancelled, nil
		}
		if err := os.RemoveAll(opts.Target); err != nil {
			return StatusTargetNotWritable, issue.NewErrorContext().
				WithOperation("replace existing install").
				WithResource(opts.Target).
				WithSuggestion("Check permissions on the target directory").
				Wrap(err).
				BuildError()
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.Target), 0755); err != nil {
		return StatusTargetNotWritable, issue.NewErrorContext().
			WithOperation("create install directory").
			WithResource(filepath.Dir(opts.Target)).
			WithSuggestion("Check permissions on the parent directory").
			Wrap(err).
			BuildError()
	}

	if err := copyTree(opts.Source, opts.Target); err != nil {
		return StatusTargetNotWritable, issue.NewErrorContext().
			WithOperation("copy bundle").
			WithResource(opts.Target).
			WithSuggestion("Check permissions and free disk space at the target").
			Wrap(err).
			BuildError()
	}

	if !fsprobe.IsFile(filepath.Join(opts.Target, primary)) {
		return StatusVerificationFailed, nil
	}

	// The receipt is diagnostic metadata; failing to write it does not
	// invalidate the installed bundle.
	if err := writeReceipt(opts.Target, opts.Source); err != nil {
		return StatusInstalled, issue.WrapWithOperation(err, "write install receipt")
	}

	return StatusInstalled, nil
}
