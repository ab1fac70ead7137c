// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"patbundle-cli/internal/issue"
)

// fail prints a styled error and converts it to exit code 1. Actionable
// errors render their suggestions; --verbose adds the full error chain.
func fail(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	msg := err.Error()
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		msg = actionable.Format(verbose)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", failureMark, ErrorStyle.Render(msg))

	return &ExitError{Code: 1, Err: err}
}

// failStatus prints a failing operation status, its detail error when
// present, and - in verbose mode - the rendered help text for the matching
// issue from the catalog. Always exits 1.
func failStatus(cmd *cobra.Command, message string, id issue.Id, detail error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "%s %s\n", failureMark, ErrorStyle.Render(message))

	if detail != nil {
		var actionable *issue.ActionableError
		if errors.As(detail, &actionable) {
			fmt.Fprintln(stderr, actionable.Format(verbose))
		} else {
			fmt.Fprintln(stderr, detail.Error())
		}
	}

	if verbose && id != 0 {
		if known := issue.Get(id); known != nil {
			if help, err := known.Render("auto"); err == nil {
				fmt.Fprintln(stderr, help)
			}
		}
	}

	return &ExitError{Code: 1}
}
