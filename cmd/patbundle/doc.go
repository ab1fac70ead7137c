// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for patbundle.
//
// This package implements the Cobra command hierarchy: the root command and
// subcommands for installing, validating, inspecting, and uninstalling
// pattern bundles. Command handlers stay thin; prompting happens here and
// only here, while the install/validate packages receive decision values.
package cmd
