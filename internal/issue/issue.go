// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known failure condition.
type Id int

const (
	SourceNotFoundId Id = iota + 1
	TargetNotWritableId
	VerificationFailedId
	RemovalFailedId
	ManifestParseErrorId
	ConfigLoadFailedId
	BundleNotInstalledId
)

// MarkdownMsg is markdown help text rendered in the terminal.
type MarkdownMsg string

// Issue is a known failure condition with remediation help.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue's markdown help using the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Source bundle not found!

The source directory does not exist or is missing its primary
instructions file.

## Things you can try:
- Check the path passed via --source
- Validate the source layout first:
~~~
$ patbundle validate --target /path/to/source
~~~
- Make sure the bundle root contains PATTERNS.md (or the primary
  file declared in your manifest)`,
	}

	targetNotWritableIssue = &Issue{
		id: TargetNotWritableId,
		mdMsg: `
# Target not writable!

Copying into the install target failed, most commonly due to
permissions.

## Things you can try:
- Check permissions on the target directory and its parents
- Install into a directory you own:
~~~
$ patbundle install --target ~/.patbundle/bundle
~~~`,
	}

	verificationFailedIssue = &Issue{
		id: VerificationFailedId,
		mdMsg: `
# Post-copy verification failed!

The copy finished but the primary instructions file is missing at the
target. The copy silently failed or was incomplete; the target may be
in a partial state.

## Things you can try:
- Check free disk space on the target filesystem
- Remove the partial target and install again:
~~~
$ patbundle uninstall && patbundle install
~~~`,
	}

	removalFailedIssue = &Issue{
		id: RemovalFailedId,
		mdMsg: `
# Removal failed!

The install target still exists after attempting to remove it.

## Things you can try:
- Check for open files or processes holding the directory
- Check permissions on the target and its contents
- Remove it manually and re-run the command`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse manifest!

Your manifest file contains syntax errors or violates the manifest
schema.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Empty required.files or required.dirs (both must be non-empty)
- Unknown field names

## Example of a valid manifest:
~~~cue
required: {
	files: ["PATTERNS.md", "README.md"]
	dirs: ["references", "templates", "examples"]
}
optional: [
	{dir: "references", files: ["creational.md", "structural.md"]},
]
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue could not be loaded.

## Things you can try:
- Check the file for CUE syntax errors
- Show where the config file is expected:
~~~
$ patbundle config path
~~~
- Delete the file to fall back to built-in defaults`,
	}

	bundleNotInstalledIssue = &Issue{
		id: BundleNotInstalledId,
		mdMsg: `
# No bundle installed!

Nothing is installed at the target path.

## Things you can try:
- Install the bundle first:
~~~
$ patbundle install --source /path/to/bundle
~~~
- Point at a different target with --target`,
	}

	issues = map[Id]*Issue{
		sourceNotFoundIssue.Id():     sourceNotFoundIssue,
		targetNotWritableIssue.Id():  targetNotWritableIssue,
		verificationFailedIssue.Id(): verificationFailedIssue,
		removalFailedIssue.Id():      removalFailedIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		bundleNotInstalledIssue.Id(): bundleNotInstalledIssue,
	}
)

// Values returns all known issues in id order.
func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return vals
}

// Get returns the issue for the given id, or nil if unknown.
func Get(id Id) *Issue {
	return issues[id]
}
