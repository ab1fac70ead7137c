// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// promptYesNo asks a y/N question on the command's output and reads one
// line from its input. Anything other than "y" or "yes" (case-insensitive)
// declines, including read errors and EOF. Prompting lives at the CLI layer
// only; core operations receive the decision as a callback.
func promptYesNo(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s ", WarningStyle.Render(question), SubtitleStyle.Render("(y/N)"))

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
