// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "patbundle-cli/cmd/patbundle"
)

func main() {
	cmd.Execute()
}
