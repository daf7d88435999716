// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/lineutils/lineutils/cmd/lineutils"

func main() {
	cmd.Execute()
}
