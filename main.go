// SPDX-License-Identifier: MPL-2.0

package main

import cmd "packmill/cmd/packmill"

func main() {
	cmd.Execute()
}
