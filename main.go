// SPDX-License-Identifier: MPL-2.0

package main

import cmd "wpsctl/cmd/wpsctl"

func main() {
	cmd.Execute()
}
