// SPDX-License-Identifier: MPL-2.0

// lllpack packages manifest-described bundles into distributable archives.
package main

import cmd "lllpack/cmd/lllpack"

func main() {
	cmd.Execute()
}
