// SPDX-License-Identifier: MPL-2.0

// Command inventory prints an INI inventory as an Ansible dynamic inventory.
package main

import cmd "github.com/invowk/inventory/cmd/inventory"

func main() {
	cmd.Execute()
}
