// paramctl validates pacemaker parameter files and checks requirement
// traceability.
package main

import (
	"os"

	"github.com/mhatzl/pacemaker/cmd/paramctl/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
