// Command metamap inspects converter descriptor files and the field
// descriptor tables of tagged structs.
package main

import (
	"context"

	"github.com/scott-cotton/cli"

	"metamap/cmd/metamap/commands"
)

func main() {
	cli.MainContext(context.Background(), commands.Root())
}
