// Package commands implements the metamap command tree.
package commands

import (
	"github.com/scott-cotton/cli"
)

const usageText = `metamap - struct to metadata map tooling

Usage:
  metamap converters [--file f]   List converter descriptors and resolve each
  metamap check <file>            Audit a converter descriptor file
  metamap describe                Print the descriptor tables of the demo types
  metamap sample                  Map the demo value and print its metadata

Examples:
  metamap converters
  metamap converters --file converters.yaml
  metamap check converters.yaml`

// Root returns the root command for metamap.
func Root() *cli.Command {
	return cli.NewCommand("metamap").
		WithSynopsis("metamap - struct to metadata map tooling").
		WithDescription(usageText).
		WithSubs(
			ConvertersCommand(),
			CheckCommand(),
			DescribeCommand(),
			SampleCommand(),
		)
}
