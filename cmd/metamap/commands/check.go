package commands

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"metamap/internal/diagnostic"
	"metamap/registry"
)

type checkConfig struct {
	*cli.Command
	Verbose bool `cli:"name=verbose aliases=v desc='also print informational findings'"`
}

// CheckCommand returns the check subcommand.
func CheckCommand() *cli.Command {
	cfg := &checkConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "check").
		WithSynopsis("check [--verbose] <file> - Audit a converter descriptor file").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *checkConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: metamap check <file>", cli.ErrUsage)
	}

	return checkFile(cc.Out, newPainter(cc.Out), args[0], cfg.Verbose)
}

// checkFile audits the descriptor file at path against the built-in
// implementations. It returns an error when the audit reports errors.
func checkFile(w io.Writer, p painter, path string, verbose bool) error {
	disc, err := registry.LoadDiscovery(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	d := registry.New(disc, registry.BuiltinImplementations()).Audit()

	for _, diag := range d.All() {
		if diag.Severity == diagnostic.SeverityInfo && !verbose {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", p.severity(diag.Severity), diag)
	}

	fmt.Fprintf(w, "%s: %d error(s), %d warning(s)\n", path, len(d.Errors), len(d.Warnings))
	return d.Err()
}
