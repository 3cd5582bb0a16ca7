package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	"metamap/internal/diagnostic"
	"metamap/registry"
)

type convertersConfig struct {
	*cli.Command
	File string `cli:"name=file aliases=f desc='converter descriptor file (default: built-in descriptors)'"`
}

// ConvertersCommand returns the converters subcommand.
func ConvertersCommand() *cli.Command {
	cfg := &convertersConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "converters").
		WithSynopsis("converters [--file f] - List converter descriptors").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *convertersConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: metamap converters [--file f]", cli.ErrUsage)
	}

	disc := registry.DefaultDiscovery()
	if cfg.File != "" {
		if disc, err = registry.LoadDiscovery(cfg.File); err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.File, err)
		}
	}

	return listConverters(cc.Out, newPainter(cc.Out), disc)
}

// listConverters prints one line per descriptor with its audit status.
func listConverters(w io.Writer, p painter, disc *registry.Static) error {
	d := registry.New(disc, registry.BuiltinImplementations()).Audit()

	status := make(map[string]diagnostic.Diagnostic)
	for _, diag := range d.All() {
		if diag.Type == "" {
			continue
		}
		if _, seen := status[diag.Type]; !seen {
			status[diag.Type] = diag
		}
	}

	fmt.Fprintf(w, "# %s\n", disc)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tIMPL\tSTATUS")
	for _, e := range disc.Entries() {
		diag := status[e.Type]
		var st string
		switch diag.Severity {
		case diagnostic.SeverityError:
			st = p.fail.Sprint("FAIL") + " " + diag.Message
		case diagnostic.SeverityWarning:
			st = p.warn.Sprint("WARN") + " " + diag.Message
		default:
			st = p.ok.Sprint("OK")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Type, e.Impl, st)
	}
	return tw.Flush()
}
