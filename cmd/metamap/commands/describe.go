package commands

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	"metamap/descriptor"
	"metamap/internal/common"
)

type describeConfig struct {
	*cli.Command
}

// DescribeCommand returns the describe subcommand.
func DescribeCommand() *cli.Command {
	cfg := &describeConfig{}
	return cli.NewCommandAt(&cfg.Command, "describe").
		WithSynopsis("describe - Print the descriptor tables of the demo types").
		WithRun(cfg.run)
}

func (cfg *describeConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: metamap describe", cli.ErrUsage)
	}

	return describeTypes(cc.Out, newPainter(cc.Out), demoTypes()...)
}

func describeTypes(w io.Writer, p painter, types ...reflect.Type) error {
	for i, t := range types {
		tbl, err := descriptor.For(t)
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, p.ok.Sprint(common.TypeID(tbl.Type)))

		declared := make(map[*descriptor.Field]bool, len(tbl.Declared))
		for _, f := range tbl.Declared {
			declared[f] = true
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tKIND\tKEY\tDIRECTIVES")
		for _, f := range tbl.All {
			name := f.Name
			if !declared[f] {
				name += p.dim.Sprint(" (" + f.DeclaringName() + ")")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, f.Kind, f.Key, directives(f))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// directives renders the non-default attributes of f.
func directives(f *descriptor.Field) string {
	var out []string
	if f.Mandatory {
		out = append(out, "mandatory")
	}
	if f.Default != nil {
		out = append(out, "default="+*f.Default)
	}
	if f.BlankDefault {
		out = append(out, "blankDefault")
	}
	if v, ok := f.InjectedMeta(); ok {
		out = append(out, fmt.Sprintf("defaultMeta=%q", v))
	}
	if f.Nested != nil {
		if f.Nested.Mandatory {
			out = append(out, "mandatory nested")
		}
		if f.Nested.Impl != "" {
			out = append(out, "impl="+f.Nested.Impl)
		}
	}
	if f.Handler != "" {
		out = append(out, "handler="+f.Handler)
	}
	if f.Convert.Format != "" {
		out = append(out, "format="+f.Convert.Format)
	}
	if len(f.Convert.TrueLiterals) > 0 {
		out = append(out, "true="+strings.Join(f.Convert.TrueLiterals, "|"), "false="+strings.Join(f.Convert.FalseLiterals, "|"))
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, " ")
}
