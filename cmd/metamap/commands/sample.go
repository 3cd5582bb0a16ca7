package commands

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"

	"metamap/mapper"
)

type sampleConfig struct {
	*cli.Command
	Back bool `cli:"name=back aliases=b desc='unmap the metadata again and print the result'"`
}

// SampleCommand returns the sample subcommand.
func SampleCommand() *cli.Command {
	cfg := &sampleConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "sample").
		WithSynopsis("sample [--back] - Map the demo value and print its metadata").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *sampleConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: metamap sample [--back]", cli.ErrUsage)
	}

	return writeSample(cc.Out, cfg.Back)
}

// writeSample maps the demo value and writes the metadata as YAML, nulls
// included. With back set, it also unmaps the metadata into a new value.
func writeSample(w io.Writer, back bool) error {
	m := demoMapper()

	md, err := m.Map(demoValue(), nil)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(md)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if !back {
		return nil
	}

	c, err := mapper.UnmapTo[Customer](m, md)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "---")
	out, err = yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
