package main

import (
	"context"
	"flag"
	"fmt"

	"git.autistici.org/ai3/tools/masktr/convapi"
	"git.autistici.org/ai3/tools/masktr/mask"
	"git.autistici.org/ai3/tools/masktr/util"
	"github.com/google/subcommands"
)

type convertCommand struct {
	serverURL urlFlag
}

func (c *convertCommand) Name() string     { return "convert" }
func (c *convertCommand) Synopsis() string { return "convert one or more subnet masks" }
func (c *convertCommand) Usage() string {
	return `convert <mask>...
        Convert subnet masks between CIDR, octet and binary
        notations. Masks can be given in any of the three
        notations ("/24", "255.255.255.0",
        "11111111.11111111.11111111.00000000").

`
}

func (c *convertCommand) SetFlags(f *flag.FlagSet) {
	c.serverURL = urlFlag(util.FlagDefault("url", ""))
	f.Var(&c.serverURL, "url", "`URL` of a conversion API server (default: convert locally)")
}

func (c *convertCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		return syntaxErr("not enough arguments")
	}

	return fatalErr(c.run(ctx, f.Args()))
}

func (c *convertCommand) run(ctx context.Context, args []string) error {
	if c.serverURL != "" {
		client := convapi.NewClient(string(c.serverURL), nil)
		for _, arg := range args {
			resp, err := client.Convert(ctx, arg)
			if err != nil {
				return err
			}
			fmt.Printf("CIDR: %s | Octet: %s | Binary: %s\n", resp.CIDR, resp.Octet, resp.Binary)
		}
		return nil
	}

	for _, arg := range args {
		m, err := mask.Parse(arg)
		if err != nil {
			return err
		}
		fmt.Println(m)
	}
	return nil
}

func init() {
	subcommands.Register(&convertCommand{}, "")
}
