package main

import (
	"context"
	"flag"
	"fmt"

	"git.autistici.org/ai3/tools/masktr/convapi"
	"git.autistici.org/ai3/tools/masktr/util"
	"github.com/google/subcommands"
)

type historyCommand struct {
	serverURL urlFlag
	format    string
	limit     int
}

func (c *historyCommand) Name() string     { return "history" }
func (c *historyCommand) Synopsis() string { return "show recent conversions from a server" }
func (c *historyCommand) Usage() string {
	return `history
        Query a conversion API server for its most recent
        conversions.

`
}

func (c *historyCommand) SetFlags(f *flag.FlagSet) {
	c.serverURL = urlFlag(util.FlagDefault("url", ""))
	f.Var(&c.serverURL, "url", "`URL` of the conversion API server")
	f.StringVar(&c.format, "format", "", "only show conversions from this input notation (cidr, octet, binary)")
	f.IntVar(&c.limit, "limit", 20, "maximum `number` of entries to show")
}

func (c *historyCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.serverURL == "" {
		return syntaxErr("must specify --url")
	}

	return fatalErr(c.run(ctx))
}

func (c *historyCommand) run(ctx context.Context) error {
	client := convapi.NewClient(string(c.serverURL), nil)

	entries, err := client.History(ctx, c.format, c.limit)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%s %-8s %-35s -> CIDR: %s | Octet: %s | Binary: %s\n",
			e.Stamp.Format("2006-01-02T15:04:05"), e.Format, e.Input,
			e.CIDR, e.Octet, e.Binary)
	}
	return nil
}

func init() {
	subcommands.Register(&historyCommand{}, "")
}
