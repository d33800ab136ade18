package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"git.autistici.org/ai3/tools/masktr/mask"
	"github.com/google/subcommands"
)

type shellCommand struct{}

func (c *shellCommand) Name() string     { return "shell" }
func (c *shellCommand) Synopsis() string { return "interactive conversion loop" }
func (c *shellCommand) Usage() string {
	return `shell
        Read subnet masks from standard input and print their
        conversions, until EOF or the literal input "0".

`
}

func (c *shellCommand) SetFlags(f *flag.FlagSet) {}

func (c *shellCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return fatalErr(c.run(ctx, os.Stdin, os.Stdout))
}

func (c *shellCommand) run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	var m mask.Mask

	// Read lines on a separate goroutine so that cancellation (on
	// SIGTERM/SIGINT) takes effect while blocked on input.
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(stdout, "Enter subnet mask: ")

		var input string
		select {
		case <-ctx.Done():
			fmt.Fprintln(stdout)
			return nil
		case err := <-readErr:
			fmt.Fprintln(stdout)
			return err
		case input = <-lines:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		// "0" is the exit sentinel, it never reaches the parser.
		if input == "0" {
			return nil
		}

		if err := m.Reparse(input); err != nil {
			fmt.Fprintf(stdout, "error: %v\n\n", err)
			continue
		}

		fmt.Fprintf(stdout, "\nConversion Results:\n")
		fmt.Fprintf(stdout, "Type: %s\n", m.Format())
		fmt.Fprintf(stdout, "Ones/Zeroes: %d / %d\n", m.Ones(), m.Zeros())
		fmt.Fprintf(stdout, "CIDR: %s\n", m.CIDR())
		fmt.Fprintf(stdout, "Octet: %s\n", m.Octet())
		fmt.Fprintf(stdout, "Binary: %s\n\n", m.Binary())
	}
}

func init() {
	subcommands.Register(&shellCommand{}, "")
}
