package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"
)

func printJson(resp any) {
	encoder := json.NewEncoder(os.Stdout)
	// invoices and URLs have to be printed verbatim
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(resp); err != nil {
		fmt.Println("Could not encode response: " + err.Error())
	}
}

func requireNArgs(n int, action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if ctx.NArg() != n {
			return fmt.Errorf("%s expects %d arguments, got %d\nUsage: %s %s",
				ctx.Command.Name, n, ctx.NArg(), ctx.Command.Name, ctx.Command.ArgsUsage)
		}
		return action(ctx)
	}
}

func parseInt64(value string, name string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s: %w", name, err)
	}
	return parsed, nil
}

// withSpinner shows a spinner until call returns, unless the output is JSON
func withSpinner[T any](quiet bool, suffix string, call func() (T, error)) (T, error) {
	if quiet {
		return call()
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()

	return call()
}
