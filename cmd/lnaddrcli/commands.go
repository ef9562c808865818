package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/BoltzExchange/lnaddress/internal/tools"
	"github.com/BoltzExchange/lnaddress/internal/utils"
	"github.com/BoltzExchange/lnaddress/pkg/bolt11"
	"github.com/BoltzExchange/lnaddress/pkg/lnurlpay"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var yellowBold = color.New(color.FgHiYellow, color.Bold)

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "Prints the output as JSON",
}

var invoiceCommand = &cli.Command{
	Name:      "invoice",
	Category:  "LNURL",
	Usage:     "Requests an invoice from a lightning address",
	ArgsUsage: "address amount",
	Description: "Resolves the lightning address and requests a BOLT11 invoice for the amount in satoshis.\n" +
		"The invoice is returned as received and has to be checked before paying it.",
	Action: requireNArgs(2, requestInvoice),
	Flags: []cli.Flag{
		jsonFlag,
		&cli.StringFlag{
			Name:  "comment",
			Usage: "Comment for the recipient",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "Asks for a different amount if the service does not accept the requested one",
		},
	},
}

func requestInvoice(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	address := ctx.Args().Get(0)
	amount, err := parseInt64(ctx.Args().Get(1), "amount")
	if err != nil {
		return err
	}

	quiet := ctx.Bool("json")
	comment := ctx.String("comment")

	type fetched struct {
		invoice  string
		metadata *lnurlpay.PayMetadata
	}
	result, err := withSpinner(quiet, "Requesting invoice...", func() (fetched, error) {
		pr, metadata, err := client.FetchInvoice(ctx.Context, address, amount, comment)
		return fetched{pr, metadata}, err
	})

	var rangeErr *lnurlpay.AmountOutOfRangeError
	for errors.As(err, &rangeErr) && ctx.Bool("interactive") {
		amount, err = askAmount(result.metadata, amount)
		if err != nil {
			return err
		}
		result.invoice, err = withSpinner(quiet, "Requesting invoice...", func() (string, error) {
			return client.RequestInvoiceWithComment(ctx.Context, result.metadata, amount, comment)
		})
	}
	if err != nil {
		return err
	}

	invoiceResult := &tools.InvoiceResult{Invoice: result.invoice, Address: address, AmountSats: amount}
	if decoded, err := bolt11.Decode(result.invoice); err == nil && decoded.Network != bolt11.Unknown {
		invoiceResult.Network = decoded.Network.String()
	}

	if quiet {
		printJson(invoiceResult)
		return nil
	}

	if _, err := yellowBold.Printf("Invoice for %s from %s\n", utils.Satoshis(amount), address); err != nil {
		return err
	}
	fmt.Println(result.invoice)
	if invoiceResult.Network != "" {
		fmt.Println("Network: " + invoiceResult.Network)
	}
	return nil
}

func askAmount(metadata *lnurlpay.PayMetadata, previous int64) (int64, error) {
	minimum, maximum := metadata.MinSendableSat(), metadata.MaxSendableSat()
	if minimum > maximum {
		return 0, fmt.Errorf("service only accepts %s to %s msat, which is less than a satoshi",
			utils.FormatMilliSat(metadata.MinSendable), utils.FormatMilliSat(metadata.MaxSendable))
	}

	fmt.Printf("%s is not accepted, the service takes between %s and %s\n",
		utils.Satoshis(previous), utils.Satoshis(minimum), utils.Satoshis(maximum))

	var raw string
	prompt := &survey.Input{
		Message: "Amount in satoshis",
		Default: strconv.FormatInt(int64(minimum), 10),
	}
	validate := func(answer any) error {
		_, err := parseInt64(fmt.Sprint(answer), "amount")
		return err
	}
	if err := survey.AskOne(prompt, &raw, survey.WithValidator(validate)); err != nil {
		return 0, err
	}
	return parseInt64(raw, "amount")
}

var resolveCommand = &cli.Command{
	Name:      "resolve",
	Category:  "LNURL",
	Usage:     "Shows the LNURL-pay metadata of a lightning address",
	ArgsUsage: "address",
	Action:    requireNArgs(1, resolve),
	Flags:     []cli.Flag{jsonFlag},
}

func resolve(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	address, err := lnurlpay.ParseAddress(ctx.Args().First())
	if err != nil {
		return err
	}

	metadata, err := withSpinner(ctx.Bool("json"), "Resolving address...", func() (*lnurlpay.PayMetadata, error) {
		return client.ResolveAddress(ctx.Context, address)
	})
	if err != nil {
		return err
	}

	result := tools.NewAddressResult(address, metadata)
	if ctx.Bool("json") {
		printJson(result)
		return nil
	}

	if _, err := yellowBold.Println(result.Address); err != nil {
		return err
	}

	tbl := newTable()
	tbl.AddRow("LNURL", result.LNURL)
	tbl.AddRow("Callback", result.Callback)
	tbl.AddRow("Min Sendable", utils.FormatMilliSat(result.MinSendableMsat)+" sat")
	tbl.AddRow("Max Sendable", utils.FormatMilliSat(result.MaxSendableMsat)+" sat")
	tbl.AddRow("Comment Length", result.CommentAllowed)
	if result.Description != "" {
		tbl.AddRow("Description", result.Description)
	}
	tbl.Print()
	return nil
}

var decodeCommand = &cli.Command{
	Name:      "decode",
	Category:  "Invoices",
	Usage:     "Reads network and amount of a BOLT11 invoice",
	ArgsUsage: "invoice",
	Description: "Only the human readable part is inspected.\n" +
		"Payment hash, destination, description and expiry are not decoded and the signature is not checked.",
	Action: requireNArgs(1, decode),
	Flags:  []cli.Flag{jsonFlag},
}

func decode(ctx *cli.Context) error {
	decoded, err := bolt11.Decode(ctx.Args().First())
	if err != nil {
		return err
	}

	result := tools.NewDecodeResult(decoded)
	if ctx.Bool("json") {
		printJson(result)
		return nil
	}

	tbl := newTable()
	tbl.AddRow("Network", result.Network)
	tbl.AddRow("Prefix", result.Prefix)
	switch {
	case result.AmountSats != nil:
		tbl.AddRow("Amount", utils.Satoshis(*result.AmountSats))
		tbl.AddRow("Unit", result.Unit)
	case decoded.Amount.Status == bolt11.AmountUnspecified:
		tbl.AddRow("Amount", "any")
	default:
		tbl.AddRow("Amount", decoded.Amount.Err())
	}
	tbl.Print()

	fmt.Println()
	color.Yellow("Note: %s", result.Caveat)
	return nil
}

func newTable() table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Field", "Value")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	return tbl
}
