package main

import (
	"fmt"
	"os"

	"github.com/BoltzExchange/lnaddress/internal/build"
	"github.com/BoltzExchange/lnaddress/internal/logger"
	"github.com/BoltzExchange/lnaddress/pkg/lnurlpay"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "lnaddrcli"
	app.Usage = "Request invoices from lightning addresses and inspect BOLT11 invoices"
	app.Version = build.GetVersion()
	app.Flags = []cli.Flag{
		&cli.DurationFlag{
			Name:  "timeout",
			Value: lnurlpay.DefaultTimeout,
			Usage: "Timeout of requests to LNURL-pay services",
		},
		&cli.StringFlag{
			Name:  "proxy",
			Usage: "Proxy URL to use for all requests to LNURL-pay services",
		},
		&cli.StringFlag{
			Name:  "loglevel",
			Value: "error",
			Usage: "Log level (fatal, error, warn, info, debug, silly)",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		logger.Init(logger.Options{Level: ctx.String("loglevel")})
		return nil
	}
	app.Commands = []*cli.Command{
		invoiceCommand,
		resolveCommand,
		decodeCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func getClient(ctx *cli.Context) (*lnurlpay.Client, error) {
	return lnurlpay.NewClient(lnurlpay.Options{
		Timeout: ctx.Duration("timeout"),
		Proxy:   ctx.String("proxy"),
	})
}
