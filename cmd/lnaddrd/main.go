package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/BoltzExchange/lnaddress/internal/build"
	"github.com/BoltzExchange/lnaddress/internal/config"
	"github.com/BoltzExchange/lnaddress/internal/logger"
	"github.com/BoltzExchange/lnaddress/internal/tools"
	"github.com/BoltzExchange/lnaddress/internal/utils"
	"github.com/BoltzExchange/lnaddress/pkg/lnurlpay"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"
)

func main() {
	defaultDataDir, err := utils.GetDefaultDataDir()
	if err != nil {
		fmt.Println("Could not get home directory: " + err.Error())
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(defaultDataDir, os.Args[1:])
	if errors.Is(err, config.ErrShowVersion) {
		fmt.Println(build.GetVersion())
		fmt.Println("Built with: " + runtime.Version())
		os.Exit(0)
	}
	if errors.Is(err, flags.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Println("Could not load config: " + err.Error())
		os.Exit(1)
	}

	logger.Init(cfg.Log)
	logger.Infof("Starting lnaddrd %s", build.GetVersion())
	logger.Infof("Using data dir: %s", cfg.DataDir)

	client, err := lnurlpay.NewClient(cfg.LnurlOptions())
	if err != nil {
		logger.Fatalf("Could not create LNURL client: %v", err)
	}
	if cfg.Lnurl.Proxy != "" {
		logger.Infof("Sending LNURL requests through proxy %s", cfg.Lnurl.Proxy)
	}

	server := tools.NewServer(tools.NewToolset(client), cfg.Http.Cors)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.ListenAndServe(ctx, cfg.HttpAddress())
	})

	if err := group.Wait(); err != nil {
		logger.Fatalf("Tool API failed: %v", err)
	}
	logger.Info("Shut down")
}
