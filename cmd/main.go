package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/devnet-sdk/telemetry"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	acceptor "github.com/slashymail/shortcut-acceptor"
	"github.com/slashymail/shortcut-acceptor/catalog"
	"github.com/slashymail/shortcut-acceptor/exitcodes"
	"github.com/slashymail/shortcut-acceptor/flags"
	"github.com/slashymail/shortcut-acceptor/reporting"
	"github.com/slashymail/shortcut-acceptor/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := newApp()

	// Start telemetry
	ctx, shutdown, err := telemetry.SetupOpenTelemetry(
		context.Background(),
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer shutdown()

	// Start CLI
	ctx = ctxinterrupt.WithSignalWaiterMain(ctx)
	err = app.RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "shortcut-acceptor"
	app.Usage = "Keyboard shortcut acceptance report generator"
	app.Description = "shortcut-acceptor records the shortcut catalog, prints a summary and writes a JSON report"
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Action = cliapp.LifecycleCmd(run)
	app.Commands = []*cli.Command{
		{
			Name:   "serve",
			Usage:  "Serve the report page and trigger runs over HTTP",
			Flags:  cliapp.ProtectFlags(flags.ServeFlags),
			Action: cliapp.LifecycleCmd(serve),
		},
		{
			Name:   "catalog",
			Usage:  "Print the shortcut catalog without recording a run",
			Action: printCatalog,
		},
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			// Every other failure is operational: configuration, catalog or I/O
			cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
		}
	}
	return app
}

func setupLogger(ctx *cli.Context) log.Logger {
	logCfg := oplog.ReadCLIConfig(ctx)
	logger := oplog.NewLogger(oplog.AppOut(ctx), logCfg)
	oplog.SetGlobalLogHandler(logger.Handler())
	oplog.SetupDefaults()
	return logger
}

func run(ctx *cli.Context, closeApp context.CancelCauseFunc) (cliapp.Lifecycle, error) {
	log := setupLogger(ctx)

	cfg, err := acceptor.NewConfig(ctx, log)
	if err != nil {
		// Wrap in RuntimeError to signal this should exit with code 2
		return nil, acceptor.NewRuntimeError("create config", err)
	}

	cfg.Log.Debug("Config", "config", cfg)

	driver, err := acceptor.New(cfg, Version, closeApp, acceptor.WithOutput(ctx.App.Writer))
	if err != nil {
		return nil, acceptor.NewRuntimeError("create acceptor", err)
	}
	return driver, nil
}

func serve(ctx *cli.Context, closeApp context.CancelCauseFunc) (cliapp.Lifecycle, error) {
	log := setupLogger(ctx)

	cfg, err := acceptor.NewConfig(ctx, log)
	if err != nil {
		return nil, acceptor.NewRuntimeError("create config", err)
	}

	binary := ctx.String(flags.DriverBinary.Name)
	if binary == "" {
		binary, err = os.Executable()
		if err != nil {
			return nil, acceptor.NewRuntimeError("locate driver binary", err)
		}
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, acceptor.NewRuntimeError("resolve working directory", err)
	}

	application := cfg.Application
	if application == "" {
		cat, err := catalog.Load(catalog.Options{Log: log, Path: cfg.CatalogPath})
		if err != nil {
			return nil, acceptor.NewRuntimeError("load catalog", err)
		}
		application = cat.Application()
	}

	trigger := service.NewExecTrigger(log, binary, workDir, flags.DriverArgs(ctx)...)
	reports := service.NewReportServer(service.ServerConfig{
		Log:         log,
		Trigger:     trigger,
		ReportPath:  cfg.ReportPath,
		Application: application,
	})

	addr := ctx.String(flags.Addr.Name)
	log.Info("Report service configured", "addr", addr, "driver", binary, "report", cfg.ReportPath)
	return service.New(log, addr, reports), nil
}

func printCatalog(ctx *cli.Context) error {
	log := setupLogger(ctx)

	cfg, err := acceptor.NewConfig(ctx, log)
	if err != nil {
		return acceptor.NewRuntimeError("create config", err)
	}
	cat, err := catalog.Load(catalog.Options{Log: log, Path: cfg.CatalogPath})
	if err != nil {
		return acceptor.NewRuntimeError("load catalog", err)
	}
	_, err = fmt.Fprint(ctx.App.Writer, reporting.RenderCatalogTable(cat))
	return err
}
