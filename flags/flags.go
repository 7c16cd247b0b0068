package flags

import (
	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

const EnvVarPrefix = "SHORTCUT_ACCEPTOR"

var (
	ReportPath = &cli.StringFlag{
		Name:    "report-path",
		Value:   "slashy_test_report.json",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "REPORT_PATH"),
		Usage:   "Path of the JSON report file, overwritten on every run",
	}
	Catalog = &cli.StringFlag{
		Name:    "catalog",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "CATALOG"),
		Usage:   "Path to a shortcut catalog YAML file. Empty uses the built-in catalog",
	}
	Application = &cli.StringFlag{
		Name:    "application",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "APPLICATION"),
		Usage:   "Application name recorded in the report. Empty uses the catalog's application",
	}
	Platform = &cli.StringFlag{
		Name:    "platform",
		Value:   "Mac OS",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "PLATFORM"),
		Usage:   "Platform recorded in the report metadata",
	}
	Browser = &cli.StringFlag{
		Name:    "browser",
		Value:   "Chrome",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "BROWSER"),
		Usage:   "Browser recorded in the report metadata",
	}
	URL = &cli.StringFlag{
		Name:    "url",
		Value:   "https://slashy.com",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "URL"),
		Usage:   "Application URL recorded in the report metadata",
	}
	SummaryLog = &cli.StringFlag{
		Name:    "summary-log",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SUMMARY_LOG"),
		Usage:   "Optional path of a plain-text copy of the console summary",
	}
	NoColor = &cli.BoolFlag{
		Name:    "no-color",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "NO_COLOR"),
		Usage:   "Render the results table without colour",
	}

	Addr = &cli.StringFlag{
		Name:    "addr",
		Value:   "0.0.0.0:5000",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "ADDR"),
		Usage:   "Listen address of the report service",
	}
	DriverBinary = &cli.StringFlag{
		Name:    "driver-binary",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "DRIVER_BINARY"),
		Usage:   "Binary invoked by /run-tests. Empty re-runs this executable",
	}
)

var driverFlags = []cli.Flag{
	ReportPath,
	Catalog,
	Application,
	Platform,
	Browser,
	URL,
	SummaryLog,
	NoColor,
}

// Flags are accepted by every command
var Flags []cli.Flag

// ServeFlags are accepted by the serve command only
var ServeFlags = []cli.Flag{
	Addr,
	DriverBinary,
}

func init() {
	Flags = append(driverFlags, oplog.CLIFlags(EnvVarPrefix)...)
}

// DriverArgs returns the driver flags explicitly set on ctx as command line
// arguments, so a spawned driver sees the same configuration.
func DriverArgs(ctx *cli.Context) []string {
	args := make([]string, 0)
	for _, f := range driverFlags {
		name := f.Names()[0]
		if !ctx.IsSet(name) {
			continue
		}
		if _, ok := f.(*cli.BoolFlag); ok {
			if ctx.Bool(name) {
				args = append(args, "--"+name)
			}
			continue
		}
		args = append(args, "--"+name+"="+ctx.String(name))
	}
	return args
}
