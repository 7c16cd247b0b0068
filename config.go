package acceptor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-ethereum/log"
	"github.com/slashymail/shortcut-acceptor/flags"
)

// Config holds the application configuration
type Config struct {
	ReportPath  string // Absolute path of the JSON report
	CatalogPath string // Absolute path of the catalog override, empty for the built-in catalog
	Application string // Overrides the catalog's application name when set
	Platform    string
	Browser     string
	URL         string
	SummaryLog  string // Absolute path of the plain-text summary copy, empty to skip
	NoColor     bool
	Log         log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	reportPath := ctx.String(flags.ReportPath.Name)
	if reportPath == "" {
		return nil, errors.New("report path is required")
	}
	absReportPath, err := filepath.Abs(reportPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for report '%s': %w", reportPath, err)
	}

	absCatalog, err := optionalAbs(ctx.String(flags.Catalog.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for catalog: %w", err)
	}
	absSummaryLog, err := optionalAbs(ctx.String(flags.SummaryLog.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for summary log: %w", err)
	}

	return &Config{
		ReportPath:  absReportPath,
		CatalogPath: absCatalog,
		Application: ctx.String(flags.Application.Name),
		Platform:    ctx.String(flags.Platform.Name),
		Browser:     ctx.String(flags.Browser.Name),
		URL:         ctx.String(flags.URL.Name),
		SummaryLog:  absSummaryLog,
		NoColor:     ctx.Bool(flags.NoColor.Name),
		Log:         log,
	}, nil
}

func optionalAbs(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}
