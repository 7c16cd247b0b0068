package reporting

import (
	"bytes"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/slashymail/shortcut-acceptor/catalog"
)

// TableFormatter formats reports as ASCII tables
type TableFormatter struct {
	title   string
	colored bool
}

// NewTableFormatter creates a new table formatter. With colored set the style
// follows the verdict.
func NewTableFormatter(title string, colored bool) *TableFormatter {
	return &TableFormatter{
		title:   title,
		colored: colored,
	}
}

// Format formats the report results as an ASCII table
func (tf *TableFormatter) Format(report *Report) (string, error) {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle(tf.title)

	t.AppendHeader(table.Row{
		"#", "Category", "Shortcut", "Description", "Status", "Notes",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Category", AutoMerge: true},
		{Name: "Notes", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	for i, outcome := range report.Results {
		t.AppendRow(table.Row{
			i + 1,
			outcome.Category,
			outcome.Shortcut,
			outcome.Description,
			outcome.Status.Icon() + " " + outcome.Status.String(),
			outcome.Notes,
		})
	}

	if tf.colored {
		switch report.Summary.Verdict() {
		case VerdictProductionReady:
			t.SetStyle(table.StyleColoredBlackOnGreenWhite)
		case VerdictMostlyFunctional:
			t.SetStyle(table.StyleColoredBlackOnYellowWhite)
		default:
			t.SetStyle(table.StyleColoredBlackOnRedWhite)
		}
	} else {
		t.SetStyle(table.StyleLight)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		report.Summary.Total,
		"",
		report.Summary.Verdict().String(),
		"",
	})

	t.Render()
	return buf.String(), nil
}

// RenderCatalogTable lists the cases of a catalog without running them
func RenderCatalogTable(c *catalog.Catalog) string {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle(c.Application())
	t.AppendHeader(table.Row{"Category", "Shortcut", "Description", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Category", AutoMerge: true},
	})
	t.SetStyle(table.StyleLight)

	for _, tc := range c.Cases() {
		t.AppendRow(table.Row{tc.Category, tc.Shortcut, tc.Description, tc.Status})
	}
	t.AppendFooter(table.Row{"CASES", c.Len(), "", ""})

	t.Render()
	return buf.String()
}
