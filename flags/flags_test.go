package flags

import (
	"testing"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func allFlags() []cli.Flag {
	return append(append([]cli.Flag{}, Flags...), ServeFlags...)
}

// TestFlagsDontSetRequired asserts that no flag is required, so the driver
// runs with no arguments at all.
func TestFlagsDontSetRequired(t *testing.T) {
	for _, flag := range allFlags() {
		reqFlag, ok := flag.(cli.RequiredFlag)
		require.True(t, ok)
		require.False(t, reqFlag.IsRequired(), "flag %s", flag.Names()[0])
	}
}

// TestUniqueFlags asserts that all flag names are unique, to avoid accidental conflicts between the many flags.
func TestUniqueFlags(t *testing.T) {
	seenCLI := make(map[string]struct{})
	for _, flag := range allFlags() {
		name := flag.Names()[0]
		if _, ok := seenCLI[name]; ok {
			t.Errorf("duplicate flag %s", name)
			continue
		}
		seenCLI[name] = struct{}{}
	}
}

func TestEnvVarFormat(t *testing.T) {
	for _, flag := range allFlags() {
		flagName := flag.Names()[0]

		t.Run(flagName, func(t *testing.T) {
			envFlagGetter, ok := flag.(interface {
				GetEnvVars() []string
			})
			require.True(t, ok, "must be able to cast the flag to an EnvVar interface")
			envFlags := envFlagGetter.GetEnvVars()
			require.Equal(t, 1, len(envFlags), "flags should have exactly one env var")

			expectedEnvVar := opservice.FlagNameToEnvVarName(flagName, EnvVarPrefix)
			require.Equal(t, expectedEnvVar, envFlags[0])
		})
	}
}

func TestDriverArgs(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"no flags", []string{"app"}, []string{}},
		{
			"string flags",
			[]string{"app", "--report-path", "out.json", "--platform", "Linux"},
			[]string{"--report-path=out.json", "--platform=Linux"},
		},
		{"bool flag", []string{"app", "--no-color"}, []string{"--no-color"}},
		{"bool flag false", []string{"app", "--no-color=false"}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			app := &cli.App{
				Flags: Flags,
				Action: func(ctx *cli.Context) error {
					got = DriverArgs(ctx)
					return nil
				},
			}
			require.NoError(t, app.Run(tc.args))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDefaults(t *testing.T) {
	app := &cli.App{
		Flags: allFlags(),
		Action: func(ctx *cli.Context) error {
			assert.Equal(t, "slashy_test_report.json", ctx.String(ReportPath.Name))
			assert.Equal(t, "Mac OS", ctx.String(Platform.Name))
			assert.Equal(t, "Chrome", ctx.String(Browser.Name))
			assert.Equal(t, "https://slashy.com", ctx.String(URL.Name))
			assert.Equal(t, "0.0.0.0:5000", ctx.String(Addr.Name))
			assert.False(t, ctx.Bool(NoColor.Name))
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"app"}))
}
