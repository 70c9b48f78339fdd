package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stackprobe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/stackprobe/internal/connectors"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
	"github.com/custodia-labs/stackprobe/internal/core/services"
)

const examplePagesNDJSON = `{"url":"https://a.test/","content":"<html>__NEXT_DATA__ wp-content</html>"}
{"url":"https://a.test/about","content":"<html>wp-content</html>"}
`

const exampleCSV = "Name,Category,Pages Detected,Confidence\n" +
	`"WordPress","CMS",2,100%` + "\n" +
	`"Next.js","Framework",1,50%`

type testEnv struct {
	detector *services.DetectorService
	settings *services.SettingsService
	archive  *memory.PageArchive
}

// setupTestServices wires real services over in-memory stores.
// stdin feeds "scan -".
func setupTestServices(t *testing.T, stdin string) *testEnv {
	t.Helper()
	t.Setenv(services.EnvAPIKey, "")
	t.Setenv(services.EnvSpiderAPIKey, "")
	t.Setenv(services.EnvAPIURL, "")

	env := &testEnv{
		detector: services.NewDetectorService(nil),
		settings: services.NewSettingsService(memory.NewConfigStore()),
		archive:  memory.NewPageArchive(),
	}
	factory := connectors.NewFactory(env.settings, env.archive, strings.NewReader(stdin))
	SetServices(Services{
		Detector: env.detector,
		Scan:     services.NewScanOrchestrator(env.detector, factory, env.archive, env.settings),
		Settings: env.settings,
		Archive:  services.NewArchiveService(env.archive),
		NewSession: func() driving.DetectorService {
			return services.NewDetectorService(nil)
		},
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return env
}

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writePages(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pages.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
