// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/yunusdonmez-dev/envbuild/internal/meta"
	"github.com/yunusdonmez-dev/envbuild/internal/version"
)

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Config  string `short:"c" default:"envbuild.yml" help:"Path to the build configuration"`
	EnvFile string `name:"env-file" help:"Path to .env file"`

	Build    BuildCmd    `cmd:"" help:"Build the environment image"`
	Plan     PlanCmd     `cmd:"" help:"Render the build definition without building"`
	Manifest ManifestCmd `cmd:"" help:"Parse and lint the dependency manifest"`
	Verify   VerifyCmd   `cmd:"" help:"Check a built image against the configuration"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

type BuildCmd struct {
	NoCache     bool `name:"no-cache" help:"Do not use cache when building"`
	Verbose     bool `short:"v" help:"Stream engine output"`
	DryRun      bool `name:"dry-run" help:"Stage and render, but do not invoke the engine"`
	SkipResolve bool `name:"skip-resolve" help:"Skip the registry tag check"`
}

type PlanCmd struct{}

type ManifestCmd struct{}

type VerifyCmd struct {
	List bool `help:"List all builder-managed images instead of checking one"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Reproducible Airflow environment image builder"),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	loadEnvFile(cli, out)

	switch ctx.Command() {
	case "build":
		return runBuild(cli, deps, out)
	case "plan":
		return runPlan(cli, deps, out)
	case "manifest":
		return runManifest(cli, deps, out)
	case "verify":
		return runVerify(cli, deps, out)
	case "version":
		fmt.Fprintln(out, version.GetVersion())
		return 0
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

// loadEnvFile loads the requested env file, or .env when present.
func loadEnvFile(cli CLI, out io.Writer) {
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
		}
	}
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
