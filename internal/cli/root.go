package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rpc-dumper/internal/config"
	"rpc-dumper/internal/resolve"
	"rpc-dumper/internal/schema"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const cliName = "rpc-dumper"

// ErrNoInput is returned when no input path is given.
var ErrNoInput = errors.New("no input path given")

// usageError marks errors in the invocation rather than in the input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// BuildInfo is injected via ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootOptions struct {
	configPath string
	verbose    bool
	debug      bool
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(info BuildInfo, stdout, stderr io.Writer) *cobra.Command {
	v := config.New()
	opts := &rootOptions{}
	conv := resolve.DefaultConventions()

	cmd := &cobra.Command{
		Use:   cliName + " [flags] <path>",
		Short: "Extract RPC message schemas from a compiled protocol library",
		Long: cliName + ` walks the type universe of a protocol library, starting from every
message type, and writes two schema files: rpcs.<ext> with the message
types and types.<ext> with every auxiliary type they reach.

<path> is a metadata dump (.yaml, .yml, .json) or a Go package directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{ErrNoInput}
			}

			c, err := config.Load(v, opts.configPath, ".")
			if err != nil {
				return &usageError{err}
			}

			logger := newLogger(stderr, opts.verbose)

			r := &runner{
				cfg:    c,
				logger: logger,
				stdout: stdout,
				stderr: stderr,
				debug:  opts.debug,
			}

			return r.run(cmd.Context(), args[0])
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default .rpc-dumper.yaml in the working directory)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	flags.BoolVar(&opts.debug, "debug", false, "dump the resolved document to stderr")
	flags.String("provider", config.ProviderAuto, "metadata source: auto, dump or go")
	flags.StringP("output", "o", ".", "output directory")
	flags.StringP("format", "f", string(schema.FormatJSON), "output format: json or yaml")
	flags.String("namespace", conv.Namespace, "protocol namespace")

	for key, name := range map[string]string{
		config.KeyProvider:  "provider",
		config.KeyOutput:    "output",
		config.KeyFormat:    "format",
		config.KeyNamespace: "namespace",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(newVersionCommand(info))

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, info BuildInfo, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(info, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr)
		_ = cmd.Usage()

		return ExitUsage
	}

	return ExitError
}
