package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/lookupgo/internal/app"
	"github.com/specialistvlad/lookupgo/internal/config"
	"github.com/specialistvlad/lookupgo/internal/manifest"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	manifests  []string
	logLevel   string
	logFormat  string
	style      string
}

// Execute builds the command tree and runs it with args.
func Execute(ctx context.Context, outW, errW io.Writer, args []string) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand returns the lookupgo command tree writing results to outW
// and logs to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "lookupgo",
		Short: "Query scenes through a type-keyed object registry",
		Long: `lookupgo loads an HCL scene manifest into type-keyed registries and answers
queries by concrete type, embedded ancestor or declared capability interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML configuration file.")
	pf.StringSliceVarP(&opts.manifests, "manifest", "m", nil, "Manifest file or directory (repeatable). Overrides [scene] manifests.")
	pf.StringVar(&opts.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log output format: 'text' or 'json'.")
	pf.StringVar(&opts.style, "style", "", "Result style: 'plain' or 'table'.")

	root.AddCommand(
		newQueryCommand(opts),
		newInspectCommand(opts),
		newTypesCommand(opts),
		newSimulateCommand(opts),
		newPickCommand(opts),
	)
	return root
}

// resolveConfig loads the configuration file and applies explicitly set flags.
func (o *options) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Scene.Manifests = o.manifests
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if flags.Changed("style") {
		cfg.Output.Style = o.style
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, nil
}

// newApp builds the app. When load is set the scene is loaded as well.
func (o *options) newApp(cmd *cobra.Command, load bool) (*app.App, error) {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	a := app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
	if !load {
		return a, nil
	}
	if err := a.Load(cmd.Context()); err != nil {
		if errors.Is(err, app.ErrNoManifest) {
			return nil, usageError("%v: pass --manifest or set [scene] manifests", err)
		}
		return nil, err
	}
	return a, nil
}

func newQueryCommand(opts *options) *cobra.Command {
	var (
		typeName string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "query [NAME...]",
		Short: "Run manifest queries, or an ad-hoc query with --type",
		RunE: func(cmd *cobra.Command, args []string) error {
			if typeName != "" && len(args) > 0 {
				return usageError("--type cannot be combined with query names")
			}
			a, err := opts.newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := a.Context(cmd.Context())
			if typeName == "" {
				return a.Query(ctx, args...)
			}
			mode := manifest.ModeFirst
			if all {
				mode = manifest.ModeAll
			}
			r, err := a.Find(ctx, typeName, mode)
			if err != nil {
				if errors.Is(err, app.ErrUnknownType) {
					return &ExitError{Code: 2, Message: err.Error()}
				}
				return err
			}
			for _, v := range r.Values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Catalog type name to look up (see 'types').")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Return every object under --type instead of the most recent.")
	return cmd
}

func newInspectCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the registry buckets of the loaded scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Inspect(a.Context(cmd.Context()))
		},
	}
}

func newTypesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the type names usable in queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd, false)
			if err != nil {
				return err
			}
			return a.Types(a.Context(cmd.Context()))
		},
	}
}

func newSimulateCommand(opts *options) *cobra.Command {
	var (
		steps int
		dt    float64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance animated actors and print the resulting frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 0 {
				return usageError("--steps must not be negative, got %d", steps)
			}
			a, err := opts.newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Simulate(a.Context(cmd.Context()), steps, dt)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "Number of ticks to run.")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "Seconds per tick.")
	return cmd
}

func newPickCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pick X Y",
		Short: "List the actors whose collider covers a point",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return usageError("%v", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var coords [2]float64
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return usageError("invalid coordinate %q: %v", arg, errors.Unwrap(err))
				}
				coords[i] = v
			}
			a, err := opts.newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Pick(a.Context(cmd.Context()), coords[0], coords[1])
		},
	}
}
