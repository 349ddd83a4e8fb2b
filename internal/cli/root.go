// Package cli implements the shelf command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shelf/pkg/shelf"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags    rootFlags
	now      func() time.Time
	settings *viper.Viper
	logger   *slog.Logger
}

// Option configures the command tree built by NewRootCmd.
type Option func(*app)

// WithClock sets the clock used for loan dates and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(a *app) {
		a.now = now
	}
}

// NewRootCmd creates the top-level "shelf" command with global flags
// and all subcommands registered.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:     "shelf",
		Short:   "A small library lending ledger",
		Long:    "Shelf catalogues books, registers members, and tracks loans,\npersisting the ledger to a file, SQLite, or PostgreSQL.",
		Version: shelf.Version,
		// Commands report their own errors; see Run.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadSettings,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/shelf)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/shelf)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(a.newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newBookCmd())
	root.AddCommand(a.newMemberCmd())
	root.AddCommand(a.newBorrowCmd())
	root.AddCommand(a.newReturnCmd())
	root.AddCommand(a.newStatsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line args and returns the process exit code.
// Errors are printed to stderr.
func Run(args []string, stdout, stderr io.Writer, opts ...Option) int {
	root := NewRootCmd(opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(stderr, ee.msg)
		}
		return ee.code
	}
	// Flag parsing and argument count errors from cobra.
	fmt.Fprintln(stderr, "Error:", err)
	return exitUserError
}

// exitError carries the message and exit code of a failed command.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, msg: fmt.Sprintf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, msg: fmt.Sprintf(format, args...)}
}
