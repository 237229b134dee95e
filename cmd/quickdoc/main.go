// Command quickdoc is a terminal viewer that shows documentation for the
// program element under the mouse.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

func report(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(version()).ExecuteContext(ctx); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}
	return nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "unknown"
	}
	return info.Main.Version
}

func newRootCommand(version string) *cobra.Command {
	h := &viewer{}

	cmd := &cobra.Command{
		Use:           "quickdoc [flags] files...",
		Short:         "View source files with documentation on hover",
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	h.bindFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return h.Run(cmd.Context(), afero.NewOsFs(), cmd, args)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			c.Println(cmd.Version)
		},
	})
	return cmd
}
