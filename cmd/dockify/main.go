// Command dockify is the command-line client for the dockify health
// backend. Each command owns the presenters it drives for its lifetime.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	assumeYes  bool
	verbose    bool

	cli *client
)

var rootCmd = &cobra.Command{
	Use:           "dockify",
	Short:         "Track and sync your health data with dockify",
	Long:          `Read health data from the device profile, sync it to the dockify backend, and look up nearby users and hospitals.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(configPath, assumeYes, verbose)
		if err != nil {
			return err
		}
		cli = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cli != nil {
			cli.close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $DOCKIFY_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "grant permission requests without asking")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests at debug level")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(1)
	}
}
