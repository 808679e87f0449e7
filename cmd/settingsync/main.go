package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/settingsync/internal/app"
)

// noSession marks commands that manage their own session.
const noSession = "no-session"

// cli holds global flags and the session shared by subcommands.
type cli struct {
	configPath string
	verbose    bool
	offline    bool

	sess *app.Session
}

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env in the working directory; missing is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "settingsync: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "settingsync",
		Short: "Local-first settings synchronizer",
		Long: `settingsync keeps your presentation settings in a local file and mirrors
them to your account on the settings server.

Edits are written locally right away. While you are signed in they are
uploaded after a short quiet period, and server changes are merged back
without echoing them.

Run without arguments to open the settings drawer.`,
		Annotations:       map[string]string{noSession: "true"},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.openSession,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.sess != nil {
				c.sess.Close()
				c.sess = nil
			}
		},
		RunE: c.runTUI,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/settingsync/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&c.offline, "offline", false, "never contact the settings server")

	root.AddCommand(
		c.tuiCmd(),
		c.showCmd(),
		c.setCmd(),
		c.resetCmd(),
		c.saveCmd(),
		c.pullCmd(),
		c.langCmd(),
		c.logsCmd(),
	)
	return root
}

func (c *cli) openSession(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[noSession] != "" {
		return nil
	}
	sess, err := app.Open(cmd.Context(), app.Options{
		ConfigPath: c.configPath,
		Offline:    c.offline,
		Verbose:    c.verbose,
		LogToFile:  true,
	})
	if err != nil {
		return err
	}
	c.sess = sess
	return nil
}

func (c *cli) runTUI(cmd *cobra.Command, args []string) error {
	return app.Run(cmd.Context(), app.Options{
		ConfigPath: c.configPath,
		Offline:    c.offline,
		Verbose:    c.verbose,
	})
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive settings drawer",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noSession: "true"},
		RunE:        c.runTUI,
	}
}
