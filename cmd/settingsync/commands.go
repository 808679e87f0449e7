package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/settingsync/internal/logtail"
	"github.com/five82/settingsync/internal/settings"
)

var errNotSignedIn = errors.New("not signed in; settings are kept locally")

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings and sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			current := c.sess.Sync.Settings()
			printSettings(out, current)

			if err := current.Validate(); err != nil {
				fmt.Fprintf(out, "\nwarning: %v\n", err)
			}

			st := c.sess.Sync.Status()
			fmt.Fprintln(out)
			switch {
			case !st.Authenticated:
				fmt.Fprintln(out, "sync:     local only")
			case c.sess.Token.Subject() != "":
				fmt.Fprintf(out, "sync:     signed in as %s\n", c.sess.Token.Subject())
			default:
				fmt.Fprintln(out, "sync:     signed in")
			}
			fmt.Fprintf(out, "file:     %s\n", c.sess.Config.SettingsPath)
			fmt.Fprintf(out, "server:   %s\n", c.sess.Config.APIURL)
			return nil
		},
	}
}

func (c *cli) setCmd() *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting",
		Long: `Change one setting and write it to the local file.

When signed in the change is uploaded immediately unless --local is given.

Keys: ` + keyList(),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := settings.Key(args[0])
			if !settings.Known(k) {
				return fmt.Errorf("%w: %q (valid: %s)", settings.ErrUnknownKey, args[0], keyList())
			}
			value, err := settings.ParseValue(k, args[1])
			if err != nil {
				return err
			}
			if err := c.sess.Sync.Update(k, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, c.sess.Sync.Settings().Format(k))

			if local || !c.sess.Auth.Authenticated() {
				return nil
			}
			return c.sess.Sync.SaveNow(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "only write the local file")
	return cmd
}

func (c *cli) resetCmd() *cobra.Command {
	var push bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		Long: `Restore the default settings in the local file.

The server copy is left alone unless --push is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.sess.Sync.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings reset to defaults")
			if !push {
				return nil
			}
			if !c.sess.Auth.Authenticated() {
				return errNotSignedIn
			}
			return c.sess.Sync.SaveNow(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&push, "push", false, "also upload the defaults to the server")
	return cmd
}

func (c *cli) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Upload the current settings now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.sess.Auth.Authenticated() {
				return errNotSignedIn
			}
			if err := c.sess.Sync.SaveNow(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		},
	}
}

func (c *cli) pullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch settings from the server and merge them locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.sess.Auth.Authenticated() {
				return errNotSignedIn
			}
			before := c.sess.Sync.Settings()
			if err := c.sess.Query.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("fetch settings: %w", err)
			}
			after := c.sess.Sync.Settings()

			out := cmd.OutOrStdout()
			changed := 0
			for _, k := range settings.Keys() {
				if before.Format(k) == after.Format(k) {
					continue
				}
				changed++
				fmt.Fprintf(out, "%s: %s -> %s\n", k, before.Format(k), after.Format(k))
			}
			if changed == 0 {
				fmt.Fprintln(out, "already up to date")
			}
			return nil
		},
	}
}

func (c *cli) langCmd() *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "lang TAG",
		Short: "Set text direction from a language tag",
		Long: `Set themeDirection from a BCP 47 language tag.

Arabic (ar, ar-EG, ...) selects rtl; everything else selects ltr. When signed
in the change is uploaded immediately unless --local is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.sess.Sync.SetDirectionByLanguage(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", settings.KeyThemeDirection, c.sess.Sync.Settings().ThemeDirection)

			if local || !c.sess.Auth.Authenticated() {
				return nil
			}
			return c.sess.Sync.SaveNow(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "only write the local file")
	return cmd
}

func (c *cli) logsCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent sync log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := logtail.Read(c.sess.Config.LogPath, lines)
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			for _, line := range logtail.FormatLines(entries) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}

func printSettings(out io.Writer, s settings.Settings) {
	for _, k := range settings.Keys() {
		fmt.Fprintf(out, "%-18s %s\n", k, s.Format(k))
	}
}

func keyList() string {
	keys := settings.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
