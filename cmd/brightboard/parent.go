package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/goodtune/brightboard/internal/config"
	"github.com/goodtune/brightboard/internal/games"
	"github.com/goodtune/brightboard/internal/session"
	"github.com/goodtune/brightboard/internal/settings"
	"github.com/spf13/cobra"
)

// Parent commands work directly on the store. A bolt store is locked by a
// running server, so stop it first or use redis.

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset the star ledger",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stars earned per game",
	RunE:  withCore(runProgressShow),
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all stars and game history",
	RunE:  withCore(runProgressReset),
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change family settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  withCore(runSettingsShow),
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Example: `  brightboard settings set --sound=false --session-length 20
  brightboard settings set --unlimited --pin 4321`,
	RunE: withCore(runSettingsSet),
}

var (
	setSound     bool
	setTVMode    bool
	setLength    int
	setUnlimited bool
	setPIN       string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or control the screen-time session",
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session state and time remaining",
	RunE:  withCore(runSessionStatus),
}

var sessionStartCmd = &cobra.Command{
	Use:   "start [MINUTES]",
	Short: "Start a session (defaults to the configured session length)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withCore(runSessionStart),
}

var sessionEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the session and clear any lock",
	RunE:  withCore(runSessionEnd),
}

var sessionUnlockCmd = &cobra.Command{
	Use:   "unlock PIN",
	Short: "Unlock a locked session with the parent PIN",
	Args:  cobra.ExactArgs(1),
	RunE:  withCore(runSessionUnlock),
}

func init() {
	progressCmd.AddCommand(progressShowCmd, progressResetCmd)

	settingsSetCmd.Flags().BoolVar(&setSound, "sound", true, "Enable sound cues")
	settingsSetCmd.Flags().BoolVar(&setTVMode, "tv", false, "Enable TV mode (arrow-key navigation)")
	settingsSetCmd.Flags().IntVar(&setLength, "session-length", 0, "Session length in minutes (10, 20 or 30)")
	settingsSetCmd.Flags().BoolVar(&setUnlimited, "unlimited", false, "Remove the session length")
	settingsSetCmd.Flags().StringVar(&setPIN, "pin", "", "New 4-digit parent PIN")
	settingsSetCmd.MarkFlagsMutuallyExclusive("session-length", "unlimited")
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	sessionCmd.AddCommand(sessionStatusCmd, sessionStartCmd, sessionEndCmd, sessionUnlockCmd)

	rootCmd.AddCommand(progressCmd, settingsCmd, sessionCmd)
}

// withCore opens the persisted state for a one-shot command.
func withCore(run func(ctx context.Context, cmd *cobra.Command, args []string, c *core) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c, err := openCore(ctx, cfg, cliLogger())
		if err != nil {
			return err
		}
		defer c.Close()

		return run(ctx, cmd, args, c)
	}
}

func runProgressShow(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	printProgress(ctx, cmd.OutOrStdout(), c)
	return nil
}

func printProgress(ctx context.Context, out io.Writer, c *core) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	data := c.ledger.Progress(ctx)

	_, _ = cyan.Fprintln(out, "STAR LEDGER")
	_, _ = yellow.Fprintf(out, "Total stars: %d\n\n", data.TotalStars)

	if len(data.Games) == 0 {
		fmt.Fprintln(out, "No games completed yet.")
		return
	}

	ids := make([]string, 0, len(data.Games))
	for id := range data.Games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		g := data.Games[id]
		title := id
		if game, err := games.ByID(id); err == nil {
			title = game.Title
		}
		last := "-"
		if g.LastPlayedAt != nil {
			last = g.LastPlayedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%-20s stars %-3d best %d/3  played %-3d last %s\n",
			title, g.TotalStars, g.BestScore, g.CompletedCount, last)
	}
}

func runProgressReset(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	if err := c.ledger.ResetAll(ctx); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	_, _ = color.New(color.FgGreen, color.Bold).Fprintln(cmd.OutOrStdout(), "✅ Progress reset")
	return nil
}

func runSettingsShow(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	printSettings(cmd.OutOrStdout(), c.settings.Get())
	return nil
}

func printSettings(out io.Writer, d settings.Data) {
	cyan := color.New(color.FgCyan, color.Bold)

	_, _ = cyan.Fprintln(out, "SETTINGS")
	fmt.Fprintf(out, "Sound:          %s\n", onOff(d.SoundEnabled))
	fmt.Fprintf(out, "TV mode:        %s\n", onOff(d.TVMode))
	if d.SessionLength == nil {
		fmt.Fprintln(out, "Session length: unlimited")
	} else {
		fmt.Fprintf(out, "Session length: %d minutes\n", *d.SessionLength)
	}
	pin := "custom"
	if d.ParentPIN == settings.DefaultPIN {
		pin = "default (" + settings.DefaultPIN + ")"
	}
	fmt.Fprintf(out, "Parent PIN:     %s\n", pin)
}

func runSettingsSet(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	flags := cmd.Flags()

	var u settings.Update
	if flags.Changed("sound") {
		u.SoundEnabled = &setSound
	}
	if flags.Changed("tv") {
		u.TVMode = &setTVMode
	}
	if flags.Changed("session-length") {
		u.SessionLength = settings.LengthOf(setLength)
	}
	if setUnlimited {
		u.SessionLength = settings.Unlimited()
	}
	if flags.Changed("pin") {
		u.ParentPIN = &setPIN
	}

	data, err := c.settings.Update(ctx, u)
	if err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), data)
	return nil
}

func runSessionStatus(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	printSession(cmd.OutOrStdout(), c.guardian.Tick(ctx))
	return nil
}

func printSession(out io.Writer, s session.Status) {
	var stateColor *color.Color
	switch s.State {
	case session.StateLocked:
		stateColor = color.New(color.FgRed, color.Bold)
	case session.StateActive:
		stateColor = color.New(color.FgGreen, color.Bold)
	default:
		stateColor = color.New(color.FgYellow)
	}

	fmt.Fprint(out, "State:     ")
	_, _ = stateColor.Fprintln(out, s.State)
	if s.StartedAt != nil {
		fmt.Fprintf(out, "Started:   %s\n", s.StartedAt.Local().Format("15:04:05"))
	}
	if s.Duration > 0 {
		fmt.Fprintf(out, "Length:    %d minutes\n", s.Duration)
	}
	if s.Remaining != nil {
		fmt.Fprintf(out, "Remaining: %s\n", s.Remaining.Round(time.Second))
	}
}

func runSessionStart(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	var minutes int
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes %q: %w", args[0], err)
		}
		minutes = n
	} else if length := c.settings.Get().SessionLength; length != nil {
		minutes = *length
	} else {
		return fmt.Errorf("no session length configured; pass MINUTES or run 'settings set --session-length'")
	}

	status, err := c.guardian.Start(ctx, minutes)
	if err != nil {
		return err
	}
	printSession(cmd.OutOrStdout(), status)
	return nil
}

func runSessionEnd(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	status, err := c.guardian.End(ctx)
	if err != nil {
		return err
	}
	printSession(cmd.OutOrStdout(), status)
	return nil
}

func runSessionUnlock(ctx context.Context, cmd *cobra.Command, args []string, c *core) error {
	status, err := c.guardian.Unlock(ctx, args[0])
	if err != nil {
		return err
	}
	printSession(cmd.OutOrStdout(), status)
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
