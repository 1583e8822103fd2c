package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carlsburger/gastrocore/timeclock"
	"github.com/carlsburger/gastrocore/tui"
	"github.com/carlsburger/gastrocore/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timeclock session",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		sess, err := client.Timeclock.Status(ctx)
		if err != nil {
			fail(err)
			return
		}
		printSession(sess)
	},
}

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in and start the shift",
	Run:   applyAction(timeclock.ActionClockIn),
}

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out and close the shift",
	Run:   applyAction(timeclock.ActionClockOut),
}

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Start or end a break",
}

var breakStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a break",
	Run:   applyAction(timeclock.ActionBreakStart),
}

var breakEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the open break",
	Run:   applyAction(timeclock.ActionBreakEnd),
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the interactive timeclock panel",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		log := newLogger(cfg)
		if err := tui.Run(client.Timeclock, newReporter(cfg, log), log, cfg.PollEvery(), cfg.Timeout()); err != nil {
			fail(err)
		}
	},
}

// applyAction runs one timeclock action: refresh the session so the
// executor validates against the server's current state, then apply.
func applyAction(action timeclock.Action) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		log := newLogger(cfg)

		ref := timeclock.NewRefresher(client.Timeclock, log, timeclock.RefresherOptions{
			Interval: cfg.PollEvery(),
			Timeout:  cfg.Timeout(),
		})
		exec := timeclock.NewExecutor(client.Timeclock, ref, newReporter(cfg, log), log)

		ctx := cmd.Context()
		ref.Refresh(ctx)
		sess, err := exec.Apply(ctx, action)
		if err != nil {
			switch {
			case errors.Is(err, timeclock.ErrGuardViolation):
				fmt.Println("⛔ " + timeclock.WarnBreakBeforeClockOut)
			case errors.Is(err, timeclock.ErrIllegalTransition):
				fmt.Printf("⛔ %s not possible while %s\n", action, strings.ToLower(timeclock.Project(sess.State).Label))
			default:
				fail(err)
			}
			return
		}
		printSession(sess)
	}
}

// printSession renders one session the way the cockpit's badge does.
func printSession(sess timeclock.Session) {
	p := timeclock.Project(sess.State)
	fmt.Printf("%s\n", p.Label)
	if sess.ClockInAt != nil {
		fmt.Printf("  clocked in:  %s\n", sess.ClockInAt.In(utils.VenueTZ).Format("15:04"))
	}
	if sess.ClockOutAt != nil {
		fmt.Printf("  clocked out: %s\n", sess.ClockOutAt.In(utils.VenueTZ).Format("15:04"))
	}
	if sess.State != timeclock.StateOff {
		fmt.Printf("  worked %s, breaks %s, net %s\n",
			utils.FormatSeconds(int(sess.TotalWorkSeconds)),
			utils.FormatSeconds(int(sess.TotalBreakSeconds)),
			utils.FormatSeconds(int(sess.NetWorkSeconds)))
	}
	for _, w := range p.Warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}
	if len(p.EnabledActions) > 0 {
		names := make([]string, len(p.EnabledActions))
		for i, a := range p.EnabledActions {
			names[i] = string(a)
		}
		fmt.Printf("  next: %s\n", strings.Join(names, ", "))
	}
}

func init() {
	breakCmd.AddCommand(breakStartCmd)
	breakCmd.AddCommand(breakEndCmd)
}
