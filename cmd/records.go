package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"clockdeck/internal/app"
	"clockdeck/internal/core/alarm"
	"clockdeck/internal/core/elapsed"
	"clockdeck/internal/core/model"
	"clockdeck/internal/core/stopwatch"
	"clockdeck/internal/storage"
	"clockdeck/internal/tui"
)

var (
	errInvalidTimer = errors.New("a timer needs a name and a duration above zero")
	errInvalidAlarm = errors.New("an alarm needs a title")
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func withStore(opts *options, fn func(store *storage.Store) error) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func renderTable(out io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "nothing stored")
		return
	}
	rendered := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(out, rendered.String())
}

func newTimerCommand(opts *options) *cobra.Command {
	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Manage stored countdown timers",
	}

	timerCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *storage.Store) error {
				return listTimers(opts.out, store)
			})
		},
	})

	timerCmd.AddCommand(&cobra.Command{
		Use:     "add NAME DURATION",
		Short:   "Add a timer",
		Example: `  clockdeck timer add "Tea" 3m30s`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := time.ParseDuration(args[1])
			if err != nil {
				return fmt.Errorf("parse duration: %w", err)
			}
			return withStore(opts, func(store *storage.Store) error {
				return addTimer(opts.out, store, args[0], duration)
			})
		},
	})

	timerCmd.AddCommand(&cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a timer",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *storage.Store) error {
				return store.DeleteTimer(args[0])
			})
		},
	})
	return timerCmd
}

func listTimers(out io.Writer, store *storage.Store) error {
	timers, err := store.ListTimers()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(timers))
	for _, timer := range timers {
		rows = append(rows, []string{timer.ID, timer.Name, elapsed.Format(timer.Duration).Clock()})
	}
	renderTable(out, []string{"ID", "NAME", "DURATION"}, rows)
	return nil
}

func addTimer(out io.Writer, store app.Store, name string, duration time.Duration) error {
	hours := int(duration / time.Hour)
	if hours > model.MaxHours {
		return fmt.Errorf("duration above %d hours", model.MaxHours)
	}
	draft := app.NewTimerDraft()
	draft.Name = name
	draft.Hours = hours
	draft.Minutes = int(duration/time.Minute) % 60
	draft.Seconds = int(duration/time.Second) % 60
	saved, err := draft.Save(store)
	if err != nil {
		return err
	}
	if !saved {
		return errInvalidTimer
	}
	fmt.Fprintln(out, draft.ID)
	return nil
}

func newAlarmCommand(opts *options) *cobra.Command {
	alarmCmd := &cobra.Command{
		Use:   "alarm",
		Short: "Manage stored alarms",
	}

	alarmCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List alarms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *storage.Store) error {
				return listAlarms(opts.out, store)
			})
		},
	})

	var days, chime string
	var once bool
	add := &cobra.Command{
		Use:     "add TIME TITLE",
		Short:   "Add an alarm",
		Example: `  clockdeck alarm add 7:30AM "Wake up" --days Mo,Tu,We,Th,Fr --chime Echo`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := opts.loadSettings()
			if err != nil {
				return err
			}
			draft := app.NewAlarmDraft(settings.DefaultChime(), settings.DefaultSnooze())
			if draft.EndAt, err = model.ParseEndAt(args[0]); err != nil {
				return err
			}
			draft.Title = args[1]
			if cmd.Flags().Changed("days") {
				if draft.RepeatOn, err = model.ParseDays(days); err != nil {
					return err
				}
			}
			draft.RepeatEnabled = !once
			if chime != "" {
				selected, ok := model.ChimeByTitle(chime)
				if !ok {
					return fmt.Errorf("unknown chime %q (one of %s)", chime, strings.Join(model.ChimeTitles(), ", "))
				}
				draft.Chime = selected
			}
			return withStore(opts, func(store *storage.Store) error {
				return addAlarm(opts.out, store, draft)
			})
		},
	}
	add.Flags().StringVar(&days, "days", "", "comma separated day codes (Su,Mo,Tu,We,Th,Fr,Sa)")
	add.Flags().StringVar(&chime, "chime", "", "chime title")
	add.Flags().BoolVar(&once, "once", false, "disable weekly repeat")
	alarmCmd.AddCommand(add)

	alarmCmd.AddCommand(&cobra.Command{
		Use:   "toggle ID",
		Short: "Switch an alarm on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *storage.Store) error {
				return app.ToggleActive(store, args[0])
			})
		},
	})

	alarmCmd.AddCommand(&cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete an alarm",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *storage.Store) error {
				return store.DeleteAlarm(args[0])
			})
		},
	})
	return alarmCmd
}

func listAlarms(out io.Writer, store *storage.Store) error {
	alarms, err := store.ListAlarms()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(alarms))
	for _, stored := range alarms {
		rows = append(rows, []string{
			stored.ID,
			stored.Title,
			stored.EndAt.String(),
			repeatLabel(stored),
			onOff(stored.IsActive),
			stored.Chime.Title,
		})
	}
	renderTable(out, []string{"ID", "TITLE", "TIME", "REPEAT", "ACTIVE", "CHIME"}, rows)
	return nil
}

func addAlarm(out io.Writer, store app.Store, draft app.AlarmDraft) error {
	saved, err := draft.Save(store)
	if err != nil {
		return err
	}
	if !saved {
		return errInvalidAlarm
	}
	fmt.Fprintln(out, draft.ID)
	return nil
}

func repeatLabel(stored model.Alarm) string {
	if !stored.RepeatEnabled || len(stored.RepeatOn) == 0 {
		return "-"
	}
	days := make([]string, 0, len(stored.RepeatOn))
	for _, day := range stored.RepeatOn {
		days = append(days, string(day))
	}
	return strings.Join(days, ",")
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}

func newNextCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Print when each active alarm fires next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *storage.Store) error {
				return printNext(opts.out, store, time.Now())
			})
		},
	}
}

func printNext(out io.Writer, store *storage.Store, now time.Time) error {
	alarms, err := store.ListAlarms()
	if err != nil {
		return err
	}
	type upcoming struct {
		title string
		fire  time.Time
	}
	var pending []upcoming
	for _, stored := range alarms {
		if stored.IsActive {
			pending = append(pending, upcoming{title: stored.Title, fire: alarm.NextFire(now, stored.EndAt)})
		}
	}
	slices.SortStableFunc(pending, func(a, b upcoming) int {
		return a.fire.Compare(b.fire)
	})

	rows := make([][]string, 0, len(pending))
	for _, next := range pending {
		hours, minutes := alarm.Remaining(now, next.fire)
		rows = append(rows, []string{
			next.title,
			next.fire.Format("Mon Jan 2 03:04 PM"),
			fmt.Sprintf("%dh %02dm", hours, minutes),
		})
	}
	renderTable(out, []string{"TITLE", "FIRES", "IN"}, rows)
	return nil
}

func newStopwatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stopwatch",
		Short: "Run the stopwatch in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := stopwatch.New(model.DefaultEngineConfig())
			defer engine.Close()
			opts.logger.Debug("terminal stopwatch started")
			return tui.Run(engine)
		},
	}
}
