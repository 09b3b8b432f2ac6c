package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yllada/wg-toggle/common"
	"github.com/yllada/wg-toggle/ui"
	"github.com/yllada/wg-toggle/vpn"
)

func (c *CLI) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Register WireGuard configuration paths",
		Long: `Register one or more wg-quick configuration paths.

Paths are stored as given: they are not checked for existence and
duplicates are kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.managerFor(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range args {
				if err := m.AddPath(cmd.Context(), p); err != nil {
					return err
				}
				common.LogInfo("Registered VPN path %s", p)
			}
			return nil
		},
	}
}

func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every registered path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.managerFor(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.ClearPaths(cmd.Context()); err != nil {
				return err
			}
			common.LogInfo("Cleared all VPN paths")
			return nil
		},
	}
}

func (c *CLI) listCommand() *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered paths in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.managerFor(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if showIDs || c.jsonOutput {
				entries, err := m.ListEntries(cmd.Context())
				if err != nil {
					return err
				}
				if c.jsonOutput {
					return printJSON(out, entries)
				}
				if len(entries) == 0 {
					c.printHint(out, "No VPN paths registered. Use 'wg-toggle add <path>' to register one.")
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tPATH")
				for _, e := range entries {
					fmt.Fprintf(w, "%d\t%s\n", e.ID, e.Path)
				}
				return w.Flush()
			}

			paths, err := m.ListPaths(cmd.Context())
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				c.printHint(out, "No VPN paths registered. Use 'wg-toggle add <path>' to register one.")
				return nil
			}
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show registry IDs")
	return cmd
}

func (c *CLI) toggleCommand(dir vpn.Direction) *cobra.Command {
	var strict bool

	use, alias, short := "up", "on", "Bring every registered tunnel up"
	if dir == vpn.Down {
		use, alias, short = "down", "off", "Bring every registered tunnel down"
	}

	cmd := &cobra.Command{
		Use:     use,
		Aliases: []string{alias},
		Short:   short,
		Long: short + `.

Every path is processed in registration order even when some fail.
One line per path is printed: "<VPN ON|VPN OFF> for <path>: Success",
"Failed - <stderr>" or "Error - <reason>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.toggle(cmd.Context(), cmd.OutOrStdout(), dir)
			if err != nil {
				return err
			}
			if strict && !report.OK() {
				return fmt.Errorf("%w: %d of %d paths failed", common.ErrExternalCommandFailure, report.Failures(), len(report.Results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any path failed")
	return cmd
}

// toggle runs one direction, prints the report and sends the notification.
func (c *CLI) toggle(ctx context.Context, out io.Writer, dir vpn.Direction) (*vpn.Report, error) {
	m, err := c.managerFor(ctx)
	if err != nil {
		return nil, err
	}
	var report *vpn.Report
	if !c.jsonOutput && isTerminal(out) {
		common.LogInfo("Attempting to turn %s...", dir)
		if r, ok := m.Runner().(*vpn.ExecRunner); ok {
			if err := r.Authorize(ctx); err != nil {
				return nil, err
			}
		}
		report, err = ui.RunWithProgress(ctx, out, m.Toggler(), dir, c.useColor(out))
	} else if dir == vpn.Up {
		report, err = m.Activate(ctx)
	} else {
		report, err = m.Deactivate(ctx)
	}
	if err != nil {
		return nil, err
	}

	if c.jsonOutput {
		if err := printJSON(out, report); err != nil {
			return nil, err
		}
	} else {
		fmt.Fprint(out, ui.RenderReport(report, c.useColor(out)))
	}

	if c.cfg.ShowNotifications {
		n, err := ui.NewDBusNotifier()
		if err != nil {
			common.LogWarn("Notifications unavailable: %v", err)
		} else {
			ui.NotifyReport(n, report)
		}
	}
	return report, nil
}

func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether each registered tunnel's interface exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.managerFor(cmd.Context())
			if err != nil {
				return err
			}
			statuses, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOutput {
				return printJSON(out, statuses)
			}
			if len(statuses) == 0 {
				c.printHint(out, "No VPN paths registered.")
				return nil
			}

			color := c.useColor(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTERFACE\tSTATE\tPATH")
			for _, s := range statuses {
				state := "down"
				if s.Up {
					state = "up"
				}
				if color {
					if s.Up {
						state = ui.SuccessStyle.Render(state)
					} else {
						state = ui.DimStyle.Render(state)
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Interface, state, s.Path)
			}
			return w.Flush()
		},
	}
}

func (c *CLI) trayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Run the system tray indicator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.managerFor(cmd.Context())
			if err != nil {
				return err
			}

			var notifier common.Notifier
			if c.cfg.ShowNotifications {
				n, err := ui.NewDBusNotifier()
				if err != nil {
					common.LogWarn("Notifications unavailable: %v", err)
				} else {
					notifier = n
				}
			}

			common.LogInfo("Starting %s tray v%s", common.AppName, c.build.Version)
			ui.NewTrayIndicator(cmd.Context(), m, notifier).Run()
			return nil
		},
	}
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s v%s\n", common.AppName, c.build.Version)
			if c.build.BuildTime != "" && c.build.BuildTime != "unknown" {
				fmt.Fprintf(out, "  Build:  %s\n", c.build.BuildTime)
				fmt.Fprintf(out, "  Commit: %s\n", c.build.Commit)
			}
		},
	}
}
