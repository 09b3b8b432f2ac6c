// Package cli provides the wg-toggle command-line interface.
// Every command loads the configuration, opens the path registry and calls
// one vpn.Manager operation.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yllada/wg-toggle/common"
	"github.com/yllada/wg-toggle/config"
	"github.com/yllada/wg-toggle/vpn"
)

// BuildInfo is injected at compile time via ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	Commit    string
}

// ManagerFactory opens the path registry described by cfg.
type ManagerFactory func(ctx context.Context, cfg *config.Config) (*vpn.Manager, error)

// CLI holds the parsed global flags and the collaborators of a single run.
type CLI struct {
	build BuildInfo

	configPath string
	dbPath     string
	verbose    bool
	noColor    bool
	jsonOutput bool

	// NewManager defaults to vpn.NewManager.
	NewManager ManagerFactory
	// FileLogging enables the rotating log file under the config directory.
	FileLogging bool

	cfg     *config.Config
	manager *vpn.Manager
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a CLI with the default collaborators.
func New(build BuildInfo) *CLI {
	return &CLI{
		build:       build,
		NewManager:  vpn.NewManager,
		FileLogging: true,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
}

// SetOutput redirects command output and error messages.
func (c *CLI) SetOutput(stdout, stderr io.Writer) {
	c.stdout = stdout
	c.stderr = stderr
}

// Command builds the cobra command tree.
func (c *CLI) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "wg-toggle",
		Short: "Bring every registered WireGuard tunnel up or down at once",
		Long: lipgloss.NewStyle().Bold(true).Render("wg-toggle") + ` - toggle a list of WireGuard configs

Register wg-quick configuration files once, then bring all of them
up or down with a single command or from the system tray.`,
		Version:           c.build.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetVersionTemplate(fmt.Sprintf("%s v%s\n", common.AppName, c.build.Version))

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Configuration file (default ~/.config/wg-toggle/config.yaml)")
	flags.StringVar(&c.dbPath, "db", "", "Path registry database (overrides database_path)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&c.noColor, "no-color", false, "Disable styled output")
	flags.BoolVar(&c.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		c.addCommand(),
		c.clearCommand(),
		c.listCommand(),
		c.toggleCommand(vpn.Up),
		c.toggleCommand(vpn.Down),
		c.statusCommand(),
		c.trayCommand(),
		c.versionCommand(),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
// Failures are printed as "Error: <message>" on stderr.
func (c *CLI) Execute(ctx context.Context, args []string) int {
	root := c.Command()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		common.LogError("Command failed: %v", err)
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setup loads configuration and the logger before any subcommand runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	logCfg := common.LogConfig{
		Level:        common.LevelInfo,
		ConsoleLevel: common.LevelWarn,
		EnableFile:   c.FileLogging,
		NoColor:      c.noColor,
	}
	if c.verbose {
		logCfg.Level = common.LevelDebug
		logCfg.ConsoleLevel = common.LevelDebug
	}
	if err := common.InitLogger(logCfg); err != nil {
		fmt.Fprintf(c.stderr, "Warning: Could not initialize file logging: %v\n", err)
	}

	var cfg *config.Config
	var err error
	if c.configPath != "" {
		cfg, err = config.LoadFrom(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.Database = c.dbPath
	}
	c.cfg = cfg

	common.LogDebug("Configuration loaded from %s", cfg.Path())
	return nil
}

// managerFor opens the registry once per run.
func (c *CLI) managerFor(ctx context.Context) (*vpn.Manager, error) {
	if c.manager != nil {
		return c.manager, nil
	}
	if c.cfg == nil {
		return nil, errors.New("configuration not loaded")
	}

	m, err := c.NewManager(ctx, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open path registry: %w", err)
	}
	c.manager = m
	return m, nil
}
