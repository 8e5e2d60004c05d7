package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/relampago/internal/config"
	"github.com/pders01/relampago/internal/debuglog"
	"github.com/pders01/relampago/internal/feed"
	"github.com/pders01/relampago/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	sourceFlag string
	quiet      bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "relampago",
	Short: "Terminal reader for the Notícia Relâmpago news feed",
	Long: `relampago loads the Notícia Relâmpago feed from a site directory or URL,
lists the articles newest first and lets you filter them by topic and text.

Without a subcommand it starts the interactive reader.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui [slug | post.html?slug=...]",
	Short: "Start the interactive reader, optionally on one article",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("relampago %s\n", Version)
		fmt.Println("Notícia Relâmpago terminal reader")
		fmt.Println("github.com/pders01/relampago")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "site directory or base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "skip startup banner")

	rootCmd.AddCommand(tuiCmd, versionCmd)
}

// setup loads configuration and logging for every command that needs them.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd == versionCmd || (cmd.HasParent() && cmd.Parent() == configCmd) {
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if sourceFlag != "" {
		loaded.Source.Location = sourceFlag
	}
	if err := debuglog.Setup(debuglog.ParseLogLevel(loaded.Log.Level), loaded.Log.File); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	tui.ApplyColors(loaded.UI.Colors)
	cfg = loaded
	return nil
}

func newLoader(c *config.Config) (*feed.Loader, error) {
	source, err := feed.NewSource(c.Source)
	if err != nil {
		return nil, err
	}
	return feed.NewLoader(source, c.Source), nil
}

func runTUI(_ *cobra.Command, args []string) error {
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}
	defer debuglog.Close()

	if !quiet {
		tui.ShowBanner(Version)
	}

	app := tui.NewApp(cfg, loader)
	if len(args) == 1 {
		slug, err := feed.SlugFromLocation(args[0])
		if err != nil {
			return err
		}
		app.OpenOnStart(slug)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errShown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
