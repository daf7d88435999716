// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/lineutils/lineutils/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `lineutils config` command tree.
func newConfigCommand(app *App, opts *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage lineutils configuration",
		Long: `Manage lineutils configuration.

Configuration is stored in:
  - Linux: ~/.config/lineutils/config.cue
  - macOS: ~/Library/Application Support/lineutils/config.cue
  - Windows: %APPDATA%\lineutils\config.cue

Every key can be overridden with a LINEUTILS_ environment variable, e.g.
LINEUTILS_TAIL_LINES=20 or LINEUTILS_UI_COLOR=auto.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpConfig(cmd.Context(), app, opts, format)
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", "cue", "output format (cue or toml)")
	cfgCmd.AddCommand(dumpCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts *globalOptions) error {
	cfg, path, err := app.Config.Load(ctx, app.loadOptions(opts))
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.Stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.Stdout)
	if path != "" {
		fmt.Fprintf(app.Stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(app.Stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.Stdout)

	rows := []struct{ key, value string }{
		{"ui.color", string(cfg.UI.Color)},
		{"ui.verbose", fmt.Sprintf("%v", cfg.UI.Verbose)},
		{"head.lines", fmt.Sprintf("%d", cfg.Head.Lines)},
		{"tail.lines", cfg.Tail.Lines},
		{"decode.invalid_lines", string(cfg.Decode.InvalidLines)},
	}
	for _, r := range rows {
		fmt.Fprintf(app.Stdout, "%s: %s\n", keyStyle.Render(r.key), valueStyle.Render(r.value))
	}
	return nil
}

func showConfigPath(app *App) error {
	path, err := config.FilePath(app.ConfigDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.Stdout, path)
	return nil
}

func dumpConfig(ctx context.Context, app *App, opts *globalOptions, format string) error {
	cfg, _, err := app.Config.Load(ctx, app.loadOptions(opts))
	if err != nil {
		return err
	}

	switch format {
	case "cue":
		fmt.Fprint(app.Stdout, config.GenerateCUE(cfg))
	case "toml":
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.Stdout, out)
	default:
		return fmt.Errorf("invalid argument %q for --format: expected cue or toml", format)
	}
	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig(app.Fs, app.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.Stdout, "%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), path)
		return nil
	}
	fmt.Fprintf(app.Stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
