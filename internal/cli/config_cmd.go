package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mithrel/foliate/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and bootstrap configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			for _, o := range config.GetConfigOptions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", o.Key, app.Cfg.Get(o.Key))
			}
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			used := app.Cfg.ConfigFileUsed()
			if used == "" {
				used = config.DefaultConfigPath() + " (not present; defaults in effect)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), used)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			for _, o := range config.GetConfigOptions() {
				fmt.Fprintf(f, "# %s\n", o.Comment)
				switch d := o.Default.(type) {
				case string:
					fmt.Fprintf(f, "%s = %q\n\n", o.Key, d)
				default:
					fmt.Fprintf(f, "%s = %v\n\n", o.Key, d)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
