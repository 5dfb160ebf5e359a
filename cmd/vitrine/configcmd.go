package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llehouerou/vitrine/internal/config"
	"github.com/llehouerou/vitrine/internal/errmsg"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init [library-dir...]",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := config.UserConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			sources := make([]string, 0, len(args))
			for _, a := range args {
				abs, err := filepath.Abs(a)
				if err != nil {
					return err
				}
				sources = append(sources, abs)
			}
			if err := config.WriteDefault(path, sources, force); err != nil {
				return errmsg.Wrap(errmsg.OpConfigWrite, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "file to write (default ~/.config/vitrine/config.toml)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return errmsg.Wrap(errmsg.OpConfigLoad, err)
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
