package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roberthamel/promptkit/internal/config"
	"github.com/roberthamel/promptkit/internal/console"
	apperrors "github.com/roberthamel/promptkit/internal/errors"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ~/.config/promptkit/config.yaml",
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(args[0], args[1]); err != nil {
				var ve *config.ValueError
				if errors.As(err, &ve) {
					return apperrors.Usage(err.Error())
				}
				return apperrors.Write("saving config", err)
			}
			console.Success(a.out, "Set %s", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show config values",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.List()
			if err != nil {
				return apperrors.Write("loading config", err)
			}
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(a.out, "%-16s %s\n", k, m[k])
			}
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Remove the config file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Reset(); err != nil {
				return apperrors.Write("resetting config", err)
			}
			console.Success(a.out, "Config reset")
			return nil
		},
	}

	cmd.AddCommand(set, list, reset)
	return cmd
}
