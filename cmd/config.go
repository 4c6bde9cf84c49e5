package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/modekit/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and edit scope configuration",
		Long: `Read and edit scope configuration with dot paths such as "ui.colorOutput".

Reads see the effective config: the global file, overridden by the project
file, overridden by MODEKIT_DEFAULT_MODE, MODEKIT_COLOR_OUTPUT and
MODEKIT_VERBOSE_LOGGING. Writes go to the project file, or to the global
file with --global.

Examples:
  modekit config get defaultMode
  modekit config set ui.colorOutput false --global
  modekit config set preferredWorkflows '[feature-development, bug-fix]'
  modekit config unset defaultMode
  modekit config show`,
	}
	cmd.PersistentFlags().BoolVarP(&global, "global", "g", false, "Use the global scope")

	get := &cobra.Command{
		Use:   "get <path>",
		Short: "Print an effective config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				value, ok, err := a.resolver.ConfigValue(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%s is not set", args[0])
				}
				return a.formatter().FormatValue(value)
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Write a config value",
		Long: `Write a config value. The value is read as YAML, so "true" is a boolean
and "[a, b]" a list. Values that do not fit the config schema are rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				if err := a.resolver.SetConfigValue(args[0], config.ParseValue(args[1]), global); err != nil {
					return err
				}
				_, err := fmt.Fprintf(a.out, "Set %s in %s config\n", args[0], scopeName(global))
				return err
			})
		},
	}

	unset := &cobra.Command{
		Use:   "unset <path>",
		Short: "Remove a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				removed, err := a.resolver.UnsetConfigValue(args[0], global)
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("%s was not set in %s config", args[0], scopeName(global))
				if removed {
					msg = fmt.Sprintf("Unset %s in %s config", args[0], scopeName(global))
				}
				_, err = fmt.Fprintln(a.out, msg)
				return err
			})
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config, or the global file with --global",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				m, err := a.configLayer(cmd, global)
				if err != nil {
					return err
				}
				if m == nil {
					m = map[string]any{}
				}

				f := a.formatter()
				if f.JSON() {
					return f.Encode(m)
				}
				data, err := yaml.Marshal(m)
				if err != nil {
					return fmt.Errorf("encoding config: %w", err)
				}
				_, err = a.out.Write(data)
				return err
			})
		},
	}

	cmd.AddCommand(get, set, unset, show)
	return cmd
}

// configLayer returns the merged config, or one scope's file when --global
// was given explicitly.
func (a *app) configLayer(cmd *cobra.Command, global bool) (map[string]any, error) {
	if !cmd.Flags().Changed("global") {
		return a.resolver.ConfigMap()
	}
	project, globalStore := a.resolver.Scopes()
	if global {
		return globalStore.ConfigMap()
	}
	return project.ConfigMap()
}

func scopeName(global bool) string {
	if global {
		return "global"
	}
	return "project"
}
