package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vzhukovs/podman-desktop-sub003/cmd/root"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "manage settings",
	Long: `Manage the settings of podmanctl.

Settings are stored in settings.yaml in the configuration directory,
keys are dotted paths e.g. 'podman.binary.path'.`,
}

// configListCmd represents the config list command
var configListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list settings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.Close()

		vals := a.Settings().Values()
		keys := make([]string, 0, len(vals))
		for k := range vals {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 4, 8, 4, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE")
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%v\n", k, vals[k])
		}
		return w.Flush()
	},
}

// configGetCmd represents the config get command
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "get a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.Close()

		v, ok := a.Settings().Get(args[0])
		if !ok {
			return fmt.Errorf("unknown setting '%s'", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "update a setting",
	Long: `Update a setting.

The value is parsed as YAML, 'true' and 'false' are booleans.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseValue(args[1])
		if err != nil {
			return err
		}

		a := newApp()
		defer a.Close()

		if err := a.Settings().Update(args[0], value); err != nil {
			return err
		}
		logrus.Infof("%s updated", args[0])
		return nil
	},
}

// parseValue parses a setting value from the command line.
func parseValue(s string) (any, error) {
	if s == "" {
		return "", nil
	}

	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid value '%s': %w", s, err)
	}
	switch v.(type) {
	case map[string]any, []any:
		return nil, fmt.Errorf("invalid value '%s': only scalar values are supported", s)
	case nil:
		return "", nil
	}
	return v, nil
}

func init() {
	root.Cmd().AddCommand(configCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
