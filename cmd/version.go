package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vzhukovs/podman-desktop-sub003/app"
	"github.com/vzhukovs/podman-desktop-sub003/cmd/root"
	"github.com/vzhukovs/podman-desktop-sub003/config"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version of podmanctl",
	Long:  `Print the version of podmanctl`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version := config.AppVersion()
		fmt.Println(config.AppName, "version", version.Version)
		fmt.Println("git commit:", version.Revision)
		fmt.Println("bundled podman:", app.BundledVersion)
	},
}

func init() {
	root.Cmd().AddCommand(versionCmd)
}
