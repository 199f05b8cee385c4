package main

import (
	_ "github.com/vzhukovs/podman-desktop-sub003/cmd" // for other commands

	"github.com/vzhukovs/podman-desktop-sub003/cmd/root"
)

func main() {
	root.Execute()
}
