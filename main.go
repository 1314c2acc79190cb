package main

import (
	"github.com/mrtool/mrtool/cmd"

	// Modules of mrtool
	_ "github.com/mrtool/mrtool/modrinth"
	_ "github.com/mrtool/mrtool/settings"
	_ "github.com/mrtool/mrtool/utils"
)

func main() {
	cmd.Execute()
}
