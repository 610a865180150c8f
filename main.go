package main

import (
	"os"

	"sourcespell/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
