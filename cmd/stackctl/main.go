package main

import (
	"os"

	"stackctl/internal/stackctl"
)

func main() {
	os.Exit(stackctl.Main())
}
