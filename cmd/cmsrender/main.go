package main

import (
	"os"

	"github.com/jrsteele09/decap-oauth-bridge/cmd/cmsrender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
