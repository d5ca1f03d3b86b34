package main

import (
	"os"

	"github.com/urfave/cli/v2"
	vfattokenlists "github.com/vfat-io/vfat-token-lists"
)

func versionCmd(*cli.Context) error {
	vfattokenlists.PrintVersion(os.Stdout)
	return nil
}
