package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	flagCfg           = "cfg"
	flagInput         = "input"
	flagTokenListsDir = "token-lists-dir"
	flagLogosDir      = "logos-dir"
	flagSize          = "size"
	flagFormat        = "format"
	flagForceLogo     = "force-logo"
	flagDryRun        = "dry-run"
)

const (
	// App name
	appName = "vfat-token-lists"
	// version represents the program based on the git tag
	version = "v0.1.0"
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Version = version
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     flagCfg,
			Aliases:  []string{"c"},
			Usage:    "Configuration `FILE`",
			Required: false,
		},
		&cli.StringFlag{
			Name:     flagInput,
			Aliases:  []string{"i"},
			Usage:    "Input batch `FILE` with the tokens to ingest",
			Required: true,
		},
		&cli.StringFlag{
			Name:  flagTokenListsDir,
			Usage: "Directory holding the per-chain registry files",
		},
		&cli.StringFlag{
			Name:  flagLogosDir,
			Usage: "Directory holding the normalized logo assets",
		},
		&cli.IntFlag{
			Name:  flagSize,
			Usage: "Square pixel size of the normalized logos",
		},
		&cli.StringFlag{
			Name:  flagFormat,
			Usage: "Logo output format: png, jpg, jpeg or webp",
		},
		&cli.BoolFlag{
			Name:  flagForceLogo,
			Usage: "Reprocess logos even when the asset already exists",
		},
		&cli.BoolFlag{
			Name:  flagDryRun,
			Usage: "Report what would change without touching registries or logos",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:    "run",
			Aliases: []string{},
			Usage:   "Ingest a token batch into the registries and process logos",
			Action:  start,
			Flags:   flags,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}
}
