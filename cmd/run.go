package main

import (
	"github.com/0xPolygonHermez/zkevm-node/log"
	"github.com/urfave/cli/v2"

	"github.com/vfat-io/vfat-token-lists/config"
	"github.com/vfat-io/vfat-token-lists/logofetch"
	"github.com/vfat-io/vfat-token-lists/pipeline"
)

func start(ctx *cli.Context) error {
	c, err := config.Load(ctx.String(flagCfg))
	if err != nil {
		return err
	}
	setupLog(c.Log)
	applyFlags(ctx, &c.Ingest)

	acquirer := logofetch.NewAcquirer(logofetch.NewHTTPFetcher())
	p, err := pipeline.New(pipeline.Config{
		InputFile:     c.Ingest.Input,
		TokenListsDir: c.Ingest.TokenListsDir,
		LogosDir:      c.Ingest.LogosDir,
		Size:          c.Ingest.Size,
		Format:        c.Ingest.Format,
		ForceLogo:     c.Ingest.ForceLogo,
		DryRun:        c.Ingest.DryRun,
	}, acquirer)
	if err != nil {
		log.Error(err)
		return err
	}

	stats, err := p.Run()
	if err != nil {
		log.Error(err)
		return err
	}
	log.Infof("run finished: added=%d written=%d skipped=%d failed=%d",
		stats.Added, stats.Written, stats.Skipped, stats.Failed)
	return nil
}

// applyFlags overrides the loaded configuration with the command line
// flags that were set explicitly.
func applyFlags(ctx *cli.Context, c *config.IngestConfig) {
	if ctx.IsSet(flagInput) {
		c.Input = ctx.String(flagInput)
	}
	if ctx.IsSet(flagTokenListsDir) {
		c.TokenListsDir = ctx.String(flagTokenListsDir)
	}
	if ctx.IsSet(flagLogosDir) {
		c.LogosDir = ctx.String(flagLogosDir)
	}
	if ctx.IsSet(flagSize) {
		c.Size = ctx.Int(flagSize)
	}
	if ctx.IsSet(flagFormat) {
		c.Format = ctx.String(flagFormat)
	}
	if ctx.IsSet(flagForceLogo) {
		c.ForceLogo = ctx.Bool(flagForceLogo)
	}
	if ctx.IsSet(flagDryRun) {
		c.DryRun = ctx.Bool(flagDryRun)
	}
}

func setupLog(c log.Config) {
	log.Init(c)
}
