package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/0xPolygonHermez/zkevm-node/log"
	"github.com/pkg/errors"

	"github.com/vfat-io/vfat-token-lists/gerror"
	"github.com/vfat-io/vfat-token-lists/imgproc"
	"github.com/vfat-io/vfat-token-lists/logofetch"
	"github.com/vfat-io/vfat-token-lists/models/tokenlist"
	"github.com/vfat-io/vfat-token-lists/registry"
	"github.com/vfat-io/vfat-token-lists/utils"
)

// Config carries the resolved settings of one ingestion run.
type Config struct {
	InputFile     string
	TokenListsDir string
	LogosDir      string
	Size          int
	Format        string
	ForceLogo     bool
	DryRun        bool
	// WorkDir is the base for resolving relative logo paths and the
	// containment root for the delete-source-after-write cleanup.
	// Defaults to the current working directory.
	WorkDir string
}

// Stats are the aggregate counts of one run.
type Stats struct {
	Added   int
	Written int
	Skipped int
	Failed  int
}

// Pipeline drives one end-to-end ingestion run.
type Pipeline struct {
	cfg      Config
	acquirer *logofetch.Acquirer
}

// New validates the run configuration and builds a Pipeline.
func New(cfg Config, acquirer *logofetch.Acquirer) (*Pipeline, error) {
	if cfg.Size <= 0 {
		return nil, errors.Wrapf(gerror.ErrInvalidSize, "%d", cfg.Size)
	}
	if !imgproc.ValidFormat(cfg.Format) {
		return nil, errors.Wrapf(gerror.ErrInvalidFormat, "%q", cfg.Format)
	}
	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg.WorkDir = wd
	}
	return &Pipeline{cfg: cfg, acquirer: acquirer}, nil
}

// Run executes the full flow: parse and dedup the input batch, group
// by chain, merge each chain registry, process logos, persist
// registries and return the aggregate stats. Per-token
// logo failures are counted and logged, never fatal; the returned
// error covers only the fatal category (bad input file, registry read
// or write failures).
func (p *Pipeline) Run() (Stats, error) {
	var stats Stats

	tokens, err := p.loadTokens()
	if err != nil {
		return stats, err
	}
	byChain := groupByChain(tokens)

	chainIDs := make([]uint64, 0, len(byChain))
	for id := range byChain {
		chainIDs = append(chainIDs, id)
	}
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	for _, chainID := range chainIDs {
		reg, err := registry.Load(p.cfg.TokenListsDir, chainID)
		if err != nil {
			return stats, err
		}
		for _, res := range reg.Merge(byChain[chainID]) {
			if res.Outcome == registry.OutcomeAlreadyExists {
				log.Infof("token %s already in chain %d registry", res.Token.Address, chainID)
			} else {
				stats.Added++
			}
			// Logo processing is keyed on asset absence, not on the
			// merge outcome: a token whose logo failed or was cleaned
			// up gets another chance on the next run.
			p.processLogo(res.Token, &stats)
		}
		if p.cfg.DryRun {
			log.Infof("dry run, not writing registry for chain %d (%d entries)", chainID, reg.Len())
			continue
		}
		if err := reg.Save(p.cfg.TokenListsDir); err != nil {
			return stats, err
		}
		log.Infof("chain %d registry saved with %d entries", chainID, reg.Len())
	}
	return stats, nil
}

// loadTokens reads the input batch and returns the valid, deduplicated
// tokens in input order. Unreadable files and non-array roots are
// fatal; invalid entries are dropped with a warning.
func (p *Pipeline) loadTokens() ([]tokenlist.TokenInput, error) {
	data, err := os.ReadFile(p.cfg.InputFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read input file %s", p.cfg.InputFile)
	}
	var rawList []json.RawMessage
	if err := json.Unmarshal(data, &rawList); err != nil {
		return nil, errors.Wrapf(gerror.ErrInvalidInput, "%s: %v", p.cfg.InputFile, err)
	}
	if rawList == nil {
		return nil, errors.Wrapf(gerror.ErrInvalidInput, "%s", p.cfg.InputFile)
	}

	seen := make(map[string]struct{}, len(rawList))
	tokens := make([]tokenlist.TokenInput, 0, len(rawList))
	for i, raw := range rawList {
		token, err := tokenlist.ParseToken(raw)
		if err != nil {
			log.Warnf("dropping input entry %d: %v", i, err)
			continue
		}
		if _, dup := seen[token.Key()]; dup {
			continue
		}
		seen[token.Key()] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// processLogo runs the skip/dry-run/process decision for one added
// token and updates the stats accordingly.
func (p *Pipeline) processLogo(token tokenlist.TokenInput, stats *Stats) {
	target := p.logoPath(token)

	if !p.cfg.ForceLogo {
		if _, err := os.Stat(target); err == nil {
			log.Infof("logo for token %s on chain %d already exists, skipping", token.Address, token.ChainID)
			stats.Skipped++
			return
		}
	}
	if p.cfg.DryRun {
		log.Infof("dry run, not processing logo for token %s on chain %d", token.Address, token.ChainID)
		stats.Skipped++
		return
	}

	data, srcPath, err := p.acquirer.Acquire(token.LogoURI, p.cfg.WorkDir)
	if err != nil {
		log.Warnf("logo acquisition failed for token %s on chain %d: %v", token.Address, token.ChainID, err)
		stats.Failed++
		return
	}
	normalized, err := imgproc.Normalize(data, p.cfg.Size, p.cfg.Format)
	if err != nil {
		log.Warnf("logo normalization failed for token %s on chain %d: %v", token.Address, token.ChainID, err)
		stats.Failed++
		return
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		log.Warnf("logo write failed for token %s on chain %d: %v", token.Address, token.ChainID, err)
		stats.Failed++
		return
	}
	if err := os.WriteFile(target, normalized, 0o644); err != nil { //nolint:gosec
		log.Warnf("logo write failed for token %s on chain %d: %v", token.Address, token.ChainID, err)
		stats.Failed++
		return
	}
	stats.Written++

	p.cleanupSource(srcPath, target)
}

// cleanupSource deletes a processed local source file, but only when
// it sits inside the working tree and is not the freshly written
// target itself. Deletion failure is a warning, the write already
// counted.
func (p *Pipeline) cleanupSource(srcPath, target string) {
	if srcPath == "" || !utils.IsWithinDir(p.cfg.WorkDir, srcPath) {
		return
	}
	targetAbs, err := filepath.Abs(target)
	if err == nil && targetAbs == srcPath {
		return
	}
	if err := os.Remove(srcPath); err != nil {
		log.Warnf("failed to delete processed logo source %s: %v", srcPath, err)
	}
}

// logoPath returns the target asset path of a token,
// {logosDir}/{chainId}/{address}.{ext}.
func (p *Pipeline) logoPath(token tokenlist.TokenInput) string {
	name := token.Address + "." + imgproc.Ext(p.cfg.Format)
	return filepath.Join(p.cfg.LogosDir, strconv.FormatUint(token.ChainID, 10), name)
}

func groupByChain(tokens []tokenlist.TokenInput) map[uint64][]tokenlist.TokenInput {
	byChain := make(map[uint64][]tokenlist.TokenInput)
	for _, t := range tokens {
		byChain[t.ChainID] = append(byChain[t.ChainID], t)
	}
	return byChain
}
