package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/vfat-io/vfat-token-lists/models/tokenlist"
)

// Outcome of merging one input token into a chain registry.
type Outcome string

const (
	// OutcomeAdded means the token was appended to the registry.
	OutcomeAdded Outcome = "added"
	// OutcomeAlreadyExists means an entry with the same address was
	// already present and the registry was left untouched.
	OutcomeAlreadyExists Outcome = "already-exists"
)

// Result pairs an input token with its merge outcome.
type Result struct {
	Token   tokenlist.TokenInput
	Outcome Outcome
}

// ChainRegistry is the in-memory registry of one chain, an ordered
// list of entries with an address lookup on the side.
type ChainRegistry struct {
	ChainID uint64

	entries []tokenlist.RegistryEntry
	index   map[string]struct{}
}

// ChainFile returns the registry file path of a chain.
func ChainFile(tokenListsDir string, chainID uint64) string {
	return filepath.Join(tokenListsDir, fmt.Sprintf("%d.json", chainID))
}

// Load reads the persisted registry of a chain. A missing file yields
// an empty registry; any other read or parse error is returned as is
// and should abort the run.
func Load(tokenListsDir string, chainID uint64) (*ChainRegistry, error) {
	reg := &ChainRegistry{
		ChainID: chainID,
		index:   make(map[string]struct{}),
	}
	data, err := os.ReadFile(ChainFile(tokenListsDir, chainID))
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, errors.Wrapf(err, "read registry for chain %d", chainID)
	}
	if err := json.Unmarshal(data, &reg.entries); err != nil {
		return nil, errors.Wrapf(err, "parse registry for chain %d", chainID)
	}
	for _, e := range reg.entries {
		reg.index[strings.ToLower(e.Address)] = struct{}{}
	}
	return reg, nil
}

// Merge folds the given tokens into the registry in input order. A
// token whose address is already present leaves the registry untouched
// and gets outcome already-exists, even when symbol or decimals differ;
// everything else is appended as a new entry with outcome added. The
// logo URI is dropped, logos are persisted as files instead.
func (r *ChainRegistry) Merge(tokens []tokenlist.TokenInput) []Result {
	results := make([]Result, 0, len(tokens))
	for _, t := range tokens {
		addr := strings.ToLower(t.Address)
		if _, ok := r.index[addr]; ok {
			results = append(results, Result{Token: t, Outcome: OutcomeAlreadyExists})
			continue
		}
		r.entries = append(r.entries, tokenlist.RegistryEntry{
			ChainID:  t.ChainID,
			Address:  addr,
			Symbol:   t.Symbol,
			Decimals: t.Decimals,
		})
		r.index[addr] = struct{}{}
		results = append(results, Result{Token: t, Outcome: OutcomeAdded})
	}
	return results
}

// Entries returns the registry entries in order.
func (r *ChainRegistry) Entries() []tokenlist.RegistryEntry {
	return r.entries
}

// Len returns the number of entries in the registry.
func (r *ChainRegistry) Len() int {
	return len(r.entries)
}

// Save serializes the registry back to its chain file, pretty-printed
// with two-space indentation and a trailing newline.
func (r *ChainRegistry) Save(tokenListsDir string) error {
	if err := os.MkdirAll(tokenListsDir, 0o755); err != nil {
		return errors.Wrapf(err, "create token lists dir %s", tokenListsDir)
	}
	entries := r.entries
	if entries == nil {
		entries = []tokenlist.RegistryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "serialize registry for chain %d", r.ChainID)
	}
	data = append(data, '\n')
	return os.WriteFile(ChainFile(tokenListsDir, r.ChainID), data, 0o644) //nolint:gosec
}
