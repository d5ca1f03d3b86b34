package tokenlist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// TokenInput is one validated entry of the input batch. The address is
// always stored canonicalized (lowercase, 0x-prefixed when it is a full
// hex address).
type TokenInput struct {
	ChainID  uint64 `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	LogoURI  string `json:"logoURI"`
}

// RegistryEntry is one persisted token of a per-chain registry file.
// The logo URI is intentionally not persisted; logo assets live on disk
// keyed by chain id and address.
type RegistryEntry struct {
	ChainID  uint64 `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// rawToken mirrors TokenInput with pointer fields so that missing
// required keys can be told apart from zero values.
type rawToken struct {
	ChainID  *int64  `json:"chainId"`
	Address  *string `json:"address"`
	Symbol   *string `json:"symbol"`
	Decimals *uint8  `json:"decimals"`
	LogoURI  string  `json:"logoURI"`
}

// ParseToken validates a single raw batch element. Entries with a
// missing or wrong-typed required field are rejected with an error that
// names the offending field.
func ParseToken(raw json.RawMessage) (TokenInput, error) {
	var rt rawToken
	if err := json.Unmarshal(raw, &rt); err != nil {
		return TokenInput{}, errors.Wrap(err, "malformed token entry")
	}
	if rt.ChainID == nil || *rt.ChainID <= 0 {
		return TokenInput{}, errors.New("missing or non-positive chainId")
	}
	if rt.Address == nil || *rt.Address == "" {
		return TokenInput{}, errors.New("missing address")
	}
	if rt.Symbol == nil || *rt.Symbol == "" {
		return TokenInput{}, errors.New("missing symbol")
	}
	if rt.Decimals == nil {
		return TokenInput{}, errors.New("missing decimals")
	}
	return TokenInput{
		ChainID:  uint64(*rt.ChainID),
		Address:  CanonicalAddress(*rt.Address),
		Symbol:   *rt.Symbol,
		Decimals: *rt.Decimals,
		LogoURI:  rt.LogoURI,
	}, nil
}

// CanonicalAddress lowercases a token address. Full 20-byte hex
// addresses are round-tripped through go-ethereum first so variants
// with mixed checksum casing or a missing 0x prefix normalize to the
// same string.
func CanonicalAddress(addr string) string {
	if common.IsHexAddress(addr) {
		return strings.ToLower(common.HexToAddress(addr).Hex())
	}
	return strings.ToLower(addr)
}

// Key returns the dedup key of the token, lowercase address joined
// with the chain id.
func (t TokenInput) Key() string {
	return fmt.Sprintf("%s_%d", t.Address, t.ChainID)
}
