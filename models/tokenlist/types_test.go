package tokenlist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	raw := json.RawMessage(`{"chainId":1,"address":"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48","symbol":"USDC","decimals":6,"logoURI":"https://example.com/usdc.png"}`)
	token, err := ParseToken(raw)
	require.NoError(t, err)
	require.Equal(t, uint64(1), token.ChainID)
	require.Equal(t, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", token.Address)
	require.Equal(t, "USDC", token.Symbol)
	require.Equal(t, uint8(6), token.Decimals)
	require.Equal(t, "https://example.com/usdc.png", token.LogoURI)
}

func TestParseTokenMissingFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no chainId", `{"address":"0xabc","symbol":"ABC","decimals":18}`},
		{"zero chainId", `{"chainId":0,"address":"0xabc","symbol":"ABC","decimals":18}`},
		{"negative chainId", `{"chainId":-5,"address":"0xabc","symbol":"ABC","decimals":18}`},
		{"no address", `{"chainId":1,"symbol":"ABC","decimals":18}`},
		{"empty address", `{"chainId":1,"address":"","symbol":"ABC","decimals":18}`},
		{"no symbol", `{"chainId":1,"address":"0xabc","decimals":18}`},
		{"no decimals", `{"chainId":1,"address":"0xabc","symbol":"ABC"}`},
		{"negative decimals", `{"chainId":1,"address":"0xabc","symbol":"ABC","decimals":-1}`},
		{"wrong-typed chainId", `{"chainId":"1","address":"0xabc","symbol":"ABC","decimals":18}`},
		{"not an object", `"token"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseToken(json.RawMessage(tc.raw))
			require.Error(t, err)
		})
	}
}

func TestParseTokenLogoURIOptional(t *testing.T) {
	token, err := ParseToken(json.RawMessage(`{"chainId":1,"address":"0xabc","symbol":"ABC","decimals":18}`))
	require.NoError(t, err)
	require.Empty(t, token.LogoURI)
}

func TestCanonicalAddress(t *testing.T) {
	// Checksummed and uppercased variants of a full address collapse
	// to the same lowercase form.
	require.Equal(t,
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		CanonicalAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"))
	require.Equal(t,
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		CanonicalAddress("A0B86991C6218B36C1D19D4A2E9EB0CE3606EB48"))
	// Short hex strings are only lowercased.
	require.Equal(t, "0xabc", CanonicalAddress("0xABC"))
}

func TestTokenKey(t *testing.T) {
	a := TokenInput{ChainID: 1, Address: CanonicalAddress("0xABC")}
	b := TokenInput{ChainID: 1, Address: CanonicalAddress("0xabc")}
	c := TokenInput{ChainID: 137, Address: CanonicalAddress("0xabc")}
	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), c.Key())
}
