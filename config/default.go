package config

// DefaultValues is the default configuration
const DefaultValues = `
[Log]
Level = "info"
Outputs = ["stdout"]

[Ingest]
TokenListsDir = "tokenLists"
LogosDir = "logos"
Size = 128
Format = "png"
ForceLogo = false
DryRun = false
`
