package transfers

import (
	_ "embed"
)

// IDL is the Anchor IDL of the program in JSON form.
//
//go:embed idl/solana_transfers.json
var IDL []byte
