package transfer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/testutil"
)

// newAdvancingNode serves a JSON-RPC node whose blockhash changes on every
// getLatestBlockhash call. It records the signature of every transaction it
// receives and replies with it, or with a different one when misreport is
// set.
func newAdvancingNode(t *testing.T, misreport bool) (url string, sent func() []solana.Signature) {
	var (
		mu     sync.Mutex
		height byte
		sigs   []solana.Signature
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
			ID     int               `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		mu.Lock()
		defer mu.Unlock()

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "getLatestBlockhash":
			height++
			var bh solana.Blockhash
			bh[0], bh[31] = 7, height
			resp["result"] = map[string]interface{}{
				"context": map[string]interface{}{"slot": height},
				"value":   map[string]interface{}{"blockhash": bh.String(), "lastValidBlockHeight": 300},
			}
		case "sendTransaction":
			var encoded string
			require.NoError(t, json.Unmarshal(req.Params[0], &encoded))
			raw, err := base64.StdEncoding.DecodeString(encoded)
			require.NoError(t, err)

			var txn solana.Transaction
			require.NoError(t, txn.Unmarshal(raw))
			sig := txn.Signature()
			sigs = append(sigs, sig)
			if misreport {
				sig[0]++
			}
			resp["result"] = sig.String()
		default:
			resp["error"] = map[string]interface{}{"code": -32601, "message": "Method not found"}
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	return server.URL, func() []solana.Signature {
		mu.Lock()
		defer mu.Unlock()
		return append([]solana.Signature(nil), sigs...)
	}
}

func TestTransferSol_RepeatedTransfersAreDistinct(t *testing.T) {
	url, sent := newAdvancingNode(t, false)
	svc := newRPCService(t, url)
	receiver := testutil.GenerateSolanaKeys(t, 1)[0]

	first, err := svc.TransferSol(context.Background(), receiver, 1_000)
	require.NoError(t, err)
	second, err := svc.TransferSol(context.Background(), receiver, 1_000)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, []solana.Signature{first, second}, sent())
}

func TestTransferSol_UnexpectedSignature(t *testing.T) {
	url, sent := newAdvancingNode(t, true)
	svc := newRPCService(t, url)

	sig, err := svc.TransferSol(context.Background(), testutil.GenerateSolanaKeys(t, 1)[0], 1_000)
	assert.True(t, errors.Is(err, solana.ErrUnexpectedSignature))
	assert.Equal(t, []solana.Signature{sig}, sent())
}

func newRPCService(t *testing.T, url string) *Service {
	return New(
		solana.New(url),
		solana.EnvironmentLocal,
		testutil.GenerateSolanaKeypair(t),
		solana.CommitmentConfirmed,
		withManualTestOverrides(&testOverrides{
			confirmationTimeout:      time.Second,
			confirmationPollInterval: 10 * time.Millisecond,
		}),
	)
}
