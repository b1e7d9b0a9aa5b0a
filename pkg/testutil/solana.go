package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// WriteSolanaKeypairFile writes key in the solana-keygen JSON format to a
// temporary directory and returns the file path.
func WriteSolanaKeypairFile(t *testing.T, key ed25519.PrivateKey) string {
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}

	b, err := json.Marshal(values)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, b, 0600))
	return path
}

// SolanaClient is an in memory solana.Client. Unset accounts behave as if
// they don't exist on chain.
type SolanaClient struct {
	sync.Mutex

	Blockhash solana.Blockhash

	// SubmitErr, when set, is returned by every SubmitTransaction call.
	SubmitErr error

	accounts      map[string]solana.AccountInfo
	tokenBalances map[string]solana.TokenAmount
	statuses      map[solana.Signature][]*solana.SignatureStatus
	submitted     []solana.Transaction
	airdrops      map[string]uint64
}

var _ solana.Client = (*SolanaClient)(nil)

func NewSolanaClient() *SolanaClient {
	var bh solana.Blockhash
	rand.Read(bh[:])

	return &SolanaClient{
		Blockhash:     bh,
		accounts:      make(map[string]solana.AccountInfo),
		tokenBalances: make(map[string]solana.TokenAmount),
		statuses:      make(map[solana.Signature][]*solana.SignatureStatus),
		airdrops:      make(map[string]uint64),
	}
}

func (c *SolanaClient) SetAccount(account ed25519.PublicKey, info solana.AccountInfo) {
	c.Lock()
	defer c.Unlock()
	c.accounts[base58.Encode(account)] = info
}

func (c *SolanaClient) SetTokenBalance(account ed25519.PublicKey, amount uint64, decimals uint64) {
	c.Lock()
	defer c.Unlock()
	c.tokenBalances[base58.Encode(account)] = solana.TokenAmount{
		Amount:   strconv.FormatUint(amount, 10),
		Decimals: decimals,
	}
}

// SetSignatureStatuses queues the statuses returned for sig, one per poll. The
// last status repeats once the queue is drained. A nil status is reported as
// not found.
func (c *SolanaClient) SetSignatureStatuses(sig solana.Signature, statuses ...*solana.SignatureStatus) {
	c.Lock()
	defer c.Unlock()
	c.statuses[sig] = statuses
}

func (c *SolanaClient) SubmittedTransactions() []solana.Transaction {
	c.Lock()
	defer c.Unlock()
	return append([]solana.Transaction(nil), c.submitted...)
}

func (c *SolanaClient) Airdrops(account ed25519.PublicKey) uint64 {
	c.Lock()
	defer c.Unlock()
	return c.airdrops[base58.Encode(account)]
}

func (c *SolanaClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	info, ok := c.accounts[base58.Encode(account)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (c *SolanaClient) GetBalance(account ed25519.PublicKey) (uint64, error) {
	c.Lock()
	defer c.Unlock()

	info, ok := c.accounts[base58.Encode(account)]
	if !ok {
		return 0, solana.ErrNoBalance
	}
	return info.Lamports, nil
}

func (c *SolanaClient) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	// Mirrors the default rent: (128 + size) * 3480 * 2
	return (128 + size) * 6960, nil
}

func (c *SolanaClient) GetLatestBlockhash() (solana.Blockhash, error) {
	c.Lock()
	defer c.Unlock()
	return c.Blockhash, nil
}

func (c *SolanaClient) GetSignatureStatuses(sigs []solana.Signature) ([]*solana.SignatureStatus, error) {
	c.Lock()
	defer c.Unlock()

	result := make([]*solana.SignatureStatus, len(sigs))
	for i, sig := range sigs {
		queued := c.statuses[sig]
		if len(queued) == 0 {
			continue
		}

		result[i] = queued[0]
		if len(queued) > 1 {
			c.statuses[sig] = queued[1:]
		}
	}
	return result, nil
}

func (c *SolanaClient) GetTokenAccountBalance(account ed25519.PublicKey) (solana.TokenAmount, error) {
	c.Lock()
	defer c.Unlock()

	balance, ok := c.tokenBalances[base58.Encode(account)]
	if !ok {
		return solana.TokenAmount{}, solana.ErrNoAccountInfo
	}
	return balance, nil
}

func (c *SolanaClient) RequestAirdrop(account ed25519.PublicKey, lamports uint64, _ solana.Commitment) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()

	c.airdrops[base58.Encode(account)] += lamports

	var sig solana.Signature
	rand.Read(sig[:])
	return sig, nil
}

func (c *SolanaClient) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()

	if c.SubmitErr != nil {
		return txn.Signature(), c.SubmitErr
	}

	c.submitted = append(c.submitted, txn)
	return txn.Signature(), nil
}
