package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"
)

func TestParseTransactionError(t *testing.T) {
	d := json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[2,{"Custom":6000}]}`))

	var raw interface{}
	require.NoError(t, d.Decode(&raw))

	e, err := ParseTransactionError(raw)
	require.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	require.NotNil(t, e.InstructionError())
	assert.Equal(t, 2, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorCustom, e.InstructionError().ErrorKey())
	require.NotNil(t, e.InstructionError().CustomError())
	assert.Equal(t, CustomError(6000), *e.InstructionError().CustomError())
	assert.Equal(t, "error processing instruction 2: custom program error: 0x1770", e.Error())

	d = json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[0,"InsufficientFunds"]}`))
	require.NoError(t, d.Decode(&raw))

	e, err = ParseTransactionError(raw)
	require.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	require.NotNil(t, e.InstructionError())
	assert.Equal(t, 0, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorInsufficientFunds, e.InstructionError().ErrorKey())
	assert.Nil(t, e.InstructionError().CustomError())

	d = json.NewDecoder(bytes.NewBufferString(`"BlockhashNotFound"`))
	require.NoError(t, d.Decode(&raw))

	e, err = ParseTransactionError(raw)
	require.NoError(t, err)

	assert.Equal(t, TransactionErrorBlockhashNotFound, e.ErrorKey())
	assert.Nil(t, e.InstructionError())

	d = json.NewDecoder(bytes.NewBufferString(`{"InsufficientFundsForRent":{"account_index":1}}`))
	require.NoError(t, d.Decode(&raw))

	e, err = ParseTransactionError(raw)
	require.NoError(t, err)
	assert.Equal(t, TransactionErrorInsufficientFundsForRent, e.ErrorKey())

	e, err = ParseTransactionError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseTransactionError(123)
	assert.Error(t, err)
}

func TestParseRPCError(t *testing.T) {
	e, err := ParseRPCError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseRPCError(&jsonrpc.RPCError{Code: -32002, Message: "simulation failed", Data: "nope"})
	assert.Error(t, err)

	e, err = ParseRPCError(&jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed: Error processing Instruction 0: custom program error: 0x1",
		Data: map[string]interface{}{
			"err": map[string]interface{}{
				"InstructionError": []interface{}{float64(0), map[string]interface{}{"Custom": float64(1)}},
			},
			"logs": []interface{}{
				"Program 4s2eUn3rBK2y6KSgPgMmkucsPPogxMPbK5HtUNhfV91y invoke [1]",
				"Program log: Instruction: TransferSolFromPda",
				"Program 4s2eUn3rBK2y6KSgPgMmkucsPPogxMPbK5HtUNhfV91y failed: custom program error: 0x1",
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.Equal(t, CustomError(1), *e.InstructionError().CustomError())
	require.Len(t, e.Logs(), 3)
	assert.Equal(t, "Program log: Instruction: TransferSolFromPda", e.Logs()[1])

	// Node health errors carry data without a transaction error.
	e, err = ParseRPCError(&jsonrpc.RPCError{
		Code:    -32005,
		Message: "Node is unhealthy",
		Data:    map[string]interface{}{"numSlotsBehind": float64(42)},
	})
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestNewTransactionError(t *testing.T) {
	d := json.NewDecoder(bytes.NewBufferString(`"DuplicateSignature"`))
	var expected interface{}
	require.NoError(t, d.Decode(&expected))

	e := NewTransactionError(TransactionErrorDuplicateSignature)
	assert.Equal(t, expected, e.raw)

	d = json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[0,"InvalidArgument"]}`))
	require.NoError(t, d.Decode(&expected))
	e, err := TransactionErrorFromInstructionError(&InstructionError{
		Index: 0,
		Err:   errors.New(string(InstructionErrorInvalidArgument)),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, e.raw)

	d = json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[2,{"Custom":3}]}`))
	require.NoError(t, d.Decode(&expected))
	e, err = TransactionErrorFromInstructionError(&InstructionError{
		Index: 2,
		Err:   CustomError(3),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, e.raw)

	s, err := e.JSONString()
	require.NoError(t, err)
	assert.JSONEq(t, `{"InstructionError":[2,{"Custom":3}]}`, s)
}

func TestParseJSONNumber(t *testing.T) {
	tc := []interface{}{
		"1",
		1.0,
		json.Number("1"),
	}
	for i, c := range tc {
		v, err := parseJSONNumber(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, v, i)
	}

	_, err := parseJSONNumber("one")
	assert.Error(t, err)
	_, err = parseJSONNumber(true)
	assert.Error(t, err)
}
