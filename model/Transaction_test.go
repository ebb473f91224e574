package model

import (
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genesisCoinbaseHex = "01000000497c055b010000000000000000000000000000000000000000000000000000000000000000ffffffff2900012a254e7954696d65732e636f6d20323031382f30352f323320486f77204d75656c6c6572732e2effffffff0100000000000000000000000000"

func genesisCoinbase(t *testing.T) *Transaction {
	t.Helper()

	script := &bscript.Script{}
	require.NoError(t, script.AppendOpcodes(bscript.Op0))
	require.NoError(t, script.AppendPushData([]byte{0x2a}))
	require.NoError(t, script.AppendPushData([]byte("NyTimes.com 2018/05/23 How Muellers..")))

	return &Transaction{
		Version: 1,
		Time:    1527086153,
		Inputs: []*Input{{
			PreviousTxOutIndex: CoinbaseOutIndex,
			UnlockingScript:    script,
			SequenceNumber:     0xffffffff,
		}},
		Outputs: []*Output{{
			Satoshis:      0,
			LockingScript: &bscript.Script{},
		}},
	}
}

func TestTransaction_Bytes(t *testing.T) {
	tx := genesisCoinbase(t)

	assert.Equal(t, genesisCoinbaseHex, hex.EncodeToString(tx.Bytes()))
	assert.Equal(t, genesisMerkleRoot, tx.TxID())
}

func TestTransaction_IsCoinbase(t *testing.T) {
	tx := genesisCoinbase(t)
	assert.True(t, tx.IsCoinbase())

	tx.Inputs[0].PreviousTxOutIndex = 0
	assert.False(t, tx.IsCoinbase())

	tx.Inputs[0].PreviousTxOutIndex = CoinbaseOutIndex
	tx.Inputs[0].PreviousTxID = chainhash.DoubleHashH([]byte("a"))
	assert.False(t, tx.IsCoinbase())

	tx = genesisCoinbase(t)
	tx.Inputs = append(tx.Inputs, tx.Inputs[0])
	assert.False(t, tx.IsCoinbase())
}

func TestOutput_IsEmpty(t *testing.T) {
	assert.True(t, (&Output{}).IsEmpty())
	assert.True(t, (&Output{LockingScript: &bscript.Script{}}).IsEmpty())
	assert.False(t, (&Output{Satoshis: 1}).IsEmpty())

	script := &bscript.Script{}
	require.NoError(t, script.AppendOpcodes(bscript.OpRETURN))
	assert.False(t, (&Output{LockingScript: script}).IsEmpty())
}

func TestTransaction_NilScripts(t *testing.T) {
	tx := &Transaction{
		Version: 1,
		Inputs:  []*Input{{PreviousTxOutIndex: CoinbaseOutIndex}},
		Outputs: []*Output{{}},
	}

	// version, time, 1 input (32 + 4 + 1 + 4), 1 output (8 + 1), locktime
	assert.Len(t, tx.Bytes(), 4+4+1+41+1+9+4)
}
