package model

import (
	"encoding/binary"
	"math"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// CoinbaseOutIndex is the previous output index of a null outpoint.
const CoinbaseOutIndex uint32 = math.MaxUint32

// Input spends a previous output. A coinbase input has a zero PreviousTxID
// and PreviousTxOutIndex CoinbaseOutIndex.
type Input struct {
	PreviousTxID       chainhash.Hash
	PreviousTxOutIndex uint32
	UnlockingScript    *bscript.Script
	SequenceNumber     uint32
}

type Output struct {
	Satoshis      int64
	LockingScript *bscript.Script
}

// IsEmpty reports whether the output carries no value and no script, the form
// used for unspendable outputs.
func (o *Output) IsEmpty() bool {
	return o.Satoshis == 0 && (o.LockingScript == nil || len(*o.LockingScript) == 0)
}

// Transaction uses the proof-of-stake layout, which carries its own timestamp
// after the version:
//
//	version(4) | time(4) | vin | vout | locktime(4)
type Transaction struct {
	Version  int32
	Time     uint32
	Inputs   []*Input
	Outputs  []*Output
	LockTime uint32
}

func (tx *Transaction) IsCoinbase() bool {
	if len(tx.Inputs) != 1 {
		return false
	}

	in := tx.Inputs[0]

	return in.PreviousTxOutIndex == CoinbaseOutIndex && in.PreviousTxID.IsEqual(&chainhash.Hash{})
}

func (tx *Transaction) Bytes() []byte {
	b := make([]byte, 0, 128)

	b = binary.LittleEndian.AppendUint32(b, uint32(tx.Version)) //nolint:gosec // serialised as the raw two's complement bits
	b = binary.LittleEndian.AppendUint32(b, tx.Time)

	b = append(b, bt.VarInt(uint64(len(tx.Inputs))).Bytes()...)
	for _, in := range tx.Inputs {
		b = append(b, in.PreviousTxID[:]...)
		b = binary.LittleEndian.AppendUint32(b, in.PreviousTxOutIndex)
		b = appendScript(b, in.UnlockingScript)
		b = binary.LittleEndian.AppendUint32(b, in.SequenceNumber)
	}

	b = append(b, bt.VarInt(uint64(len(tx.Outputs))).Bytes()...)
	for _, out := range tx.Outputs {
		b = binary.LittleEndian.AppendUint64(b, uint64(out.Satoshis)) //nolint:gosec // same as above
		b = appendScript(b, out.LockingScript)
	}

	return binary.LittleEndian.AppendUint32(b, tx.LockTime)
}

// TxIDChainHash is the sha256d of the serialised transaction.
func (tx *Transaction) TxIDChainHash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(tx.Bytes())
	return &hash
}

func (tx *Transaction) TxID() string {
	return tx.TxIDChainHash().String()
}

func appendScript(b []byte, s *bscript.Script) []byte {
	if s == nil {
		return append(b, 0x00)
	}

	b = append(b, bt.VarInt(uint64(len(*s))).Bytes()...)

	return append(b, *s...)
}
