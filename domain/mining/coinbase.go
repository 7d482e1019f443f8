package mining

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/amount"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
)

const op0 = 0x00

// scriptNum returns the minimal little-endian sign-magnitude encoding of n
// used for numbers pushed by scripts.
func scriptNum(n uint64) []byte {
	var result []byte
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}
	// The most significant bit is the sign bit, so an extra byte is needed
	// when it's already taken by the magnitude.
	if len(result) > 0 && result[len(result)-1]&0x80 != 0 {
		result = append(result, 0x00)
	}
	return result
}

// coinbaseSignatureScript returns a coinbase script that pushes the block
// height followed by OP_0, so coinbases of different heights never share
// an ID. It is always between 2 and 10 bytes long.
func coinbaseSignatureScript(height uint64) []byte {
	heightBytes := scriptNum(height)
	script := make([]byte, 0, len(heightBytes)+2)
	script = append(script, byte(len(heightBytes)))
	script = append(script, heightBytes...)
	return append(script, op0)
}

func newCoinbaseTransaction(height uint64, reward amount.Amount,
	scriptPublicKey []byte) *externalapi.DomainTransaction {

	return transactionhelper.NewCoinbaseTransaction(coinbaseSignatureScript(height),
		&externalapi.DomainTransactionOutput{Value: reward, ScriptPublicKey: scriptPublicKey})
}
