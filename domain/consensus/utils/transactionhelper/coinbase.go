package transactionhelper

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
)

// IsCoinBase determines whether or not a transaction is a coinbase. A coinbase
// is a special transaction created by miners that has exactly one input,
// which refers to the null outpoint.
func IsCoinBase(tx *externalapi.DomainTransaction) bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].PreviousOutpoint.IsNull()
}
