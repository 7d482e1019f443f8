package transactionhelper

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
)

// NewNativeTransaction returns a new transparent-only transaction
func NewNativeTransaction(inputs []*externalapi.DomainTransactionInput,
	outputs []*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {

	return &externalapi.DomainTransaction{
		Version:        constants.TransactionVersion,
		VersionGroupID: constants.SaplingVersionGroupID,
		Inputs:         inputs,
		Outputs:        outputs,
	}
}

// NewCoinbaseTransaction returns a new coinbase transaction whose single
// input carries signatureScript
func NewCoinbaseTransaction(signatureScript []byte,
	outputs ...*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {

	input := &externalapi.DomainTransactionInput{
		PreviousOutpoint: externalapi.NewNullOutpoint(),
		SignatureScript:  signatureScript,
		Sequence:         constants.MaxTxInSequenceNum,
	}
	return NewNativeTransaction([]*externalapi.DomainTransactionInput{input}, outputs)
}
