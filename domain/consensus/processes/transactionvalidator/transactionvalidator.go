package transactionvalidator

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model"
	"github.com/MarkLTZ/bitcoin/domain/dagconfig"
)

// transactionValidator exposes a set of validation classes, after which
// it's possible to determine whether either a transaction is valid
type transactionValidator struct {
	maxBlockWeight     uint64
	witnessScaleFactor uint64
}

// New instantiates a new TransactionValidator
func New(params *dagconfig.Params) model.TransactionValidator {
	return &transactionValidator{
		maxBlockWeight:     params.MaxBlockWeight,
		witnessScaleFactor: params.WitnessScaleFactor,
	}
}
