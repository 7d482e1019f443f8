package consensushashing

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/hashes"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// TransactionID generates the ID of the given transaction
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	writer := hashes.NewTransactionIDWriter()
	err := serialization.SerializeTransaction(writer, tx)
	if err != nil {
		// this writer never return errors (no allocations or possible failures) so errors can only come from validity checks,
		// and we assume we never construct malformed transactions.
		panic(errors.Wrap(err, "TransactionID() failed. this should never fail for structurally-valid transactions"))
	}
	transactionID := externalapi.DomainTransactionID(*writer.Finalize())
	return &transactionID
}
