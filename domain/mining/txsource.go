package mining

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
)

// TxSource represents a source of transactions to consider for inclusion in
// new blocks. The mempool implements it.
type TxSource interface {
	// Transactions returns the candidate transactions ordered by arrival.
	Transactions() []*externalapi.DomainTransaction

	// HandleNewBlock is called with every block mined on top of the
	// source's transactions.
	HandleNewBlock(block *externalapi.DomainBlock)
}
