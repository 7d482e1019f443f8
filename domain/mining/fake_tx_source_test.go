package mining

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
)

// fakeTxSource is a simple implementation of TxSource interface
type fakeTxSource struct {
	transactions []*externalapi.DomainTransaction
	blocks       []*externalapi.DomainBlock
}

func (txs *fakeTxSource) Transactions() []*externalapi.DomainTransaction {
	return txs.transactions
}

func (txs *fakeTxSource) HandleNewBlock(block *externalapi.DomainBlock) {
	txs.blocks = append(txs.blocks, block)
}
