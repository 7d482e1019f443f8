package mempool

import (
	"sort"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
)

type mempoolTransaction struct {
	transaction *externalapi.DomainTransaction
	arrival     uint64
}

type transactionsPool struct {
	allTransactions map[externalapi.DomainTransactionID]*mempoolTransaction
	nextArrival     uint64
}

func newTransactionsPool() *transactionsPool {
	return &transactionsPool{
		allTransactions: map[externalapi.DomainTransactionID]*mempoolTransaction{},
	}
}

// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) addTransaction(transactionID *externalapi.DomainTransactionID,
	transaction *externalapi.DomainTransaction) {

	tp.allTransactions[*transactionID] = &mempoolTransaction{
		transaction: transaction,
		arrival:     tp.nextArrival,
	}
	tp.nextArrival++
}

// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) removeTransaction(transaction *externalapi.DomainTransaction) bool {
	return tp.removeTransactionByID(consensushashing.TransactionID(transaction))
}

// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) removeTransactionByID(transactionID *externalapi.DomainTransactionID) bool {
	if _, ok := tp.allTransactions[*transactionID]; !ok {
		return false
	}
	delete(tp.allTransactions, *transactionID)
	return true
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) has(transactionID *externalapi.DomainTransactionID) bool {
	_, ok := tp.allTransactions[*transactionID]
	return ok
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) count() int {
	return len(tp.allTransactions)
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) transactions() []*externalapi.DomainTransaction {
	mempoolTransactions := make([]*mempoolTransaction, 0, len(tp.allTransactions))
	for _, mempoolTransaction := range tp.allTransactions {
		mempoolTransactions = append(mempoolTransactions, mempoolTransaction)
	}
	sort.Slice(mempoolTransactions, func(i, j int) bool {
		return mempoolTransactions[i].arrival < mempoolTransactions[j].arrival
	})

	transactions := make([]*externalapi.DomainTransaction, len(mempoolTransactions))
	for i, mempoolTransaction := range mempoolTransactions {
		transactions[i] = mempoolTransaction.transaction
	}
	return transactions
}
