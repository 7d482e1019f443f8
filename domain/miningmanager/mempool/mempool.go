package mempool

import (
	"sync"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model"
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/infrastructure/metrics"
)

// Mempool is a pool of transactions that passed validation and wait to be
// included in a block.
type Mempool interface {
	ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) error
	HandleNewBlock(block *externalapi.DomainBlock)
	RemoveTransaction(transactionID *externalapi.DomainTransactionID) bool
	HasTransaction(transactionID *externalapi.DomainTransactionID) bool
	Transactions() []*externalapi.DomainTransaction
	Count() int
}

type mempool struct {
	mtx sync.RWMutex

	config           *Config
	validator        model.TransactionValidator
	metrics          *metrics.Metrics
	transactionsPool *transactionsPool
}

// New constructs a new mempool that validates transactions with validator
func New(config *Config, validator model.TransactionValidator, metrics *metrics.Metrics) Mempool {
	return &mempool{
		config:           config,
		validator:        validator,
		metrics:          metrics,
		transactionsPool: newTransactionsPool(),
	}
}

// ValidateAndInsertTransaction validates the given transaction and adds it to
// the pool. A rejected transaction is reported with a RuleError.
func (mp *mempool) ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) error {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	err := mp.validateAndInsertTransaction(transaction)
	code := ""
	if err != nil {
		rejectCode, _ := extractRejectCode(err)
		code = rejectCode.String()
	}
	mp.metrics.RecordMempoolTransaction(code)
	mp.metrics.SetMempoolSize(mp.transactionsPool.count())
	return err
}

// HandleNewBlock removes the transactions of a block from the pool
func (mp *mempool) HandleNewBlock(block *externalapi.DomainBlock) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	removed := 0
	for _, transaction := range block.Transactions {
		if mp.transactionsPool.removeTransaction(transaction) {
			removed++
		}
	}
	log.Debugf("Removed %d transactions included in a new block", removed)
	mp.metrics.SetMempoolSize(mp.transactionsPool.count())
}

// RemoveTransaction removes the transaction with the given ID from the pool.
// It returns false if there was no such transaction.
func (mp *mempool) RemoveTransaction(transactionID *externalapi.DomainTransactionID) bool {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	removed := mp.transactionsPool.removeTransactionByID(transactionID)
	mp.metrics.SetMempoolSize(mp.transactionsPool.count())
	return removed
}

// HasTransaction returns whether a transaction with the given ID is in the pool
func (mp *mempool) HasTransaction(transactionID *externalapi.DomainTransactionID) bool {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.has(transactionID)
}

// Transactions returns the transactions of the pool ordered by arrival
func (mp *mempool) Transactions() []*externalapi.DomainTransaction {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.transactions()
}

// Count returns the number of transactions in the pool
func (mp *mempool) Count() int {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.count()
}
