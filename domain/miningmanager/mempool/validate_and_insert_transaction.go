package mempool

import (
	"fmt"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/ruleerrors"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
	"github.com/davecgh/go-spew/spew"
)

// this function MUST be called with the mempool mutex locked for writes
func (mp *mempool) validateAndInsertTransaction(transaction *externalapi.DomainTransaction) error {
	transactionID := consensushashing.TransactionID(transaction)
	onEnd := logger.LogAndMeasureExecutionTime(log, fmt.Sprintf("validateAndInsertTransaction %s", transactionID))
	defer onEnd()

	err := mp.validateTransactionPreInsertion(transactionID, transaction)
	if err != nil {
		log.Debugf("Rejected transaction %s: %s", transactionID, err)
		if log.Level() <= logger.LevelTrace {
			log.Tracef("Rejected transaction %s: %s", transactionID, spew.Sdump(transaction))
		}
		return err
	}

	mp.transactionsPool.addTransaction(transactionID, transaction)
	log.Debugf("Accepted transaction %s (pool size: %d)", transactionID, mp.transactionsPool.count())
	return nil
}

// this function MUST be called with the mempool mutex locked for reads
func (mp *mempool) validateTransactionPreInsertion(transactionID *externalapi.DomainTransactionID,
	transaction *externalapi.DomainTransaction) error {

	if mp.transactionsPool.has(transactionID) {
		return txRuleError(RejectDuplicate, "txn-already-in-mempool",
			fmt.Sprintf("transaction %s is already in the mempool", transactionID))
	}

	err := mp.validator.ValidateTransactionInIsolation(transaction)
	reason := ""
	if err != nil {
		reason, _ = ruleerrors.RejectReason(err)
	}
	mp.metrics.RecordTransactionValidated(reason)
	if err != nil {
		return consensusRuleError(err)
	}

	// A coinbase is only valid as the first transaction of a block.
	if transactionhelper.IsCoinBase(transaction) {
		return txRuleError(RejectInvalid, "coinbase",
			fmt.Sprintf("transaction %s is an individual coinbase transaction", transactionID))
	}

	if mp.transactionsPool.count() >= mp.config.MaximumTransactionCount {
		return txRuleError(RejectMempoolFull, "mempool-full",
			fmt.Sprintf("transaction %s rejected: the mempool holds the maximum of %d transactions",
				transactionID, mp.config.MaximumTransactionCount))
	}
	return nil
}
