package model

import "github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"

// TransactionValidator exposes a set of validation classes, after which
// it's possible to determine whether a transaction is valid
type TransactionValidator interface {
	// ValidateTransactionInIsolation runs every check that does not depend
	// on chain state. A nil error means the transaction can possibly be
	// valid; otherwise the error wraps the ruleerrors.RuleError of the
	// first violated rule.
	ValidateTransactionInIsolation(transaction *externalapi.DomainTransaction) error
}
