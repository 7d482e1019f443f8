package hashes

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	transactionIDDomain = "TransactionID"
	blockDomain         = "BlockHash"
	merkleBranchDomain  = "MerkleBranchHash"
)

func newKeyedWriter(domain string) HashWriter {
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}

// NewTransactionIDWriter returns a new HashWriter used for transaction IDs
func NewTransactionIDWriter() HashWriter {
	return newKeyedWriter(transactionIDDomain)
}

// NewBlockHashWriter returns a new HashWriter used for hashing blocks
func NewBlockHashWriter() HashWriter {
	return newKeyedWriter(blockDomain)
}

// NewMerkleBranchHashWriter returns a new HashWriter used for a merkle tree branch
func NewMerkleBranchHashWriter() HashWriter {
	return newKeyedWriter(merkleBranchDomain)
}
