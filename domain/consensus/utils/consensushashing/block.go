package consensushashing

import (
	"io"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/hashes"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// BlockHash returns the given block's hash
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// HeaderHash returns the given header's hash
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := serializeHeader(writer, header)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}

func serializeHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return serialization.WriteElements(w, header.Version, header.HashPrevBlock, header.HashMerkleRoot,
		header.HashFinalSaplingRoot, header.Time, header.Bits, header.Nonce)
}

// MerkleRoot calculates the merkle root of the IDs of the given transactions.
// An odd node at any level is paired with itself.
func MerkleRoot(transactions []*externalapi.DomainTransaction) externalapi.DomainHash {
	if len(transactions) == 0 {
		return externalapi.DomainHash{}
	}

	level := make([]externalapi.DomainHash, len(transactions))
	for i, tx := range transactions {
		level[i] = externalapi.DomainHash(*TransactionID(tx))
	}

	for len(level) > 1 {
		next := make([]externalapi.DomainHash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			writer := hashes.NewMerkleBranchHashWriter()
			writer.InfallibleWrite(level[i][:])
			writer.InfallibleWrite(right[:])
			next = append(next, *writer.Finalize())
		}
		level = next
	}
	return level[0]
}
