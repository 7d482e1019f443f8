package serialization

import (
	"bytes"
	"io"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

// MaxTransactionSize is the largest serialized transaction that can fit in a
// block. Deserialization never allocates beyond it.
const MaxTransactionSize = constants.MaxBlockWeight / constants.WitnessScaleFactor

const (
	// outpointSize is TransactionID (32) + Index (4)
	outpointSize = externalapi.DomainHashSize + 4

	// minTransactionInputSize is outpoint + varint script length (1) +
	// Sequence (4)
	minTransactionInputSize = outpointSize + 1 + 4

	// minTransactionOutputSize is Value (8) + varint script length (1)
	minTransactionOutputSize = 8 + 1

	// spendDescriptionSize is cv, anchor, nullifier and rk (4 x 32) +
	// zkproof + spend authorization signature
	spendDescriptionSize = 4*externalapi.DomainHashSize + constants.GrothProofSize + constants.SignatureSize

	// outputDescriptionSize is cv, cmu and ephemeral key (3 x 32) +
	// encrypted note + outgoing ciphertext + zkproof
	outputDescriptionSize = 3*externalapi.DomainHashSize + constants.NoteEncryptedCiphertextSize +
		constants.OutCiphertextSize + constants.GrothProofSize

	// joinSplitSize is vpub_old and vpub_new (2 x 8) + anchor, ephemeral key
	// and random seed (3 x 32) + nullifiers, commitments and MACs (6 x 32) +
	// zkproof + two note ciphertexts
	joinSplitSize = 2*8 + 3*externalapi.DomainHashSize + 6*externalapi.DomainHashSize +
		constants.GrothProofSize + constants.JoinSplitOutputs*constants.JoinSplitCiphertextSize

	// transactionFixedSize is header, version group ID, lock time, expiry
	// height (4 x 4) + value balance (8)
	transactionFixedSize = 4*4 + 8
)

// TransactionSerializeSize returns the number of bytes it would take to
// serialize the transaction. This format has no segregated witness, so this
// is also the size of the transaction with witness data excluded.
func TransactionSerializeSize(tx *externalapi.DomainTransaction) uint64 {
	size := uint64(transactionFixedSize)

	size += VarIntSerializeSize(uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		size += outpointSize + VarBytesSerializeSize(len(input.SignatureScript)) + 4
	}

	size += VarIntSerializeSize(uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		size += 8 + VarBytesSerializeSize(len(output.ScriptPublicKey))
	}

	size += VarIntSerializeSize(uint64(len(tx.ShieldedSpends))) + uint64(len(tx.ShieldedSpends))*spendDescriptionSize
	size += VarIntSerializeSize(uint64(len(tx.ShieldedOutputs))) + uint64(len(tx.ShieldedOutputs))*outputDescriptionSize

	size += VarIntSerializeSize(uint64(len(tx.JoinSplits))) + uint64(len(tx.JoinSplits))*joinSplitSize
	if len(tx.JoinSplits) > 0 {
		size += externalapi.DomainHashSize + constants.SignatureSize
	}

	if len(tx.ShieldedSpends) > 0 || len(tx.ShieldedOutputs) > 0 {
		size += constants.SignatureSize
	}

	return size
}

// SerializeTransaction writes the canonical encoding of tx to w.
func SerializeTransaction(w io.Writer, tx *externalapi.DomainTransaction) error {
	header := uint32(tx.Version) | constants.OverwinterFlag
	err := WriteElements(w, header, tx.VersionGroupID)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = writeTransactionInput(w, input)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err = WriteElement(w, output.Value)
		if err != nil {
			return err
		}
		err = WriteVarBytes(w, output.ScriptPublicKey)
		if err != nil {
			return err
		}
	}

	err = WriteElements(w, tx.LockTime, tx.ExpiryHeight, tx.ValueBalance)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(tx.ShieldedSpends)))
	if err != nil {
		return err
	}
	for _, spend := range tx.ShieldedSpends {
		err = writeSpendDescription(w, spend)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(tx.ShieldedOutputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.ShieldedOutputs {
		err = writeOutputDescription(w, output)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(tx.JoinSplits)))
	if err != nil {
		return err
	}
	for _, joinSplit := range tx.JoinSplits {
		err = writeJoinSplit(w, joinSplit)
		if err != nil {
			return err
		}
	}
	if len(tx.JoinSplits) > 0 {
		err = WriteElement(w, tx.JoinSplitPubKey)
		if err != nil {
			return err
		}
		err = writeBytes(w, tx.JoinSplitSig[:])
		if err != nil {
			return err
		}
	}

	if len(tx.ShieldedSpends) > 0 || len(tx.ShieldedOutputs) > 0 {
		return writeBytes(w, tx.BindingSig[:])
	}
	return nil
}

// SerializeTransactionToBytes returns the canonical encoding of tx.
func SerializeTransactionToBytes(tx *externalapi.DomainTransaction) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, TransactionSerializeSize(tx)))
	err := SerializeTransaction(buf, tx)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTransactionInput(w io.Writer, input *externalapi.DomainTransactionInput) error {
	err := WriteElements(w, input.PreviousOutpoint.TransactionID, input.PreviousOutpoint.Index)
	if err != nil {
		return err
	}
	err = WriteVarBytes(w, input.SignatureScript)
	if err != nil {
		return err
	}
	return WriteElement(w, input.Sequence)
}

func writeSpendDescription(w io.Writer, spend *externalapi.DomainSpendDescription) error {
	err := WriteElements(w, spend.ValueCommitment, spend.Anchor, spend.Nullifier, spend.RandomizedKey)
	if err != nil {
		return err
	}
	err = writeBytes(w, spend.ZKProof[:])
	if err != nil {
		return err
	}
	return writeBytes(w, spend.SpendAuthSig[:])
}

func writeOutputDescription(w io.Writer, output *externalapi.DomainOutputDescription) error {
	err := WriteElements(w, output.ValueCommitment, output.NoteCommitment, output.EphemeralKey)
	if err != nil {
		return err
	}
	err = writeBytes(w, output.EncCiphertext[:])
	if err != nil {
		return err
	}
	err = writeBytes(w, output.OutCiphertext[:])
	if err != nil {
		return err
	}
	return writeBytes(w, output.ZKProof[:])
}

func writeJoinSplit(w io.Writer, joinSplit *externalapi.DomainJoinSplit) error {
	err := WriteElements(w, joinSplit.VPubOld, joinSplit.VPubNew, joinSplit.Anchor)
	if err != nil {
		return err
	}
	for _, nullifier := range joinSplit.Nullifiers {
		err = WriteElement(w, nullifier)
		if err != nil {
			return err
		}
	}
	for _, commitment := range joinSplit.Commitments {
		err = WriteElement(w, commitment)
		if err != nil {
			return err
		}
	}
	err = WriteElements(w, joinSplit.EphemeralKey, joinSplit.RandomSeed)
	if err != nil {
		return err
	}
	for _, mac := range joinSplit.MACs {
		err = WriteElement(w, mac)
		if err != nil {
			return err
		}
	}
	err = writeBytes(w, joinSplit.Proof[:])
	if err != nil {
		return err
	}
	for i := range joinSplit.Ciphertexts {
		err = writeBytes(w, joinSplit.Ciphertexts[i][:])
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeTransaction reads a transaction in its canonical encoding from r.
func DeserializeTransaction(r io.Reader) (*externalapi.DomainTransaction, error) {
	tx := &externalapi.DomainTransaction{}

	var header uint32
	err := ReadElements(r, &header, &tx.VersionGroupID)
	if err != nil {
		return nil, err
	}
	if header&constants.OverwinterFlag == 0 {
		return nil, errors.Wrapf(ErrMalformed, "transaction header %x is not overwintered", header)
	}
	tx.Version = int32(header &^ constants.OverwinterFlag)
	if tx.Version != constants.TransactionVersion || tx.VersionGroupID != constants.SaplingVersionGroupID {
		return nil, errors.Wrapf(ErrMalformed, "unsupported transaction version %d with version group ID %x",
			tx.Version, tx.VersionGroupID)
	}

	inputCount, err := readCount(r, minTransactionInputSize, "inputs")
	if err != nil {
		return nil, err
	}
	tx.Inputs = make([]*externalapi.DomainTransactionInput, inputCount)
	for i := range tx.Inputs {
		tx.Inputs[i], err = readTransactionInput(r)
		if err != nil {
			return nil, err
		}
	}

	outputCount, err := readCount(r, minTransactionOutputSize, "outputs")
	if err != nil {
		return nil, err
	}
	tx.Outputs = make([]*externalapi.DomainTransactionOutput, outputCount)
	for i := range tx.Outputs {
		output := &externalapi.DomainTransactionOutput{}
		err = ReadElement(r, &output.Value)
		if err != nil {
			return nil, err
		}
		output.ScriptPublicKey, err = ReadVarBytes(r, MaxTransactionSize, "script public key")
		if err != nil {
			return nil, err
		}
		tx.Outputs[i] = output
	}

	err = ReadElements(r, &tx.LockTime, &tx.ExpiryHeight, &tx.ValueBalance)
	if err != nil {
		return nil, err
	}

	spendCount, err := readCount(r, spendDescriptionSize, "spend descriptions")
	if err != nil {
		return nil, err
	}
	tx.ShieldedSpends = make([]*externalapi.DomainSpendDescription, spendCount)
	for i := range tx.ShieldedSpends {
		tx.ShieldedSpends[i], err = readSpendDescription(r)
		if err != nil {
			return nil, err
		}
	}

	shieldedOutputCount, err := readCount(r, outputDescriptionSize, "output descriptions")
	if err != nil {
		return nil, err
	}
	tx.ShieldedOutputs = make([]*externalapi.DomainOutputDescription, shieldedOutputCount)
	for i := range tx.ShieldedOutputs {
		tx.ShieldedOutputs[i], err = readOutputDescription(r)
		if err != nil {
			return nil, err
		}
	}

	joinSplitCount, err := readCount(r, joinSplitSize, "join-splits")
	if err != nil {
		return nil, err
	}
	tx.JoinSplits = make([]*externalapi.DomainJoinSplit, joinSplitCount)
	for i := range tx.JoinSplits {
		tx.JoinSplits[i], err = readJoinSplit(r)
		if err != nil {
			return nil, err
		}
	}
	if joinSplitCount > 0 {
		err = ReadElement(r, &tx.JoinSplitPubKey)
		if err != nil {
			return nil, err
		}
		err = readBytes(r, tx.JoinSplitSig[:])
		if err != nil {
			return nil, err
		}
	}

	if spendCount > 0 || shieldedOutputCount > 0 {
		err = readBytes(r, tx.BindingSig[:])
		if err != nil {
			return nil, err
		}
	}

	return tx, nil
}

// DeserializeTransactionFromBytes decodes a transaction and makes sure no
// trailing bytes are left over.
func DeserializeTransactionFromBytes(serialized []byte) (*externalapi.DomainTransaction, error) {
	reader := bytes.NewReader(serialized)
	tx, err := DeserializeTransaction(reader)
	if err != nil {
		return nil, err
	}
	if reader.Len() != 0 {
		return nil, errors.Wrapf(ErrMalformed, "%d trailing bytes after transaction", reader.Len())
	}
	return tx, nil
}

// readCount reads an element count and makes sure that many elements of at
// least minElementSize bytes could fit in a transaction.
func readCount(r io.Reader, minElementSize uint64, fieldName string) (uint64, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}
	if count > MaxTransactionSize/minElementSize {
		return 0, errors.Wrapf(ErrMalformed, "too many %s to fit into a transaction "+
			"[count %d, max %d]", fieldName, count, MaxTransactionSize/minElementSize)
	}
	return count, nil
}

func readTransactionInput(r io.Reader) (*externalapi.DomainTransactionInput, error) {
	input := &externalapi.DomainTransactionInput{}
	err := ReadElements(r, &input.PreviousOutpoint.TransactionID, &input.PreviousOutpoint.Index)
	if err != nil {
		return nil, err
	}
	input.SignatureScript, err = ReadVarBytes(r, MaxTransactionSize, "signature script")
	if err != nil {
		return nil, err
	}
	err = ReadElement(r, &input.Sequence)
	if err != nil {
		return nil, err
	}
	return input, nil
}

func readSpendDescription(r io.Reader) (*externalapi.DomainSpendDescription, error) {
	spend := &externalapi.DomainSpendDescription{}
	err := ReadElements(r, &spend.ValueCommitment, &spend.Anchor, &spend.Nullifier, &spend.RandomizedKey)
	if err != nil {
		return nil, err
	}
	err = readBytes(r, spend.ZKProof[:])
	if err != nil {
		return nil, err
	}
	err = readBytes(r, spend.SpendAuthSig[:])
	if err != nil {
		return nil, err
	}
	return spend, nil
}

func readOutputDescription(r io.Reader) (*externalapi.DomainOutputDescription, error) {
	output := &externalapi.DomainOutputDescription{}
	err := ReadElements(r, &output.ValueCommitment, &output.NoteCommitment, &output.EphemeralKey)
	if err != nil {
		return nil, err
	}
	err = readBytes(r, output.EncCiphertext[:])
	if err != nil {
		return nil, err
	}
	err = readBytes(r, output.OutCiphertext[:])
	if err != nil {
		return nil, err
	}
	err = readBytes(r, output.ZKProof[:])
	if err != nil {
		return nil, err
	}
	return output, nil
}

func readJoinSplit(r io.Reader) (*externalapi.DomainJoinSplit, error) {
	joinSplit := &externalapi.DomainJoinSplit{}
	err := ReadElements(r, &joinSplit.VPubOld, &joinSplit.VPubNew, &joinSplit.Anchor)
	if err != nil {
		return nil, err
	}
	for i := range joinSplit.Nullifiers {
		err = ReadElement(r, &joinSplit.Nullifiers[i])
		if err != nil {
			return nil, err
		}
	}
	for i := range joinSplit.Commitments {
		err = ReadElement(r, &joinSplit.Commitments[i])
		if err != nil {
			return nil, err
		}
	}
	err = ReadElements(r, &joinSplit.EphemeralKey, &joinSplit.RandomSeed)
	if err != nil {
		return nil, err
	}
	for i := range joinSplit.MACs {
		err = ReadElement(r, &joinSplit.MACs[i])
		if err != nil {
			return nil, err
		}
	}
	err = readBytes(r, joinSplit.Proof[:])
	if err != nil {
		return nil, err
	}
	for i := range joinSplit.Ciphertexts {
		err = readBytes(r, joinSplit.Ciphertexts[i][:])
		if err != nil {
			return nil, err
		}
	}
	return joinSplit, nil
}
