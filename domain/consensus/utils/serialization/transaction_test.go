package serialization

import (
	"bytes"
	"testing"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

func shieldedTransactionForTest() *externalapi.DomainTransaction {
	joinSplit := &externalapi.DomainJoinSplit{
		VPubOld:    0,
		VPubNew:    7000,
		Anchor:     externalapi.DomainHash{1},
		Nullifiers: [2]externalapi.DomainNullifier{{2}, {3}},
	}
	joinSplit.Proof[0] = 0xaa
	joinSplit.Ciphertexts[1][constants.JoinSplitCiphertextSize-1] = 0xbb

	spend := &externalapi.DomainSpendDescription{Nullifier: externalapi.DomainNullifier{4}}
	spend.SpendAuthSig[10] = 0xcc
	output := &externalapi.DomainOutputDescription{NoteCommitment: externalapi.DomainHash{5}}
	output.EncCiphertext[100] = 0xdd

	tx := &externalapi.DomainTransaction{
		Version:        constants.TransactionVersion,
		VersionGroupID: constants.SaplingVersionGroupID,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.DomainOutpoint{TransactionID: externalapi.DomainTransactionID{6}, Index: 1},
			SignatureScript:  bytes.Repeat([]byte{0x51}, 300),
			Sequence:         constants.MaxTxInSequenceNum,
		}},
		Outputs: []*externalapi.DomainTransactionOutput{{
			Value:           12345,
			ScriptPublicKey: []byte{0x76, 0xa9},
		}},
		LockTime:        10,
		ExpiryHeight:    20,
		ValueBalance:    -500,
		ShieldedSpends:  []*externalapi.DomainSpendDescription{spend},
		ShieldedOutputs: []*externalapi.DomainOutputDescription{output},
		JoinSplits:      []*externalapi.DomainJoinSplit{joinSplit},
		JoinSplitPubKey: externalapi.DomainHash{7},
	}
	tx.JoinSplitSig[0] = 0xee
	tx.BindingSig[63] = 0xff
	return tx
}

func TestTransactionSerializationRoundTrip(t *testing.T) {
	tx := shieldedTransactionForTest()

	serialized, err := SerializeTransactionToBytes(tx)
	if err != nil {
		t.Fatalf("TestTransactionSerializationRoundTrip: SerializeTransactionToBytes: %+v", err)
	}
	if uint64(len(serialized)) != TransactionSerializeSize(tx) {
		t.Fatalf("TestTransactionSerializationRoundTrip: serialized %d bytes but TransactionSerializeSize is %d",
			len(serialized), TransactionSerializeSize(tx))
	}

	deserialized, err := DeserializeTransactionFromBytes(serialized)
	if err != nil {
		t.Fatalf("TestTransactionSerializationRoundTrip: DeserializeTransactionFromBytes: %+v", err)
	}

	reserialized, err := SerializeTransactionToBytes(deserialized)
	if err != nil {
		t.Fatalf("TestTransactionSerializationRoundTrip: SerializeTransactionToBytes: %+v", err)
	}
	if !bytes.Equal(serialized, reserialized) {
		t.Fatalf("TestTransactionSerializationRoundTrip: re-serialized transaction differs")
	}

	if deserialized.ValueBalance != -500 {
		t.Errorf("TestTransactionSerializationRoundTrip: expected value balance -500, got %d", deserialized.ValueBalance)
	}
	if deserialized.JoinSplits[0].VPubNew != 7000 {
		t.Errorf("TestTransactionSerializationRoundTrip: expected vpub_new 7000, got %d", deserialized.JoinSplits[0].VPubNew)
	}
	if deserialized.ShieldedSpends[0].Nullifier != (externalapi.DomainNullifier{4}) {
		t.Errorf("TestTransactionSerializationRoundTrip: unexpected spend nullifier %s", deserialized.ShieldedSpends[0].Nullifier)
	}
	if deserialized.BindingSig != tx.BindingSig {
		t.Errorf("TestTransactionSerializationRoundTrip: binding signature was not preserved")
	}
}

func TestTransactionSerializeSizeOmitsEmptyBundles(t *testing.T) {
	tx := &externalapi.DomainTransaction{
		Version:        constants.TransactionVersion,
		VersionGroupID: constants.SaplingVersionGroupID,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.NewNullOutpoint(),
			SignatureScript:  []byte{1, 2},
		}},
		Outputs: []*externalapi.DomainTransactionOutput{{Value: 1, ScriptPublicKey: []byte{0x51}}},
	}

	// header + group ID + locktime + expiry + value balance (24) +
	// inputs (1 + 36 + 3 + 4) + outputs (1 + 8 + 2) + three empty counts (3)
	const expectedSize = 24 + 44 + 11 + 3
	if size := TransactionSerializeSize(tx); size != expectedSize {
		t.Fatalf("TestTransactionSerializeSizeOmitsEmptyBundles: expected %d, got %d", expectedSize, size)
	}
}

func TestDeserializeTransactionErrors(t *testing.T) {
	valid, err := SerializeTransactionToBytes(shieldedTransactionForTest())
	if err != nil {
		t.Fatalf("TestDeserializeTransactionErrors: SerializeTransactionToBytes: %+v", err)
	}

	notOverwintered := append([]byte{}, valid...)
	notOverwintered[3] &^= 0x80

	wrongGroupID := append([]byte{}, valid...)
	wrongGroupID[4] ^= 0xff

	// header, group ID, then an input count of 0xfe 0xffffffff
	hugeInputCount := append(append([]byte{}, valid[:8]...), 0xfe, 0xff, 0xff, 0xff, 0xff)

	tests := []struct {
		name       string
		serialized []byte
		malformed  bool
	}{
		{"not overwintered", notOverwintered, true},
		{"wrong version group", wrongGroupID, true},
		{"huge input count", hugeInputCount, true},
		{"trailing bytes", append(append([]byte{}, valid...), 0), true},
		{"truncated", valid[:len(valid)-1], false},
	}

	for _, test := range tests {
		_, err := DeserializeTransactionFromBytes(test.serialized)
		if err == nil {
			t.Errorf("TestDeserializeTransactionErrors: %s: expected an error", test.name)
			continue
		}
		if errors.Is(err, ErrMalformed) != test.malformed {
			t.Errorf("TestDeserializeTransactionErrors: %s: expected malformed=%t, got error %+v",
				test.name, test.malformed, err)
		}
	}
}

func TestReadVarIntRejectsNonCanonical(t *testing.T) {
	_, err := ReadVarInt(bytes.NewReader([]byte{0xfd, 0x10, 0x00}))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("TestReadVarIntRejectsNonCanonical: expected ErrMalformed, got %v", err)
	}

	for _, value := range []uint64{0, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000} {
		var buf bytes.Buffer
		err := WriteVarInt(&buf, value)
		if err != nil {
			t.Fatalf("TestReadVarIntRejectsNonCanonical: WriteVarInt: %+v", err)
		}
		if uint64(buf.Len()) != VarIntSerializeSize(value) {
			t.Errorf("TestReadVarIntRejectsNonCanonical: %d: wrote %d bytes, expected %d",
				value, buf.Len(), VarIntSerializeSize(value))
		}
		read, err := ReadVarInt(&buf)
		if err != nil || read != value {
			t.Errorf("TestReadVarIntRejectsNonCanonical: %d: read back %d, err %v", value, read, err)
		}
	}
}
