package hashes

import (
	"math/big"
	"testing"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
)

func TestDomainSeparation(t *testing.T) {
	data := []byte("the same bytes")

	txIDWriter := NewTransactionIDWriter()
	txIDWriter.InfallibleWrite(data)
	blockWriter := NewBlockHashWriter()
	blockWriter.InfallibleWrite(data)

	if txIDWriter.Finalize().Equal(blockWriter.Finalize()) {
		t.Fatalf("TestDomainSeparation: transaction ID and block hash domains collide")
	}
}

func TestToBig(t *testing.T) {
	hash := externalapi.DomainHash{0x01, 0x02}
	expected := big.NewInt(0x0201)
	if ToBig(&hash).Cmp(expected) != 0 {
		t.Fatalf("TestToBig: expected %s, got %s", expected, ToBig(&hash))
	}
	if hash[0] != 0x01 {
		t.Fatalf("TestToBig: ToBig modified its argument")
	}
}
