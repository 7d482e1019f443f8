package externalapi

// DomainBlock represents a LitecoinZ block
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// DomainBlockHeader represents the header part of a LitecoinZ block
type DomainBlockHeader struct {
	Version              int32
	HashPrevBlock        DomainHash
	HashMerkleRoot       DomainHash
	HashFinalSaplingRoot DomainHash
	Time                 uint32
	Bits                 uint32
	Nonce                DomainHash
}
