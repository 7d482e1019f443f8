package pow

import (
	"math/big"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/hashes"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/math"
	"github.com/pkg/errors"
)

var (
	// ErrTargetOutOfRange indicates the header claims a target which is
	// not positive or above the highest target of the network.
	ErrTargetOutOfRange = errors.New("block target difficulty is out of range")

	// ErrHighHash indicates the header's hash is above its claimed target.
	ErrHighHash = errors.New("block hash is higher than expected difficulty")
)

// CheckProofOfWorkWithTarget checks if the header's hash is at most the given target.
func CheckProofOfWorkWithTarget(header *externalapi.DomainBlockHeader, target *big.Int) bool {
	return hashes.ToBig(consensushashing.HeaderHash(header)).Cmp(target) <= 0
}

// CheckProofOfWork checks that the target encoded in the header's Bits is in
// range for a network whose highest allowed target is powMax, and that the
// header hash satisfies it.
func CheckProofOfWork(header *externalapi.DomainBlockHeader, powMax *big.Int) error {
	target := math.CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		return errors.Wrapf(ErrTargetOutOfRange, "block target difficulty of %064x is too low", target)
	}
	if target.Cmp(powMax) > 0 {
		return errors.Wrapf(ErrTargetOutOfRange, "block target difficulty of %064x is higher than max of %064x",
			target, powMax)
	}
	if !CheckProofOfWorkWithTarget(header, target) {
		return errors.Wrapf(ErrHighHash, "block hash of %s is higher than expected max of %064x",
			consensushashing.HeaderHash(header), target)
	}
	return nil
}
