// Package amount implements the monetary amount type used by consensus
// validation. Every arithmetic operation reports whether its result is a
// valid amount instead of silently wrapping around.
package amount

import (
	"fmt"
	"math"

	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
)

// Amount represents a signed quantity of base units.
type Amount int64

// MaxMoney is constants.MaxMoney as an Amount.
const MaxMoney = Amount(constants.MaxMoney)

// MoneyRange returns whether the given amount lies in [0, MaxMoney].
func MoneyRange(a Amount) bool {
	return a >= 0 && a <= MaxMoney
}

// InMagnitudeRange returns whether the given amount lies in
// [-MaxMoney, MaxMoney]. Signed pool deltas are bounded this way.
func (a Amount) InMagnitudeRange() bool {
	return a >= -MaxMoney && a <= MaxMoney
}

// Add returns a+b and whether the sum is in money range. An addition that
// would overflow int64 is reported as out of range and returns zero.
func (a Amount) Add(b Amount) (Amount, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	sum := a + b
	return sum, MoneyRange(sum)
}

// Negate returns -a. The second return value is false only for the single
// value whose negation is not representable.
func (a Amount) Negate() (Amount, bool) {
	if a == math.MinInt64 {
		return 0, false
	}
	return -a, true
}

// String formats the amount in whole coins with eight decimal places.
func (a Amount) String() string {
	sign := ""
	magnitude := uint64(a)
	if a < 0 {
		sign = "-"
		magnitude = uint64(-(a + 1)) + 1
	}
	return fmt.Sprintf("%s%d.%08d LTZ", sign,
		magnitude/constants.CoinPerLTZ, magnitude%constants.CoinPerLTZ)
}
