package mempool

import (
	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXMP")
