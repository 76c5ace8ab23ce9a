package blockcapsule

import (
	"github.com/kaspanet/blockcapsule/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BCAP")
