package blockbuilder

import (
	"github.com/kaspanet/blockcapsule/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BLDR")
