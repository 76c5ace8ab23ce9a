package blockvalidator

import (
	"github.com/kaspanet/blockcapsule/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BVAL")
