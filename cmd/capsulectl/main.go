package main

import (
	"fmt"
	"os"

	"github.com/kaspanet/blockcapsule/domain/blockcapsule"
	"github.com/kaspanet/blockcapsule/domain/consensus/processes/blockvalidator"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/serialization"
	"github.com/kaspanet/blockcapsule/infrastructure/config"
	"github.com/kaspanet/blockcapsule/infrastructure/logger"
	"github.com/pkg/errors"
)

func main() {
	subCmd, cfg, commandConfig, err := parseCommandLine(os.Args[1:])
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing command-line arguments: %s", err))
	}

	err = logger.InitLog(cfg.LogFile, cfg.ErrLogFile)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error initializing the logger: %s", err))
	}
	defer logger.BackendLog.Close()
	log.Debugf("Running %s with the %s content hash", subCmd, cfg.Hash)

	factory := newFactory(cfg)
	out := os.Stdout
	switch subCmd {
	case genesisSubCmd:
		err = genesis(cfg, factory, commandConfig.(*genesisConfig), out)
	case buildSubCmd:
		err = build(cfg, factory, commandConfig.(*buildConfig), out)
	case inspectSubCmd:
		err = inspect(factory, commandConfig.(*inspectConfig), out)
	case putSubCmd:
		err = put(cfg, factory, commandConfig.(*putConfig), os.Stdin, out)
	case getSubCmd:
		err = get(cfg, factory, commandConfig.(*getConfig), out)
	case listSubCmd:
		err = list(cfg, factory, out)
	default:
		err = errors.Errorf("unknown command %q", subCmd)
	}
	if err != nil {
		printErrorAndExit(fmt.Sprintf("%s: %s", subCmd, err))
	}
}

func newFactory(cfg *config.Config) *blockcapsule.Factory {
	return blockcapsule.NewFactory(serialization.NewCodec(), cfg.Hasher,
		blockvalidator.New(cfg.Hasher, cfg.ValidatorParams))
}

func printErrorAndExit(message string) {
	logger.BackendLog.Close()
	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(1)
}
