package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/blockcapsule/infrastructure/config"
	"github.com/pkg/errors"
)

const (
	genesisSubCmd = "genesis"
	buildSubCmd   = "build"
	inspectSubCmd = "inspect"
	putSubCmd     = "put"
	getSubCmd     = "get"
	listSubCmd    = "list"
)

const defaultCoinbasePublicKeyHash = "0304f784e4e7bae517bcab94c3e0c9214fb4ac7ff9d7d5a937d1f40031f87b85"

type configFlags struct {
	config.Flags
}

// OutputFlags are the options of commands that print a block
type OutputFlags struct {
	Verbose bool `long:"verbose" short:"v" description:"Dump the full structured block"`
}

// CoinbaseFlags are the options of commands that build a coinbase
type CoinbaseFlags struct {
	CoinbasePublicKeyHash string `long:"coinbase-pkh" description:"Public key hash (hex) the coinbase pays to"`
	CoinbaseData          string `long:"coinbase-data" description:"Data carried by the coinbase input"`
	CoinbaseValue         int64  `long:"coinbase-value" description:"Value minted by the coinbase"`
}

type genesisConfig struct {
	CoinbaseFlags
	OutputFlags
	Store bool `long:"store" description:"Also store the genesis block in the block store"`
}

type buildConfig struct {
	CoinbaseFlags
	OutputFlags
	ParentHash string `long:"parent" short:"p" description:"Hash of the parent block (hex)" required:"true"`
	Number     uint64 `long:"number" short:"n" description:"Height of the new block" required:"true"`
	Difficulty string `long:"difficulty" description:"Block difficulty (hex, big-endian)"`
	Timestamp  int64  `long:"timestamp" description:"Block timestamp in milliseconds -- defaults to now"`
	Solve      bool   `long:"solve" description:"Search for a nonce that satisfies the difficulty"`
}

type inspectConfig struct {
	OutputFlags
	Args struct {
		BlockHex string `positional-arg-name:"block-hex" description:"The encoded block (hex)"`
	} `positional-args:"yes" required:"yes"`
}

type putConfig struct {
	Args struct {
		BlockHex string `positional-arg-name:"block-hex" description:"The encoded block (hex) -- read from stdin when omitted"`
	} `positional-args:"yes"`
}

type getConfig struct {
	OutputFlags
	Args struct {
		BlockHash string `positional-arg-name:"block-hash" description:"The hash of the block to fetch (hex)"`
	} `positional-args:"yes" required:"yes"`
}

type listConfig struct{}

func defaultCoinbaseFlags() CoinbaseFlags {
	return CoinbaseFlags{
		CoinbasePublicKeyHash: defaultCoinbasePublicKeyHash,
		CoinbaseData:          "0x10",
		CoinbaseValue:         50,
	}
}

func parseCommandLine(args []string) (subCommand string, cfg *config.Config, commandConfig interface{}, err error) {
	cfgFlags := &configFlags{Flags: *config.DefaultFlags()}
	parser := flags.NewParser(cfgFlags, flags.HelpFlag)
	parser.Usage = "[OPTIONS] <command> [COMMAND OPTIONS]"

	genesisConf := &genesisConfig{CoinbaseFlags: defaultCoinbaseFlags()}
	parser.AddCommand(genesisSubCmd, "Builds the genesis block",
		"Builds the genesis block and prints its capsule", genesisConf)

	buildConf := &buildConfig{CoinbaseFlags: defaultCoinbaseFlags(), Difficulty: "2001"}
	parser.AddCommand(buildSubCmd, "Builds a block over a parent",
		"Builds a block holding a single coinbase over the given parent, optionally solving its proof of work", buildConf)

	inspectConf := &inspectConfig{}
	parser.AddCommand(inspectSubCmd, "Inspects an encoded block",
		"Prints the hash, parent, number and validity of an encoded block", inspectConf)

	putConf := &putConfig{}
	parser.AddCommand(putSubCmd, "Stores an encoded block",
		"Stores an encoded block in the block store and prints its hash", putConf)

	getConf := &getConfig{}
	parser.AddCommand(getSubCmd, "Fetches a stored block",
		"Fetches a block from the block store by its hash", getConf)

	listConf := &listConfig{}
	parser.AddCommand(listSubCmd, "Lists the stored blocks",
		"Prints the hashes of all the blocks in the block store", listConf)

	_, err = config.ParseArgs(parser, &cfgFlags.Flags, args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			_, _ = os.Stdout.WriteString(err.Error() + "\n")
			os.Exit(0)
		}
		return "", nil, nil, err
	}

	cfg, err = cfgFlags.ResolveConfig()
	if err != nil {
		return "", nil, nil, err
	}

	switch parser.Command.Active.Name {
	case genesisSubCmd:
		commandConfig = genesisConf
	case buildSubCmd:
		commandConfig = buildConf
	case inspectSubCmd:
		commandConfig = inspectConf
	case putSubCmd:
		commandConfig = putConf
	case getSubCmd:
		commandConfig = getConf
	case listSubCmd:
		commandConfig = listConf
	}
	return parser.Command.Active.Name, cfg, commandConfig, nil
}
