package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/processes/blockvalidator"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/hashes"
	"github.com/kaspanet/blockcapsule/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "blockcapsule.log"
	defaultErrLogFilename = "blockcapsule_err.log"
	defaultCacheSize      = 128
	defaultDBCacheSizeMiB = 16
)

// DefaultAppDir is the default home directory for blockcapsule.
var DefaultAppDir = btcutil.AppDataDir("blockcapsule", false)

// Flags defines the configuration options shared by the blockcapsule tools.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	AppDir          string `short:"b" long:"appdir" description:"Directory to store data"`
	ConfigFile      string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir          string `long:"logdir" description:"Directory to log output -- defaults to <appdir>/logs"`
	LogLevel        string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical, off} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	Hash            string `long:"hash" description:"Content hash function {sha256, blake2b, sha3}"`
	CacheSize       int    `long:"cachesize" description:"Number of blocks to keep in the block store's memory cache"`
	DBCacheSizeMiB  int    `long:"dbcachesize" description:"LevelDB block cache size in MiB"`
	CheckPoW        bool   `long:"checkpow" description:"Enforce proof of work on every block above genesis"`
	CheckSignatures bool   `long:"checksigs" description:"Verify the Schnorr signature of every non-coinbase input"`
}

// Config is the resolved configuration: the parsed flags
// plus everything derived from them.
type Config struct {
	*Flags

	DataDir         string
	LogFile         string
	ErrLogFile      string
	Hasher          model.Hasher
	ValidatorParams *blockvalidator.Params
}

// DefaultFlags returns the flags with their default values
func DefaultFlags() *Flags {
	return &Flags{
		AppDir:         DefaultAppDir,
		LogLevel:       defaultLogLevel,
		Hash:           hashes.DefaultHasherName,
		CacheSize:      defaultCacheSize,
		DBCacheSizeMiB: defaultDBCacheSizeMiB,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// ParseArgs parses args with the given parser, whose options include
// cfgFlags. If a config file is named, it is loaded and args are parsed
// again on top of it, so that command line options take precedence.
func ParseArgs(parser *flags.Parser, cfgFlags *Flags, args []string) ([]string, error) {
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if cfgFlags.ConfigFile == "" {
		return remainingArgs, nil
	}

	configFile := cleanAndExpandPath(cfgFlags.ConfigFile)
	err = flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing config file %s", configFile)
	}
	return parser.ParseArgs(args)
}

// LoadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
// 	1) Start with a default config with sane settings
// 	2) Parse the command line to check for a config file
// 	3) Load the config file, if any, overwriting defaults
// 	4) Parse CLI options again, overwriting any specified options
// 	5) Resolve and validate the result
//
// The remaining positional arguments are returned alongside the config.
func LoadConfig(args []string) (*Config, []string, error) {
	cfgFlags := DefaultFlags()
	parser := flags.NewParser(cfgFlags, flags.HelpFlag)
	remainingArgs, err := ParseArgs(parser, cfgFlags, args)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := cfgFlags.ResolveConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, remainingArgs, nil
}

// ResolveConfig validates the flags, sets the log levels they name and
// derives the rest of the configuration from them
func (cfgFlags *Flags) ResolveConfig() (*Config, error) {
	funcName := "ResolveConfig"

	cfgFlags.AppDir = cleanAndExpandPath(cfgFlags.AppDir)
	if cfgFlags.LogDir == "" {
		cfgFlags.LogDir = filepath.Join(cfgFlags.AppDir, defaultLogDirname)
	}
	cfgFlags.LogDir = cleanAndExpandPath(cfgFlags.LogDir)

	hasher, err := hashes.HasherByName(cfgFlags.Hash)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: invalid --hash", funcName)
	}

	if cfgFlags.CacheSize <= 0 {
		return nil, errors.Errorf("%s: the cache size must be positive, got %d",
			funcName, cfgFlags.CacheSize)
	}
	if cfgFlags.DBCacheSizeMiB < 0 {
		return nil, errors.Errorf("%s: the database cache size must not be negative, got %d",
			funcName, cfgFlags.DBCacheSizeMiB)
	}

	// Parse, validate, and set log level(s).
	err = logger.ParseAndSetLogLevels(cfgFlags.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: invalid --loglevel", funcName)
	}

	return &Config{
		Flags:      cfgFlags,
		DataDir:    filepath.Join(cfgFlags.AppDir, defaultDataDirname),
		LogFile:    filepath.Join(cfgFlags.LogDir, defaultLogFilename),
		ErrLogFile: filepath.Join(cfgFlags.LogDir, defaultErrLogFilename),
		Hasher:     hasher,
		ValidatorParams: &blockvalidator.Params{
			CheckProofOfWork: cfgFlags.CheckPoW,
			CheckSignatures:  cfgFlags.CheckSignatures,
		},
	}, nil
}
