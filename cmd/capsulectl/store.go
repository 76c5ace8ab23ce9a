package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/kaspanet/blockcapsule/domain/blockcapsule"
	"github.com/kaspanet/blockcapsule/domain/consensus/datastructures/blockstore"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/infrastructure/config"
	"github.com/kaspanet/blockcapsule/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

type blockStore interface {
	Put(capsule *blockcapsule.Capsule) (*externalapi.DomainHash, error)
	Get(blockHash *externalapi.DomainHash) (*blockcapsule.Capsule, error)
	Hashes() ([]*externalapi.DomainHash, error)
	Count() uint64
	Commitment() *externalapi.DomainHash
}

// withBlockStore opens the block store in the configured data directory,
// runs f and closes it again
func withBlockStore(cfg *config.Config, factory *blockcapsule.Factory, f func(store blockStore) error) error {
	err := os.MkdirAll(cfg.DataDir, 0700)
	if err != nil {
		return errors.WithStack(err)
	}
	db, err := ldb.NewLevelDB(cfg.DataDir, cfg.DBCacheSizeMiB)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close()
		if closeErr != nil {
			log.Errorf("Error closing the database: %s", closeErr)
		}
	}()

	store, err := blockstore.New(db, factory, cfg.CacheSize)
	if err != nil {
		return err
	}
	return f(store)
}

func put(cfg *config.Config, factory *blockcapsule.Factory, conf *putConfig, in *os.File, out io.Writer) error {
	blockHex := conf.Args.BlockHex
	if blockHex == "" {
		var err error
		blockHex, err = readBlockHex(in)
		if err != nil {
			return err
		}
	}
	blockBytes, err := decodeHex(blockHex)
	if err != nil {
		return err
	}

	capsule := factory.FromBytes(blockBytes)
	return withBlockStore(cfg, factory, func(store blockStore) error {
		blockHash, err := store.Put(capsule)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, blockHash)
		return nil
	})
}

// readBlockHex reads an encoded block from in, which must not be an
// interactive terminal
func readBlockHex(in *os.File) (string, error) {
	if term.IsTerminal(int(in.Fd())) {
		return "", errors.New("no block given: pass it as an argument or pipe it to stdin")
	}
	blockHex, err := ioutil.ReadAll(in)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(blockHex), nil
}

func get(cfg *config.Config, factory *blockcapsule.Factory, conf *getConfig, out io.Writer) error {
	blockHash, err := externalapi.NewDomainHashFromString(conf.Args.BlockHash)
	if err != nil {
		return errors.Wrapf(err, "invalid block hash")
	}

	return withBlockStore(cfg, factory, func(store blockStore) error {
		capsule, err := store.Get(blockHash)
		if err != nil {
			return err
		}
		return printCapsule(capsule, conf.Verbose, out)
	})
}

func list(cfg *config.Config, factory *blockcapsule.Factory, out io.Writer) error {
	return withBlockStore(cfg, factory, func(store blockStore) error {
		blockHashes, err := store.Hashes()
		if err != nil {
			return err
		}
		for _, blockHash := range blockHashes {
			fmt.Fprintln(out, blockHash)
		}
		fmt.Fprintf(out, "%d blocks, commitment %s\n", store.Count(), store.Commitment())
		return nil
	})
}
