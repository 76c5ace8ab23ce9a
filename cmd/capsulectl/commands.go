package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/blockcapsule/domain/blockcapsule"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/processes/blockbuilder"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/pow"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/blockcapsule/infrastructure/config"
	"github.com/pkg/errors"
)

func newCoinbase(flags *CoinbaseFlags) (*externalapi.DomainTransaction, error) {
	return transactionhelper.NewCoinbaseTransaction(flags.CoinbasePublicKeyHash,
		[]byte(flags.CoinbaseData), flags.CoinbaseValue)
}

func genesis(cfg *config.Config, factory *blockcapsule.Factory, conf *genesisConfig, out io.Writer) error {
	coinbase, err := newCoinbase(&conf.CoinbaseFlags)
	if err != nil {
		return err
	}
	block, err := blockbuilder.New(cfg.Hasher).BuildGenesisBlock(coinbase)
	if err != nil {
		return err
	}

	capsule := factory.FromBlock(block)
	if conf.Store {
		err := withBlockStore(cfg, factory, func(store blockStore) error {
			_, err := store.Put(capsule)
			return err
		})
		if err != nil {
			return err
		}
	}
	return printCapsule(capsule, conf.Verbose, out)
}

func build(cfg *config.Config, factory *blockcapsule.Factory, conf *buildConfig, out io.Writer) error {
	parentHash, err := externalapi.NewDomainHashFromString(conf.ParentHash)
	if err != nil {
		return errors.Wrapf(err, "invalid parent hash")
	}
	difficulty, err := hex.DecodeString(conf.Difficulty)
	if err != nil {
		return errors.Wrapf(err, "invalid difficulty")
	}
	coinbase, err := newCoinbase(&conf.CoinbaseFlags)
	if err != nil {
		return err
	}
	timestamp := conf.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixNano() / int64(time.Millisecond)
	}

	block, err := blockbuilder.New(cfg.Hasher).BuildBlock([]*externalapi.DomainTransaction{coinbase},
		parentHash, difficulty, conf.Number, timestamp)
	if err != nil {
		return err
	}

	if conf.Solve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		start := time.Now()
		err := pow.SolveBlock(ctx, block, cfg.Hasher)
		if err != nil {
			return err
		}
		log.Infof("Solved block %d in %s", conf.Number, time.Since(start))
	}

	return printCapsule(factory.FromBlock(block), conf.Verbose, out)
}

func inspect(factory *blockcapsule.Factory, conf *inspectConfig, out io.Writer) error {
	blockBytes, err := decodeHex(conf.Args.BlockHex)
	if err != nil {
		return err
	}
	return printCapsule(factory.FromBytes(blockBytes), conf.Verbose, out)
}

func decodeHex(blockHex string) ([]byte, error) {
	blockBytes, err := hex.DecodeString(strings.TrimSpace(blockHex))
	if err != nil {
		return nil, errors.Wrapf(err, "block is not valid hex")
	}
	return blockBytes, nil
}

// printCapsule prints what the capsule knows about its block. A corrupt
// block is reported, not returned as an error.
func printCapsule(capsule *blockcapsule.Capsule, verbose bool, out io.Writer) error {
	blockHash, err := capsule.Hash()
	if err != nil {
		return err
	}
	blockBytes, err := capsule.EncodedBytes()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Hash:   %s\n", blockHash)

	parentHash, err := capsule.ParentHash()
	if errors.Is(err, blockcapsule.ErrCorruptBlock) {
		fmt.Fprintf(out, "Corrupt: %s\n", err)
		fmt.Fprintf(out, "Bytes:  %x\n", blockBytes)
		return nil
	}
	if err != nil {
		return err
	}
	number, err := capsule.BlockNumber()
	if err != nil {
		return err
	}
	isValid, err := capsule.Validate()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Parent: %s\n", parentHash)
	fmt.Fprintf(out, "Number: %d\n", number)
	fmt.Fprintf(out, "Valid:  %t\n", isValid)
	if verbose {
		block, err := capsule.Block()
		if err != nil {
			return err
		}
		fmt.Fprint(out, spew.Sdump(block))
	}
	fmt.Fprintf(out, "Bytes:  %x\n", blockBytes)
	return nil
}
