package blockstore

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/kaspanet/blockcapsule/domain/blockcapsule"
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/multiset"
	"github.com/kaspanet/blockcapsule/infrastructure/db/database"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var bucket = database.MakeBucket([]byte("blocks"))
var countKey = database.MakeBucket(nil).Key([]byte("blocks-count"))
var multisetKey = database.MakeBucket(nil).Key([]byte("blocks-multiset"))

// ErrHashMismatch indicates that the bytes stored under a block hash do
// not hash to that block hash
var ErrHashMismatch = errors.New("stored block does not match its hash")

// BlockStore persists block capsules by their content hash
type BlockStore struct {
	db      database.Database
	factory *blockcapsule.Factory

	mutex          sync.Mutex
	cache          *lru.Cache
	countCached    uint64
	multisetCached model.Multiset
}

// New instantiates a new BlockStore over db. Capsules read back from the
// database are created by factory. Up to cacheSize capsules are kept in
// memory.
func New(db database.Database, factory *blockcapsule.Factory, cacheSize int) (*BlockStore, error) {
	if cacheSize <= 0 {
		return nil, errors.Errorf("cache size must be positive, got %d", cacheSize)
	}

	blockStore := &BlockStore{
		db:      db,
		factory: factory,
		cache:   lru.New(cacheSize),
	}

	err := blockStore.initializeCount()
	if err != nil {
		return nil, err
	}
	err = blockStore.initializeMultiset()
	if err != nil {
		return nil, err
	}

	return blockStore, nil
}

func (bs *BlockStore) initializeCount() error {
	count := uint64(0)
	hasCountBytes, err := bs.db.Has(countKey)
	if err != nil {
		return err
	}
	if hasCountBytes {
		countBytes, err := bs.db.Get(countKey)
		if err != nil {
			return err
		}
		count, err = bs.deserializeBlockCount(countBytes)
		if err != nil {
			return err
		}
	}
	bs.countCached = count
	return nil
}

func (bs *BlockStore) initializeMultiset() error {
	hasMultiset, err := bs.db.Has(multisetKey)
	if err != nil {
		return err
	}
	if !hasMultiset {
		bs.multisetCached = multiset.New()
		return nil
	}
	multisetBytes, err := bs.db.Get(multisetKey)
	if err != nil {
		return err
	}
	bs.multisetCached, err = multiset.FromBytes(multisetBytes)
	return err
}

// Put stores the given capsule's encoding and returns the hash it is
// stored under. The hash is computed with the store's own factory, so it
// may differ from capsule.Hash() if the capsule was created by a factory
// with another content hasher. Storing a block that is already in the
// store does nothing.
func (bs *BlockStore) Put(capsule *blockcapsule.Capsule) (*externalapi.DomainHash, error) {
	blockBytes, err := capsule.EncodedBytes()
	if err != nil {
		return nil, err
	}
	stored := bs.factory.FromBytes(blockBytes)
	blockHash, err := stored.Hash()
	if err != nil {
		return nil, err
	}

	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	exists, err := bs.has(blockHash)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Debugf("Block %s is already stored", blockHash)
		return blockHash, nil
	}

	newMultiset := bs.multisetCached.Clone()
	newMultiset.Add(blockHash.ByteSlice())
	err = bs.commit(bs.countCached+1, newMultiset, func(tx database.Transaction) error {
		return tx.Put(bs.hashAsKey(blockHash), blockBytes)
	})
	if err != nil {
		return nil, err
	}

	bs.cache.Add(*blockHash, stored)
	log.Debugf("Stored block %s (%d bytes)", blockHash, len(blockBytes))
	return blockHash, nil
}

// Get returns a capsule over the block stored under blockHash. It returns
// database.ErrNotFound if there is no such block and ErrHashMismatch if
// the stored bytes do not hash to blockHash.
func (bs *BlockStore) Get(blockHash *externalapi.DomainHash) (*blockcapsule.Capsule, error) {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if capsule, ok := bs.cache.Get(*blockHash); ok {
		return capsule.(*blockcapsule.Capsule), nil
	}

	blockBytes, err := bs.db.Get(bs.hashAsKey(blockHash))
	if err != nil {
		return nil, err
	}

	capsule := bs.factory.FromBytes(blockBytes)
	storedHash, err := capsule.Hash()
	if err != nil {
		return nil, err
	}
	if !storedHash.Equal(blockHash) {
		return nil, errors.Wrapf(ErrHashMismatch, "block %s hashes to %s", blockHash, storedHash)
	}

	bs.cache.Add(*blockHash, capsule)
	return capsule, nil
}

// Has returns whether a block with the given hash exists in the store
func (bs *BlockStore) Has(blockHash *externalapi.DomainHash) (bool, error) {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	return bs.has(blockHash)
}

func (bs *BlockStore) has(blockHash *externalapi.DomainHash) (bool, error) {
	if _, ok := bs.cache.Get(*blockHash); ok {
		return true, nil
	}

	return bs.db.Has(bs.hashAsKey(blockHash))
}

// Delete deletes the block associated with the given blockHash. Deleting
// a block that is not in the store does nothing.
func (bs *BlockStore) Delete(blockHash *externalapi.DomainHash) error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	exists, err := bs.has(blockHash)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	newMultiset := bs.multisetCached.Clone()
	newMultiset.Remove(blockHash.ByteSlice())
	err = bs.commit(bs.countCached-1, newMultiset, func(tx database.Transaction) error {
		return tx.Delete(bs.hashAsKey(blockHash))
	})
	if err != nil {
		return err
	}

	bs.cache.Remove(*blockHash)
	log.Debugf("Deleted block %s", blockHash)
	return nil
}

// Count returns the number of blocks in the store
func (bs *BlockStore) Count() uint64 {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	return bs.countCached
}

// Commitment returns a hash of the set of stored block hashes. It does
// not depend on the order in which blocks were stored or deleted.
func (bs *BlockStore) Commitment() *externalapi.DomainHash {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	return bs.multisetCached.Hash()
}

// Hashes returns the hashes of all the stored blocks, in key order
func (bs *BlockStore) Hashes() ([]*externalapi.DomainHash, error) {
	cursor, err := bs.db.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var blockHashes []*externalapi.DomainHash
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		blockHash, err := externalapi.NewDomainHashFromByteSlice(key.Suffix())
		if err != nil {
			return nil, errors.Wrapf(err, "malformed block key %s", key)
		}
		blockHashes = append(blockHashes, blockHash)
	}
	return blockHashes, nil
}

// commit applies write together with the new block count and multiset in
// a single database transaction
func (bs *BlockStore) commit(newCount uint64, newMultiset model.Multiset,
	write func(tx database.Transaction) error) error {

	tx, err := bs.db.Begin()
	if err != nil {
		return err
	}
	defer tx.RollbackUnlessClosed()

	err = write(tx)
	if err != nil {
		return err
	}

	countBytes, err := bs.serializeBlockCount(newCount)
	if err != nil {
		return err
	}
	err = tx.Put(countKey, countBytes)
	if err != nil {
		return err
	}
	err = tx.Put(multisetKey, newMultiset.Serialize())
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return err
	}
	bs.countCached = newCount
	bs.multisetCached = newMultiset
	return nil
}

func (bs *BlockStore) hashAsKey(hash *externalapi.DomainHash) *database.Key {
	return bucket.Key(hash.ByteSlice())
}

func (bs *BlockStore) serializeBlockCount(count uint64) ([]byte, error) {
	countBytes, err := proto.Marshal(wrapperspb.UInt64(count))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return countBytes, nil
}

func (bs *BlockStore) deserializeBlockCount(countBytes []byte) (uint64, error) {
	dbBlockCount := &wrapperspb.UInt64Value{}
	err := proto.Unmarshal(countBytes, dbBlockCount)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed block count")
	}
	return dbBlockCount.Value, nil
}
