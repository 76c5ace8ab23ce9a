package ldb

import (
	"github.com/kaspanet/blockcapsule/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBTransaction is a thin wrapper around a leveldb
// write batch. Its writes become visible together on Commit.
type LevelDBTransaction struct {
	db       *LevelDB
	batch    *leveldb.Batch
	isClosed bool
}

// Commit writes the batch to the database and closes
// the transaction.
func (tx *LevelDBTransaction) Commit() error {
	if tx.isClosed {
		return errors.New("cannot commit a closed transaction")
	}

	tx.isClosed = true
	err := tx.db.ldb.Write(tx.batch, nil)
	return errors.WithStack(err)
}

// RollbackUnlessClosed discards the batch unless the
// transaction is already closed.
func (tx *LevelDBTransaction) RollbackUnlessClosed() error {
	if tx.isClosed {
		return nil
	}

	tx.isClosed = true
	tx.batch.Reset()
	return nil
}

// Put sets the value for the given key once the
// transaction is committed.
func (tx *LevelDBTransaction) Put(key *database.Key, value []byte) error {
	if tx.isClosed {
		return errors.New("cannot put into a closed transaction")
	}

	tx.batch.Put(key.Bytes(), value)
	return nil
}

// Delete deletes the value for the given key once the
// transaction is committed.
func (tx *LevelDBTransaction) Delete(key *database.Key) error {
	if tx.isClosed {
		return errors.New("cannot delete from a closed transaction")
	}

	tx.batch.Delete(key.Bytes())
	return nil
}
