package ldb

import "github.com/syndtr/goleveldb/leveldb/opt"

var defaultOptions = opt.Options{
	Compression:            opt.NoCompression,
	BlockCacheCapacity:     256 * opt.MiB,
	WriteBuffer:            128 * opt.MiB,
	DisableSeeksCompaction: true,
}

// Options is a function that returns a leveldb
// opt.Options struct for opening a database with the
// given block cache size. It's defined as a variable
// for the sake of testing.
var Options = func(cacheSizeMiB int) *opt.Options {
	options := defaultOptions
	if cacheSizeMiB > 0 {
		options.BlockCacheCapacity = cacheSizeMiB * opt.MiB
	}
	return &options
}
