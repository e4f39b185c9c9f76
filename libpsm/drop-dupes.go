package libpsm

import (
	"bytes"
	"hash/maphash"

	"github.com/2x3systems/psmiles/psm"
)

type dropDupes struct {
	hashMap   map[uint64][]byte
	hasher    maphash.Hash
	bufPool   []byte
	bufPoolSz int
	opts      DropDupeOpts
}

const DefaultPoolSz = 32 * 1024

type DropDupeOpts struct {
	PoolSz       int  // 0 denotes DefaultPoolSz (32k)
	MatchByInput bool // if set, structures are equal only if their input text is equal (vs their normalized rendering)
}

// NewDropDupes returns a StructureSet that keeps the keys of added structures in pooled heap buffers.
func NewDropDupes(opts DropDupeOpts) psm.StructureSet {
	if opts.PoolSz <= 0 {
		opts.PoolSz = DefaultPoolSz
	}
	return &dropDupes{
		hashMap: make(map[uint64][]byte),
		opts:    opts,
	}
}

func (cat *dropDupes) Reset() {
	cat.bufPoolSz = 0
	for k := range cat.hashMap {
		delete(cat.hashMap, k)
	}
}

func (cat *dropDupes) Close() {
	cat.Reset()
	cat.hashMap = nil
}

func (cat *dropDupes) Add(X psm.Structure) (bool, error) {
	return cat.TryAdd(X), nil
}

func (cat *dropDupes) TryAdd(X psm.Structure) bool {
	if !X.IsValid() {
		return false
	}
	if cat.hashMap == nil {
		cat.hashMap = make(map[uint64][]byte)
	}

	var key []byte
	if cat.opts.MatchByInput {
		key = []byte(X.Input())
	} else {
		key = []byte(X.Key())
	}

	cat.hasher.Reset()
	cat.hasher.Write(key)
	hash := cat.hasher.Sum64()

	existing, found := cat.hashMap[hash]
	for found {
		if bytes.Equal(existing, key) {
			return false
		}
		hash++
		existing, found = cat.hashMap[hash]
	}

	// New entry: copy the key into the pool, starting a new pool when this one is full.
	pos := cat.bufPoolSz
	itemLen := len(key)
	if pos+itemLen > cap(cat.bufPool) {
		allocSz := max(cat.opts.PoolSz, itemLen)
		cat.bufPool = make([]byte, allocSz)
		cat.bufPoolSz = 0
		pos = 0
	}

	cat.hashMap[hash] = append(cat.bufPool[pos:pos], key...)
	cat.bufPoolSz += itemLen
	return true
}
