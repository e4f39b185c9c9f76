package libpsm

import (
	"github.com/2x3systems/psmiles/psm"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// NmerSet allows adding N-mer renderings and returning if a given N-mer has already been added.
type NmerSet interface {

	// Add adds the given N-mer if it is not already present and returns true if it was added.
	//
	// After one or more calls to Add(), be sure to call Close() for cleanup.
	Add(nmer string) (bool, error)

	// TryAdd is Add for callers that treat a storage failure as "not added".  Failures are logged.
	TryAdd(nmer string) bool

	// Len returns how many distinct N-mers have been added.
	Len() int

	// Close removes all previously added items from this set.
	Close()
}

// NewLSMSet returns a StructureSet keyed by each structure's normalized rendering, backed by an in-memory LSM store.
// Invalid structures are never added.
func NewLSMSet() psm.StructureSet {
	return &structureSet{}
}

func NewNmerSet() NmerSet {
	return &nmerSet{}
}

type structureSet struct {
	lsmSet
}

func (set *structureSet) Add(X psm.Structure) (bool, error) {
	if !X.IsValid() {
		return false, nil
	}
	return set.add([]byte(X.Key()))
}

func (set *structureSet) TryAdd(X psm.Structure) bool {
	added, err := set.Add(X)
	if err != nil {
		klog.Warningf("%q not added: %v", X.Input(), err)
	}
	return added
}

type nmerSet struct {
	lsmSet
	count int
}

func (set *nmerSet) Add(nmer string) (bool, error) {
	added, err := set.add([]byte(nmer))
	if added {
		set.count++
	}
	return added, err
}

func (set *nmerSet) TryAdd(nmer string) bool {
	added, err := set.Add(nmer)
	if err != nil {
		klog.Warningf("N-mer %q not added: %v", nmer, err)
	}
	return added
}

func (set *nmerSet) Len() int {
	return set.count
}

func (set *nmerSet) Close() {
	set.lsmSet.Close()
	set.count = 0
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() error {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		db, err := badger.Open(dbOpts)
		if err != nil {
			return errors.Wrap(err, "open in-memory set")
		}
		set.db = db
	}
	return nil
}

func (set *lsmSet) add(key []byte) (bool, error) {
	if err := set.autoOpen(); err != nil {
		return false, err
	}

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false, nil
	}
	if err != badger.ErrKeyNotFound {
		return false, errors.Wrapf(err, "look up key %q", key)
	}
	if err = txn.Set(key, nil); err != nil {
		return false, errors.Wrapf(err, "set key %q", key)
	}
	if err = txn.Commit(); err != nil {
		return false, errors.Wrapf(err, "commit key %q", key)
	}
	return true, nil
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
