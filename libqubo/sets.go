package libqubo

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/qubo.SDK/goqubo"
)

// SolutionSet allows adding candidate solutions and reporting if an identical solution was already added.
type SolutionSet interface {

	// TryAdd adds the given solution if it is not already present.
	//
	// If x is already in this SolutionSet, false is returned and this call has no effect.
	// If x isn't in this SolutionSet, a copy of x is added and true is returned.
	TryAdd(x goqubo.Solution) bool

	// Len returns the number of distinct solutions added.
	Len() int

	// Close removes all previously added items from this set.
	//
	// If you make subsequent calls to TryAdd(), call Close() when you're done.
	Close()
}

func NewSolutionSet() SolutionSet {
	return &solutionSet{}
}

type solutionSet struct {
	lsmSet
}

func (ss *solutionSet) TryAdd(x goqubo.Solution) bool {
	var buf [64]byte
	key := AppendSolutionKey(buf[:0], x)
	return ss.tryAdd(key)
}

// AppendSolutionKey appends the bit-packed form of x, prefixed with its length (as a uvarint).
func AppendSolutionKey(key []byte, x goqubo.Solution) []byte {
	n := uint64(len(x))
	for n >= 0x80 {
		key = append(key, byte(n)|0x80)
		n >>= 7
	}
	key = append(key, byte(n))

	var packed byte
	for i, xi := range x {
		if xi != 0 {
			packed |= 1 << (i & 7)
		}
		if i&7 == 7 {
			key = append(key, packed)
			packed = 0
		}
	}
	if len(x)&7 != 0 {
		key = append(key, packed)
	}
	return key
}

type lsmSet struct {
	db    *badger.DB
	count int
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		if err == nil {
			err = txn.Commit()
		}
		added = true
	}

	if err != nil {
		panic(err)
	}

	if added {
		set.count++
	}
	return added
}

func (set *lsmSet) Len() int {
	return set.count
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
	set.count = 0
}
