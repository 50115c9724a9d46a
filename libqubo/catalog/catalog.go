package catalog

import (
	"encoding/binary"
	"math"
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey                                     => CatalogState

	kProblemPrefix, Nv (uint32), p (float64 bits), seed  => ProblemDef
	...

	kRunPrefix, RunID                                    => RunRecord
	...

All integers in keys are big-endian, so problems iterate in ascending (Nv, p, seed) order
and Select can seek directly to a minimum vertex count.

***/

const (
	kProblemPrefix = byte(0x01)
	kRunPrefix     = byte(0x02)

	kMajorVers = 2024
	kMinorVers = 1

	problemKeyLen = 1 + 4 + 8 + 4
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// catalog is a badger db of MIS problem instances and readout runs
type catalog struct {
	ctx        goqubo.CatalogContext
	readOnly   bool
	mu         sync.Mutex
	stateDirty bool
	state      goqubo.CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) the catalog at opts.DbPathName, or an in-memory catalog if no path is given.
func OpenCatalog(ctx goqubo.CatalogContext, opts goqubo.CatalogOpts) (goqubo.Catalog, error) {
	if opts.WDiag == 0 {
		opts.WDiag = 1
	}
	if opts.WOff == 0 {
		opts.WOff = 4
	}
	if !(opts.WDiag > 0) || !(opts.WOff > 0) {
		return nil, errors.Wrapf(goqubo.ErrBadCatalogParam, "QUBO weights must be > 0 (got %v, %v)", opts.WDiag, opts.WOff)
	}

	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(goqubo.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %q", opts.DbPathName)
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	if ctx != nil {
		ctx.AttachCatalog(cat)
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
		cat.state.WDiag = opts.WDiag
		cat.state.WOff = opts.WOff
	}

	if err == nil {
		if cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers {
			err = errors.Wrapf(goqubo.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
		} else if cat.state.WDiag != opts.WDiag || cat.state.WOff != opts.WOff {
			err = errors.Wrapf(goqubo.ErrBadCatalogParam, "catalog was created with QUBO weights %v, %v", cat.state.WDiag, cat.state.WOff)
		}
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("catalog %q opened: %d problems, %d runs", opts.DbPathName, cat.state.NumProblems, cat.state.NumRuns)
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := proto.Unmarshal(val, &cat.state); err != nil {
				return errors.Wrap(goqubo.ErrUnmarshal, err.Error())
			}
			return nil
		})
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty || cat.db == nil {
		return nil
	}
	stateBuf, err := proto.Marshal(&cat.state)
	if err != nil {
		return err
	}
	err = cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err != nil {
		return errors.Wrap(err, "flushing catalog state")
	}
	cat.stateDirty = false
	return nil
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}
	err := cat.flushState()
	if closeErr := cat.db.Close(); err == nil {
		err = closeErr
	}
	cat.db = nil
	if cat.ctx != nil {
		cat.ctx.DetachCatalog(cat)
		cat.ctx = nil
	}
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumProblems() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumProblems)
}

func (cat *catalog) NumRuns() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumRuns)
}

// appendProblemKey appends the db key of the problem with the given generating parameters.
func appendProblemKey(key []byte, spec goqubo.ProblemSpec) []byte {
	key = append(key, kProblemPrefix)
	key = binary.BigEndian.AppendUint32(key, uint32(spec.NumVertices))
	key = binary.BigEndian.AppendUint64(key, math.Float64bits(spec.ConnectionProb))
	key = binary.BigEndian.AppendUint32(key, spec.Seed)
	return key
}

func appendRunKey(key []byte, runID string) []byte {
	key = append(key, kRunPrefix)
	key = append(key, runID...)
	return key
}

// TryAddProblem adds p along with its exact MIS and optimal QUBO cost, returning false if p is already catalogued.
func (cat *catalog) TryAddProblem(p goqubo.Problem) bool {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil || cat.readOnly {
		return false
	}

	var keyBuf [problemKeyLen]byte
	key := appendProblemKey(keyBuf[:0], p.Spec())

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false
	}
	if err != badger.ErrKeyNotFound {
		panic(err)
	}

	def, err := cat.formProblemDef(p)
	if err != nil {
		klog.Warningf("catalog: skipping problem %+v: %v", p.Spec(), err)
		return false
	}
	val, err := proto.Marshal(def)
	if err == nil {
		err = txn.Set(key, val)
	}
	if err == nil {
		err = txn.Commit()
	}
	if err != nil {
		panic(err)
	}

	cat.state.NumProblems++
	cat.stateDirty = true
	return true
}

func (cat *catalog) formProblemDef(p goqubo.Problem) (*goqubo.ProblemDef, error) {
	spec := p.Spec()
	mis := p.FindMaximumIndependentSet()

	Q, err := p.QUBO(cat.state.WDiag, cat.state.WOff)
	if err != nil {
		return nil, err
	}
	optimal, err := Q.EvaluateCost(mis)
	if err != nil {
		return nil, err
	}

	def := &goqubo.ProblemDef{
		NumVertices:    int32(spec.NumVertices),
		ConnectionProb: spec.ConnectionProb,
		Seed:           spec.Seed,
		EdgeEnds:       p.AppendEdgeEnds(nil),
		OptimalCost:    optimal,
	}
	for _, vi := range mis.Selected() {
		def.MIS = append(def.MIS, uint32(vi))
	}
	return def, nil
}

func (cat *catalog) GetProblem(spec goqubo.ProblemSpec) (*goqubo.ProblemDef, error) {
	var keyBuf [problemKeyLen]byte
	key := appendProblemKey(keyBuf[:0], spec)

	def := &goqubo.ProblemDef{}
	err := cat.getValue(key, def)
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(goqubo.ErrProblemNotFound, "%+v", spec)
	}
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (cat *catalog) PutRun(rec *goqubo.RunRecord) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return goqubo.ErrCatalogClosed
	}
	if cat.readOnly {
		return goqubo.ErrCatalogReadOnly
	}

	val, err := proto.Marshal(rec)
	if err != nil {
		return err
	}
	key := appendRunKey(nil, rec.RunID)

	added := false
	err = cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			added = true
		} else if err != nil {
			return err
		}
		return txn.Set(key, val)
	})
	if err != nil {
		return errors.Wrapf(err, "storing run %q", rec.RunID)
	}
	if added {
		cat.state.NumRuns++
		cat.stateDirty = true
	}
	return nil
}

func (cat *catalog) GetRun(runID string) (*goqubo.RunRecord, error) {
	rec := &goqubo.RunRecord{}
	err := cat.getValue(appendRunKey(nil, runID), rec)
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(goqubo.ErrRunNotFound, "%q", runID)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (cat *catalog) getValue(key []byte, msg proto.Message) error {
	cat.mu.Lock()
	db := cat.db
	cat.mu.Unlock()
	if db == nil {
		return goqubo.ErrCatalogClosed
	}

	return db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := proto.Unmarshal(val, msg); err != nil {
				return errors.Wrap(goqubo.ErrUnmarshal, err.Error())
			}
			return nil
		})
	})
}

// Select sends each catalogued problem meeting sel to onHit, in ascending (Nv, p, seed) order.
func (cat *catalog) Select(sel goqubo.ProblemSelector, onHit goqubo.OnProblemHit) {
	cat.mu.Lock()
	db := cat.db
	cat.mu.Unlock()
	if db == nil {
		return
	}

	txn := db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         []byte{kProblemPrefix},
	})
	defer it.Close()

	var minKey [5]byte
	minKey[0] = kProblemPrefix
	if sel.MinVertices > 0 {
		binary.BigEndian.PutUint32(minKey[1:], uint32(sel.MinVertices))
	}

	for it.Seek(minKey[:]); it.Valid(); it.Next() {
		item := it.Item()
		key := item.Key()
		if len(key) != problemKeyLen {
			panic("what is this entry?")
		}

		// Stop when the vtx count is over the max
		if sel.MaxVertices > 0 && binary.BigEndian.Uint32(key[1:]) > uint32(sel.MaxVertices) {
			break
		}

		def := &goqubo.ProblemDef{}
		err := item.Value(func(val []byte) error {
			return proto.Unmarshal(val, def)
		})
		if err != nil {
			panic(err)
		}
		if sel.SelectsDef(def) {
			onHit <- def
		}
	}
}
