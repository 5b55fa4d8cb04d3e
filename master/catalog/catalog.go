// Copyright 2023 The CubeFS Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package catalog implements the coordinator's meta-catalog core: the
// Id/Epoch Allocator, Catalog Store, Name Index, Definition Validator,
// Meta-Increment Builder, Read-Path Assembler and Metrics Aggregator
// described by the module's design document. It is a library: it owns no
// network listener and executes no query, it only tracks what schemas,
// tables, indexes and regions exist and hands out atomic change-sets for
// a replicated log to commit.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/cubefs/cubefs/blobstore/common/trace"
	"github.com/dingodb/coordinator-metacatalog/common/kvstore"
	"github.com/dingodb/coordinator-metacatalog/proto"
	"golang.org/x/sync/singleflight"
)

// Config wires the catalog to its external collaborators and tuning
// knobs. RegionService and AutoIncrementService are required; ReplicatedLog
// may be left nil for a single-node/test setup, in which case NewCatalog
// installs a loopback log that applies every increment to this node
// synchronously on Submit.
type Config struct {
	// SelfNodeID identifies this node in LeaderChange callbacks; the
	// catalog starts the metrics sweep only when the reported leader
	// equals this id. Writes are not gated on leadership.
	SelfNodeID uint64 `json:"self_node_id"`

	RegionService        RegionService        `json:"-"`
	AutoIncrementService AutoIncrementService `json:"-"`
	ReplicatedLog        ReplicatedLog        `json:"-"`

	// IdEpochStorePath, if non-empty, persists the allocator's counters
	// through a RocksDB-backed kvstore.Store (idstorage.go) so a restart
	// recovers without a full log replay. Left empty, the allocator is
	// purely in-memory.
	IdEpochStorePath string         `json:"id_epoch_store_path"`
	IdEpochStoreOpt  kvstore.Option `json:"id_epoch_store_option"`

	// MetricsSweepInterval is how often the Metrics Aggregator recomputes
	// every cached table/index metric and retires stale entries. Zero
	// disables the periodic sweep (GetTableMetrics/GetIndexMetrics still
	// work, they just always compute on a cache miss).
	MetricsSweepInterval time.Duration `json:"metrics_sweep_interval"`
}

// Catalog is the top-level handle into this core, and the LogApplier the
// replicated log calls back into.
type Catalog struct {
	cfg *Config

	store *catalogStore
	names *nameIndex
	alloc *allocator

	log         ReplicatedLog
	regionSvc   RegionService
	autoIncrSvc AutoIncrementService

	metricsGroup singleflight.Group
	metrics      *catalogMetrics

	lock        sync.RWMutex
	isLeader    bool
	sweepCancel context.CancelFunc
	sweepDone   chan struct{}

	kvStore kvstore.Store
}

// NewCatalog constructs a Catalog and bootstraps the five reserved
// schemas (ROOT/META/DINGO/MYSQL/INFORMATION_SCHEMA) if they are not
// already present (e.g. because this is a fresh node about to catch up
// through Apply instead). It does not start serving as leader: call
// LeaderChange(selfID) once this node is elected.
func NewCatalog(ctx context.Context, cfg *Config) (*Catalog, error) {
	span := trace.SpanFromContextSafe(ctx)

	var kvStore kvstore.Store
	var idStore *idStorage
	if cfg.IdEpochStorePath != "" {
		var err error
		kvStore, err = kvstore.NewKVStore(ctx, cfg.IdEpochStorePath, kvstore.RocksdbLsmKVType, &cfg.IdEpochStoreOpt)
		if err != nil {
			return nil, err
		}
		idStore = newIdStorage(kvStore)
	}

	alloc, err := newAllocator(ctx, idStore)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		cfg:         cfg,
		store:       newCatalogStore(),
		names:       newNameIndex(),
		alloc:       alloc,
		regionSvc:   cfg.RegionService,
		autoIncrSvc: cfg.AutoIncrementService,
		kvStore:     kvStore,
	}
	c.metrics = newCatalogMetrics()

	if cfg.ReplicatedLog != nil {
		c.log = cfg.ReplicatedLog
	} else {
		c.log = &loopbackLog{applier: c}
	}

	c.store.bootstrapReservedSchemas()
	c.names.rebuildFromStore(c.store)

	span.Infof("catalog initialized, persistent id/epoch store: %v", cfg.IdEpochStorePath != "")
	return c, nil
}

// Close stops the metrics sweep goroutine and releases the persistence
// store, if any.
func (c *Catalog) Close() {
	c.stopSweep()
	if c.kvStore != nil {
		c.kvStore.Close()
	}
}

// loopbackLog is the default ReplicatedLog for a single-node deployment
// or a test: Submit applies the increment to this node immediately
// instead of handing it to a real consensus transport. A multi-node
// deployment supplies its own ReplicatedLog (e.g. backed by raft.Group)
// through Config.
type loopbackLog struct {
	applier LogApplier
}

func (l *loopbackLog) Submit(ctx context.Context, increment *proto.MetaIncrement) error {
	return l.applier.Apply(ctx, increment)
}
