// Copyright 2022 The CubeFS Authors.
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

package catalog

import (
	"context"
	"sync"

	"github.com/cubefs/cubefs/blobstore/common/trace"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// allocator is the Id/Epoch Allocator (C1): a mutex-serialized table of
// monotonic counters, one per proto.IdEpochType. Adapted from
// master/idgenerator: the teacher proposes one raft op per Alloc call,
// but here Next just previews the bumped value and appends it to the
// caller's in-flight MetaIncrement — the actual commit/persist happens
// once, atomically with the rest of the increment, when LogApplier.Apply
// processes the id_epochs section (Apply in applier.go, via commit below).
type allocator struct {
	lock     sync.Mutex
	counters map[proto.IdEpochType]uint64
	storage  *idStorage // nil if persistence isn't configured
}

func newAllocator(ctx context.Context, storage *idStorage) (*allocator, error) {
	a := &allocator{counters: make(map[proto.IdEpochType]uint64), storage: storage}
	if storage != nil {
		loaded, err := storage.Load(ctx)
		if err != nil {
			return nil, err
		}
		a.counters = loaded
	}
	// reserved schema ids are never handed out: the first user schema gets
	// ReservedSchemaIDMax+1.
	if a.counters[proto.IdNextSchema] < proto.ReservedSchemaIDMax {
		a.counters[proto.IdNextSchema] = proto.ReservedSchemaIDMax
	}
	return a, nil
}

// Next previews the next value for kind and records the bump into
// increment's id_epochs section. The in-memory counter advances
// immediately so concurrent builder calls on this leader never preview
// the same value twice, even before the increment commits; a proposal
// that is ultimately rejected by consensus simply burns that id/epoch
// value, which is safe because ids and epochs are never reused.
func (a *allocator) Next(kind proto.IdEpochType, increment *proto.MetaIncrement) uint64 {
	a.lock.Lock()
	next := a.counters[kind] + 1
	a.counters[kind] = next
	a.lock.Unlock()

	increment.AddIdEpoch(proto.OpUpdate, proto.IdEpoch{Type: kind, Value: next})
	return next
}

// Present returns the allocator's current value for kind without
// advancing it — used for non-authoritative snapshot reads like the
// regionmap_epoch/storemap_epoch fields of a RangeDistribution.
func (a *allocator) Present(kind proto.IdEpochType) uint64 {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.counters[kind]
}

// commit is called from the apply path once an id_epochs change has
// actually been committed by the replicated log. It keeps the in-memory
// value at least as large as the committed one (a follower that never
// called Next still needs to track the leader's allocations) and persists
// it so a restart doesn't need a full log replay to recover.
func (a *allocator) commit(ctx context.Context, c proto.IdEpoch) error {
	span := trace.SpanFromContextSafe(ctx)

	a.lock.Lock()
	if c.Value > a.counters[c.Type] {
		a.counters[c.Type] = c.Value
	}
	value := a.counters[c.Type]
	a.lock.Unlock()

	if a.storage == nil {
		return nil
	}
	if err := a.storage.Put(ctx, c.Type, value); err != nil {
		span.Errorf("persist id/epoch failed, kind %s, err: %v", c.Type, err)
		return err
	}
	return nil
}
