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

package catalog

import (
	"context"

	"github.com/cubefs/cubefs/blobstore/common/trace"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// Apply mutates this node's Catalog Store from a committed MetaIncrement.
// It is the only path that writes schemas, tables, indexes and regions to
// the store — the Meta-Increment Builder (schema_ops.go/table_ops.go/
// index_ops.go) only reads the store, and reserves/releases names in the
// Name Index, while constructing an increment; every entity write, on the
// leader that proposed it and every follower alike, happens here (the
// metrics caches are filled by GetTableMetrics/GetIndexMetrics and the
// sweep). Apply
// order is fixed (id_epochs, regions, schemas, tables, indexes) because
// later sections may reference ids the earlier ones allocated.
func (c *Catalog) Apply(ctx context.Context, increment *proto.MetaIncrement) error {
	span := trace.SpanFromContextSafe(ctx)

	for _, ch := range increment.IdEpochs {
		if err := c.alloc.commit(ctx, ch.Payload); err != nil {
			return err
		}
	}

	for _, ch := range increment.Regions {
		c.applyRegion(ch)
	}

	for _, ch := range increment.Schemas {
		c.applySchema(ch)
	}

	for _, ch := range increment.Tables {
		c.applyTable(ch)
	}

	for _, ch := range increment.Indexes {
		c.applyIndex(ch)
	}

	span.Debugf("applied increment: id_epochs=%d regions=%d schemas=%d tables=%d indexes=%d",
		len(increment.IdEpochs), len(increment.Regions), len(increment.Schemas), len(increment.Tables), len(increment.Indexes))
	return nil
}

func (c *Catalog) applyRegion(ch proto.Change[proto.Region]) {
	switch ch.Op {
	case proto.OpCreate:
		region := ch.Payload
		c.store.regions.Put(ch.ID, &region)
	case proto.OpUpdate:
		region := ch.Payload
		c.store.regions.PutIfExists(ch.ID, &region)
	case proto.OpDelete:
		c.store.regions.Erase(ch.ID)
	}
}

func (c *Catalog) applySchema(ch proto.Change[proto.Schema]) {
	switch ch.Op {
	case proto.OpCreate:
		s := ch.Payload
		c.store.schemas.Put(ch.ID, &s)
		c.names.schemaNames.Put(s.Name, s.ID)
	case proto.OpUpdate:
		s := ch.Payload
		if c.store.schemas.PutIfExists(ch.ID, &s) {
			c.names.schemaNames.Put(s.Name, s.ID)
		}
	case proto.OpDelete:
		if s, ok := c.store.schemas.Get(ch.ID); ok {
			c.names.releaseSchema(s.Name)
		}
		c.store.schemas.Erase(ch.ID)
	}
}

func (c *Catalog) applyTable(ch proto.Change[proto.Table]) {
	switch ch.Op {
	case proto.OpCreate:
		t := ch.Payload
		c.store.tables.Put(ch.ID, &t)
		c.names.tableNames.Put(scopedKey(t.SchemaID, t.Definition.Name), t.ID)
		c.linkChildToSchema(t.SchemaID, ch.ID, true)
	case proto.OpUpdate:
		t := ch.Payload
		if c.store.tables.PutIfExists(ch.ID, &t) {
			c.names.tableNames.Put(scopedKey(t.SchemaID, t.Definition.Name), t.ID)
		}
	case proto.OpDelete:
		if t, ok := c.store.tables.Get(ch.ID); ok {
			c.names.releaseTable(t.SchemaID, t.Definition.Name)
			c.unlinkChildFromSchema(t.SchemaID, ch.ID, true)
		}
		c.store.tables.Erase(ch.ID)
		c.store.tableMetrics.Erase(ch.ID)
		c.metrics.deleteTable(ch.ID)
	}
}

func (c *Catalog) applyIndex(ch proto.Change[proto.Index]) {
	switch ch.Op {
	case proto.OpCreate:
		idx := ch.Payload
		c.store.indexes.Put(ch.ID, &idx)
		c.names.indexNames.Put(scopedKey(idx.SchemaID, idx.Definition.Name), idx.ID)
		c.linkChildToSchema(idx.SchemaID, ch.ID, false)
	case proto.OpUpdate:
		idx := ch.Payload
		if c.store.indexes.PutIfExists(ch.ID, &idx) {
			c.names.indexNames.Put(scopedKey(idx.SchemaID, idx.Definition.Name), idx.ID)
		}
	case proto.OpDelete:
		if idx, ok := c.store.indexes.Get(ch.ID); ok {
			c.names.releaseIndex(idx.SchemaID, idx.Definition.Name)
			c.unlinkChildFromSchema(idx.SchemaID, ch.ID, false)
		}
		c.store.indexes.Erase(ch.ID)
		c.store.indexMetrics.Erase(ch.ID)
		c.metrics.deleteIndex(ch.ID)
	}
}

// linkChildToSchema appends id to the owning schema's TableIDs/IndexIDs,
// preserving creation order per the ordered-set invariant (I2/I3).
func (c *Catalog) linkChildToSchema(schemaID, id uint64, isTable bool) {
	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return
	}
	clone := s.Clone()
	if isTable {
		clone.TableIDs = append(clone.TableIDs, id)
	} else {
		clone.IndexIDs = append(clone.IndexIDs, id)
	}
	c.store.schemas.Put(schemaID, clone)
}

func (c *Catalog) unlinkChildFromSchema(schemaID, id uint64, isTable bool) {
	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return
	}
	clone := s.Clone()
	if isTable {
		clone.TableIDs = removeID(clone.TableIDs, id)
	} else {
		clone.IndexIDs = removeID(clone.IndexIDs, id)
	}
	c.store.schemas.Put(schemaID, clone)
}

func removeID(ids []uint64, id uint64) []uint64 {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// LeaderChange rebuilds the leader-local Name Index from the authoritative
// Catalog Store and starts or stops the periodic metrics sweep, mirroring
// master/catalog/catalog_sm.go's task-manager start/stop on leadership
// transitions.
func (c *Catalog) LeaderChange(leader uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.names.rebuildFromStore(c.store)

	becameLeader := leader == c.cfg.SelfNodeID && leader != 0
	if becameLeader && !c.isLeader {
		c.isLeader = true
		c.startSweep()
	} else if !becameLeader && c.isLeader {
		c.isLeader = false
		c.stopSweep()
	}
	return nil
}
