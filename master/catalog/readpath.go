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
	cerrors "github.com/dingodb/coordinator-metacatalog/errors"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// GetSchemas only accepts ROOT, per GetSchemas in
// coordinator_control_meta.cc — it is the single entry point for
// discovering every schema in the cluster.
func (c *Catalog) GetSchemas(ctx context.Context, schemaID uint64) ([]*proto.Schema, error) {
	if schemaID != proto.RootSchemaID {
		return nil, cerrors.ErrIllegalParameters
	}
	list := c.store.schemas.List()
	out := make([]*proto.Schema, 0, len(list))
	for _, s := range list {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (c *Catalog) GetSchema(ctx context.Context, schemaID uint64) (*proto.Schema, error) {
	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return nil, cerrors.ErrSchemaNotFound
	}
	return s.Clone(), nil
}

func (c *Catalog) GetSchemaByName(ctx context.Context, name string) (*proto.Schema, error) {
	id, ok := c.names.schemaNames.Get(name)
	if !ok {
		return nil, cerrors.ErrSchemaNotFound
	}
	return c.GetSchema(ctx, id)
}

func (c *Catalog) GetTable(ctx context.Context, tableID uint64) (*proto.Table, error) {
	t, ok := c.store.tables.Get(tableID)
	if !ok {
		return nil, cerrors.ErrTableNotFound
	}
	return t.Clone(), nil
}

func (c *Catalog) GetTableByName(ctx context.Context, schemaID uint64, name string) (*proto.Table, error) {
	id, ok := c.names.tableID(schemaID, name)
	if !ok {
		return nil, cerrors.ErrTableNotFound
	}
	return c.GetTable(ctx, id)
}

// GetTables resolves every TableIDs entry of schemaID through the table
// store, skipping (not failing on) any id that isn't present — grounded
// on the "continue, logged" behavior of GetTables in
// coordinator_control_meta.cc, which treats a dangling id as stale
// rather than as corruption.
func (c *Catalog) GetTables(ctx context.Context, schemaID uint64) ([]*proto.Table, error) {
	span := trace.SpanFromContextSafe(ctx)

	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return nil, cerrors.ErrSchemaNotFound
	}

	tables := make([]*proto.Table, 0, len(s.TableIDs))
	for _, id := range s.TableIDs {
		t, ok := c.store.tables.Get(id)
		if !ok {
			span.Warnf("schema %d references missing table %d", schemaID, id)
			continue
		}
		tables = append(tables, t.Clone())
	}
	return tables, nil
}

func (c *Catalog) GetTablesCount(ctx context.Context, schemaID uint64) (int, error) {
	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return 0, cerrors.ErrSchemaNotFound
	}
	return len(s.TableIDs), nil
}

func (c *Catalog) GetIndex(ctx context.Context, indexID uint64) (*proto.Index, error) {
	idx, ok := c.store.indexes.Get(indexID)
	if !ok {
		return nil, cerrors.ErrIndexNotFound
	}
	return idx.Clone(), nil
}

func (c *Catalog) GetIndexByName(ctx context.Context, schemaID uint64, name string) (*proto.Index, error) {
	id, ok := c.names.indexID(schemaID, name)
	if !ok {
		return nil, cerrors.ErrIndexNotFound
	}
	return c.GetIndex(ctx, id)
}

func (c *Catalog) GetIndexes(ctx context.Context, schemaID uint64) ([]*proto.Index, error) {
	span := trace.SpanFromContextSafe(ctx)

	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return nil, cerrors.ErrSchemaNotFound
	}

	indexes := make([]*proto.Index, 0, len(s.IndexIDs))
	for _, id := range s.IndexIDs {
		idx, ok := c.store.indexes.Get(id)
		if !ok {
			span.Warnf("schema %d references missing index %d", schemaID, id)
			continue
		}
		indexes = append(indexes, idx.Clone())
	}
	return indexes, nil
}

func (c *Catalog) GetIndexesCount(ctx context.Context, schemaID uint64) (int, error) {
	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return 0, cerrors.ErrSchemaNotFound
	}
	return len(s.IndexIDs), nil
}

// GetTableRange assembles one RangeDistribution per partition, pulling
// the *region's* current range rather than any range cached on the
// partition itself, since a region may have split since the table was
// created — grounded on GetTableRange in coordinator_control_meta.cc.
// A partition whose region is missing is skipped, not failed.
func (c *Catalog) GetTableRange(ctx context.Context, tableID uint64) ([]proto.RangeDistribution, error) {
	t, ok := c.store.tables.Get(tableID)
	if !ok {
		return nil, cerrors.ErrTableNotFound
	}
	return c.assembleRangeDistribution(ctx, tableID, t.Partitions, proto.EntityTypeTable)
}

func (c *Catalog) GetIndexRange(ctx context.Context, indexID uint64) ([]proto.RangeDistribution, error) {
	idx, ok := c.store.indexes.Get(indexID)
	if !ok {
		return nil, cerrors.ErrIndexNotFound
	}
	return c.assembleRangeDistribution(ctx, indexID, idx.Partitions, proto.EntityTypeIndex)
}

func (c *Catalog) assembleRangeDistribution(ctx context.Context, ownerID uint64, partitions []proto.Partition, ownerType proto.EntityType) ([]proto.RangeDistribution, error) {
	span := trace.SpanFromContextSafe(ctx)

	regionMapEpoch := c.alloc.Present(proto.EpochRegion)
	storeMapEpoch := c.alloc.Present(proto.EpochStore)

	out := make([]proto.RangeDistribution, 0, len(partitions))
	for _, p := range partitions {
		region, ok := c.store.regions.Get(p.RegionID)
		if !ok {
			span.Warnf("owner %d references missing region %d", ownerID, p.RegionID)
			continue
		}

		var leader string
		var voters, learners []string
		for _, peer := range region.Definition.Peers {
			if peer.StoreID == region.LeaderStoreID {
				leader = peer.ServerLocation
			}
			switch peer.Role {
			case proto.PeerRoleVoter:
				voters = append(voters, peer.ServerLocation)
			case proto.PeerRoleLearner:
				learners = append(learners, peer.ServerLocation)
			}
		}

		out = append(out, proto.RangeDistribution{
			ID: proto.CommonID{
				EntityType:     proto.EntityTypePart,
				ParentEntityID: ownerID,
				EntityID:       p.RegionID,
			},
			Range:          region.Definition.Range,
			Leader:         leader,
			Voters:         voters,
			Learners:       learners,
			RegionMapEpoch: regionMapEpoch,
			StoreMapEpoch:  storeMapEpoch,
		})
	}
	return out, nil
}
