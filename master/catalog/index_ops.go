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
	"fmt"

	"github.com/cubefs/cubefs/blobstore/common/trace"
	cerrors "github.com/dingodb/coordinator-metacatalog/errors"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// CreateIndexId mirrors CreateTableId: indexes share the ID_NEXT_TABLE
// id-space with tables (the original comments out a dedicated
// ID_NEXT_INDEX allocation, confirming this is deliberate, not an
// oversight).
func (c *Catalog) CreateIndexId(ctx context.Context, schemaID uint64) (uint64, error) {
	if !c.store.schemas.Exists(schemaID) {
		return 0, cerrors.ErrSchemaNotFound
	}
	increment := &proto.MetaIncrement{}
	id := c.alloc.Next(proto.IdNextTable, increment)
	if err := c.log.Submit(ctx, increment); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateIndex is isomorphic to CreateTable, grounded on CreateIndex in
// coordinator_control_meta.cc: own name namespace (DESIGN.md Open
// Question 1), same id-space as table ids, own region-type/name prefix.
func (c *Catalog) CreateIndex(ctx context.Context, schemaID uint64, def proto.IndexDefinition, optNewIndexID uint64) (uint64, error) {
	span := trace.SpanFromContextSafe(ctx)

	if schemaID == proto.RootSchemaID || !c.store.schemas.Exists(schemaID) {
		return 0, cerrors.ErrIllegalParameters
	}
	if err := validateIndexDefinition(&def); err != nil {
		return 0, err
	}
	if c.names.indexExists(schemaID, def.Name) {
		return 0, cerrors.ErrIndexExists
	}

	increment := &proto.MetaIncrement{}
	newID := optNewIndexID
	if newID == proto.AutoAssignID {
		newID = c.alloc.Next(proto.IdNextTable, increment)
	}

	if def.WithAutoIncrement {
		if err := c.autoIncrSvc.SyncCreate(ctx, newID); err != nil {
			span.Errorf("sync create auto-increment for index %d failed: %v", newID, err)
			return 0, cerrors.ErrAutoIncrementWhileCreatingTable
		}
	}

	if !c.names.reserveIndex(schemaID, def.Name, newID) {
		return 0, cerrors.ErrIndexExists
	}

	replica := def.Replica
	if replica < 1 {
		replica = defaultReplica
	}

	ranges := def.Partition.RangePartition.Ranges
	createdRegions := make([]uint64, 0, len(ranges))
	var createErr error
	for i, rng := range ranges {
		name := fmt.Sprintf("I_%d_%s_part_%d", schemaID, def.Name, i)
		regionID, err := c.regionSvc.CreateRegion(ctx, name, proto.RegionTypeIndex, rng, schemaID, newID, &def.IndexParameter, replica)
		if err != nil {
			createErr = err
			break
		}
		createdRegions = append(createdRegions, regionID)
	}

	if len(createdRegions) < len(ranges) {
		compensationFailed := false
		for _, regionID := range createdRegions {
			if err := c.regionSvc.DropRegion(ctx, regionID); err != nil {
				span.Errorf("compensating drop of region %d failed: %v", regionID, err)
				compensationFailed = true
			}
		}
		c.names.releaseIndex(schemaID, def.Name)
		span.Errorf("create index %q regions failed: %v", def.Name, createErr)
		if compensationFailed {
			return 0, cerrors.ErrInternal
		}
		return 0, cerrors.ErrIndexRegionCreateFailed
	}

	c.alloc.Next(proto.EpochRegion, increment)
	partitions := make([]proto.Partition, len(createdRegions))
	for i, regionID := range createdRegions {
		partitions[i] = proto.Partition{RegionID: regionID}
	}

	c.alloc.Next(proto.EpochIndex, increment)
	idx := proto.Index{ID: newID, SchemaID: schemaID, Definition: def, Partitions: partitions}
	increment.AddIndex(proto.OpCreate, newID, schemaID, idx)

	if err := c.log.Submit(ctx, increment); err != nil {
		c.names.releaseIndex(schemaID, def.Name)
		return 0, err
	}
	return newID, nil
}

// DropIndex mirrors DropTable.
func (c *Catalog) DropIndex(ctx context.Context, schemaID, indexID uint64) error {
	span := trace.SpanFromContextSafe(ctx)

	if !c.store.schemas.Exists(schemaID) {
		return cerrors.ErrSchemaNotFound
	}
	idx, ok := c.store.indexes.Get(indexID)
	if !ok {
		return cerrors.ErrIndexNotFound
	}

	for _, p := range idx.Partitions {
		if err := c.regionSvc.DropRegion(ctx, p.RegionID); err != nil {
			span.Warnf("drop region %d for index %d failed: %v", p.RegionID, indexID, err)
		}
	}

	increment := &proto.MetaIncrement{}
	c.alloc.Next(proto.EpochIndex, increment)
	increment.AddIndex(proto.OpDelete, indexID, schemaID, *idx.Clone())

	if err := c.log.Submit(ctx, increment); err != nil {
		return err
	}

	if idx.Definition.WithAutoIncrement {
		c.autoIncrSvc.AsyncDelete(ctx, indexID)
	}
	return nil
}
