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

const defaultReplica = 3

// CreateTableId pre-allocates a table id without creating the table,
// mirroring CreateTableId in coordinator_control_meta.cc — some callers
// want the id ahead of a full CreateTable call (e.g. to embed it in the
// definition they're about to submit).
func (c *Catalog) CreateTableId(ctx context.Context, schemaID uint64) (uint64, error) {
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

// CreateTable is grounded on CreateTable in
// coordinator_control_meta.cc, including its ordering: validate, check
// name, allocate or trust the caller-supplied id (see DESIGN.md Open
// Question 2), synchronously register the auto-increment column if any,
// reserve the name, create one region per declared range, and — if not
// every region could be created — roll back every region that was and
// release the name reservation.
func (c *Catalog) CreateTable(ctx context.Context, schemaID uint64, def proto.TableDefinition, optNewTableID uint64) (uint64, error) {
	span := trace.SpanFromContextSafe(ctx)

	if schemaID == proto.RootSchemaID || !c.store.schemas.Exists(schemaID) {
		return 0, cerrors.ErrIllegalParameters
	}
	if err := validateTableDefinition(&def); err != nil {
		return 0, err
	}
	if c.names.tableExists(schemaID, def.Name) {
		return 0, cerrors.ErrTableExists
	}

	increment := &proto.MetaIncrement{}
	newID := optNewTableID
	if newID == proto.AutoAssignID {
		newID = c.alloc.Next(proto.IdNextTable, increment)
	}

	if def.HasAutoIncrementColumn() {
		if err := c.autoIncrSvc.SyncCreate(ctx, newID); err != nil {
			span.Errorf("sync create auto-increment for table %d failed: %v", newID, err)
			return 0, cerrors.ErrAutoIncrementWhileCreatingTable
		}
	}

	if !c.names.reserveTable(schemaID, def.Name, newID) {
		return 0, cerrors.ErrTableExists
	}

	replica := def.Replica
	if replica < 1 {
		replica = defaultReplica
	}

	ranges := def.Partition.RangePartition.Ranges
	createdRegions := make([]uint64, 0, len(ranges))
	var createErr error
	for i, rng := range ranges {
		name := fmt.Sprintf("T_%d_%s_part_%d", schemaID, def.Name, i)
		regionID, err := c.regionSvc.CreateRegion(ctx, name, proto.RegionTypeStore, rng, schemaID, newID, nil, replica)
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
		c.names.releaseTable(schemaID, def.Name)
		span.Errorf("create table %q regions failed: %v", def.Name, createErr)
		if compensationFailed {
			return 0, cerrors.ErrInternal
		}
		return 0, cerrors.ErrTableRegionCreateFailed
	}

	c.alloc.Next(proto.EpochRegion, increment)
	partitions := make([]proto.Partition, len(createdRegions))
	for i, regionID := range createdRegions {
		partitions[i] = proto.Partition{RegionID: regionID}
	}

	c.alloc.Next(proto.EpochTable, increment)
	table := proto.Table{ID: newID, SchemaID: schemaID, Definition: def, Partitions: partitions}
	increment.AddTable(proto.OpCreate, newID, schemaID, table)

	if err := c.log.Submit(ctx, increment); err != nil {
		c.names.releaseTable(schemaID, def.Name)
		return 0, err
	}
	return newID, nil
}

// DropTable is grounded on DropTable in coordinator_control_meta.cc:
// region drop failures are logged, not surfaced — the table definition is
// removed from the catalog regardless, since a region that refuses to
// drop is the region allocator's problem to retry, not a reason to keep a
// dangling table visible. EPOCH_TABLE bumps on drop too (DESIGN.md Open
// Question 3).
func (c *Catalog) DropTable(ctx context.Context, schemaID, tableID uint64) error {
	span := trace.SpanFromContextSafe(ctx)

	if !c.store.schemas.Exists(schemaID) {
		return cerrors.ErrSchemaNotFound
	}
	table, ok := c.store.tables.Get(tableID)
	if !ok {
		return cerrors.ErrTableNotFound
	}

	for _, p := range table.Partitions {
		if err := c.regionSvc.DropRegion(ctx, p.RegionID); err != nil {
			span.Warnf("drop region %d for table %d failed: %v", p.RegionID, tableID, err)
		}
	}

	increment := &proto.MetaIncrement{}
	c.alloc.Next(proto.EpochTable, increment)
	increment.AddTable(proto.OpDelete, tableID, schemaID, *table.Clone())

	if err := c.log.Submit(ctx, increment); err != nil {
		return err
	}

	if table.Definition.HasAutoIncrementColumn() {
		c.autoIncrSvc.AsyncDelete(ctx, tableID)
	}
	return nil
}
