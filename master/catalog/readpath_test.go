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
	"testing"

	cerrors "github.com/dingodb/coordinator-metacatalog/errors"
	"github.com/dingodb/coordinator-metacatalog/proto"
	"github.com/stretchr/testify/require"
)

func TestGetSchemasOnlyAcceptsRoot(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	_, err := cat.GetSchemas(context.Background(), proto.MetaSchemaID)
	require.Equal(t, cerrors.ErrIllegalParameters, err)
}

func TestGetTablesSkipsDanglingIDs(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	tableID, err := cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	// simulate a dangling reference: a schema entry pointing at a table id
	// the store no longer has, which a real cluster could hit transiently
	// between a drop's apply and a stale read.
	schema, ok := cat.store.schemas.Get(schemaID)
	require.True(t, ok)
	stale := schema.Clone()
	stale.TableIDs = append(stale.TableIDs, 999999)
	cat.store.schemas.Put(schemaID, stale)

	tables, err := cat.GetTables(ctx, schemaID)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, tableID, tables[0].ID)
}

func TestGetTablesCount(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	count, err := cat.GetTablesCount(ctx, schemaID)
	require.NoError(t, err)
	require.Zero(t, count)

	_, err = cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	count, err = cat.GetTablesCount(ctx, schemaID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestGetTableRangeAssemblesLeaderVotersLearners(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	tableID, err := cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	table, err := cat.GetTable(ctx, tableID)
	require.NoError(t, err)
	regionID := table.Partitions[0].RegionID

	cat.store.regions.Put(regionID, &proto.Region{
		ID:            regionID,
		LeaderStoreID: 1,
		Definition: proto.RegionDefinition{
			Range: rng("a", "z"),
			Peers: []proto.Peer{
				{StoreID: 1, Role: proto.PeerRoleVoter, ServerLocation: "10.0.0.1:9000"},
				{StoreID: 2, Role: proto.PeerRoleVoter, ServerLocation: "10.0.0.2:9000"},
				{StoreID: 3, Role: proto.PeerRoleLearner, ServerLocation: "10.0.0.3:9000"},
			},
		},
	})

	dist, err := cat.GetTableRange(ctx, tableID)
	require.NoError(t, err)
	require.Len(t, dist, 1)
	require.Equal(t, "10.0.0.1:9000", dist[0].Leader)
	require.ElementsMatch(t, []string{"10.0.0.1:9000", "10.0.0.2:9000"}, dist[0].Voters)
	require.Equal(t, []string{"10.0.0.3:9000"}, dist[0].Learners)
}

func TestGetTableRangeSkipsMissingRegion(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	tableID, err := cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	table, err := cat.GetTable(ctx, tableID)
	require.NoError(t, err)
	cat.store.regions.Erase(table.Partitions[0].RegionID)

	dist, err := cat.GetTableRange(ctx, tableID)
	require.NoError(t, err)
	require.Empty(t, dist)
}
