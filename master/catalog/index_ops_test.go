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

func vectorIndexDef(name string, ranges ...proto.Range) proto.IndexDefinition {
	return proto.IndexDefinition{
		Name:      name,
		IndexType: proto.IndexTypeVector,
		IndexParameter: proto.IndexParameter{
			VectorIndexParameter: &proto.VectorIndexParameter{
				VectorIndexType: proto.VectorIndexTypeHNSW,
				HNSW:            &proto.HNSWParameter{Dimension: 128, MetricType: proto.MetricTypeL2, Efconstruction: 40, MaxElements: 10000, NLinks: 16},
			},
		},
		Partition: indexRangePartition(ranges...),
	}
}

func TestCreateIndexHappyPath(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	indexID, err := cat.CreateIndex(ctx, schemaID, vectorIndexDef("by_embedding", rng("a", "z")), proto.AutoAssignID)
	require.NoError(t, err)
	require.NotZero(t, indexID)

	idx, err := cat.GetIndex(ctx, indexID)
	require.NoError(t, err)
	require.Equal(t, proto.VectorIndexTypeHNSW, idx.Definition.IndexParameter.VectorIndexParameter.VectorIndexType)

	schema, err := cat.GetSchema(ctx, schemaID)
	require.NoError(t, err)
	require.Equal(t, []uint64{indexID}, schema.IndexIDs)
}

func TestCreateIndexSharesIDSpaceWithTables(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	tableID, err := cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	indexID, err := cat.CreateIndex(ctx, schemaID, vectorIndexDef("by_embedding", rng("a", "z")), proto.AutoAssignID)
	require.NoError(t, err)
	require.NotEqual(t, tableID, indexID, "two distinct allocations from the shared ID_NEXT_TABLE space must differ")
}

func TestCreateIndexAndTableCanShareAName(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	_, err := cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	_, err = cat.CreateIndex(ctx, schemaID, vectorIndexDef("widgets", rng("a", "z")), proto.AutoAssignID)
	require.NoError(t, err, "table names and index names live in separate namespaces")
}

func TestCreateIndexRejectsMissingVectorParameterBlock(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	def := vectorIndexDef("by_embedding", rng("a", "z"))
	def.IndexParameter.VectorIndexParameter.HNSW = nil

	_, err := cat.CreateIndex(ctx, schemaID, def, proto.AutoAssignID)
	require.Equal(t, cerrors.ErrIllegalParameters, err)
}

func TestCreateIndexPartialRegionFailureCompensates(t *testing.T) {
	regionSvc := newFakeRegionService()
	regionSvc.failAfter = 1
	cat := newTestCatalog(t, regionSvc, newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	_, err := cat.CreateIndex(ctx, schemaID, vectorIndexDef("by_embedding", rng("a", "m"), rng("m", "z")), proto.AutoAssignID)
	require.Equal(t, cerrors.ErrIndexRegionCreateFailed, err)
	require.Empty(t, regionSvc.created)

	_, err = cat.GetIndexByName(ctx, schemaID, "by_embedding")
	require.Equal(t, cerrors.ErrIndexNotFound, err)
}

func TestCreateIndexCompensationFailureReturnsInternal(t *testing.T) {
	regionSvc := newFakeRegionService()
	regionSvc.failAfter = 1
	regionSvc.failDrop = true
	cat := newTestCatalog(t, regionSvc, newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	_, err := cat.CreateIndex(ctx, schemaID, vectorIndexDef("by_embedding", rng("a", "m"), rng("m", "z")), proto.AutoAssignID)
	require.Equal(t, cerrors.ErrInternal, err)
}

func TestDropIndexRemovesItFromSchema(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	indexID, err := cat.CreateIndex(ctx, schemaID, vectorIndexDef("by_embedding", rng("a", "z")), proto.AutoAssignID)
	require.NoError(t, err)

	require.NoError(t, cat.DropIndex(ctx, schemaID, indexID))

	_, err = cat.GetIndex(ctx, indexID)
	require.Equal(t, cerrors.ErrIndexNotFound, err)

	schema, err := cat.GetSchema(ctx, schemaID)
	require.NoError(t, err)
	require.Empty(t, schema.IndexIDs)
}
