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

	"github.com/dingodb/coordinator-metacatalog/proto"
	"github.com/stretchr/testify/require"
)

func TestApplyTableUpdateOnKnownTableOverwrites(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	tableID, err := cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	updated := proto.TableDefinition{Name: "widgets", Replica: 5, Partition: rangePartition(rng("a", "z"))}
	increment := &proto.MetaIncrement{}
	increment.AddTable(proto.OpUpdate, tableID, schemaID, proto.Table{ID: tableID, SchemaID: schemaID, Definition: updated})
	require.NoError(t, cat.Apply(ctx, increment))

	table, err := cat.GetTable(ctx, tableID)
	require.NoError(t, err)
	require.Equal(t, 5, table.Definition.Replica)
}

func TestApplyTableUpdateOnUnknownTableIsANoop(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()
	schemaID := setupSchema(t, cat)

	increment := &proto.MetaIncrement{}
	increment.AddTable(proto.OpUpdate, 99999, schemaID, proto.Table{ID: 99999, SchemaID: schemaID, Definition: proto.TableDefinition{Name: "ghost"}})
	require.NoError(t, cat.Apply(ctx, increment))

	_, err := cat.GetTable(ctx, 99999)
	require.Error(t, err, "an update for an id the store doesn't have must not resurrect it")

	_, err = cat.GetTableByName(ctx, schemaID, "ghost")
	require.Error(t, err, "PutIfExists failing must not register the name either")
}

func TestApplySchemaUpdateOnUnknownSchemaIsANoop(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()

	increment := &proto.MetaIncrement{}
	increment.AddSchema(proto.OpUpdate, 99999, proto.RootSchemaID, proto.Schema{ID: 99999, Name: "ghost"})
	require.NoError(t, cat.Apply(ctx, increment))

	_, err := cat.GetSchema(ctx, 99999)
	require.Error(t, err)
}
