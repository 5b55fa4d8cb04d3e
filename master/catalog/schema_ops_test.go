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

func TestCreateSchemaBootstrapsReservedSchemas(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())

	schemas, err := cat.GetSchemas(context.Background(), proto.RootSchemaID)
	require.NoError(t, err)
	require.Len(t, schemas, 5)
}

func TestCreateSchemaRejectsNonRootParent(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())

	_, err := cat.CreateSchema(context.Background(), proto.MetaSchemaID, "orders")
	require.Equal(t, cerrors.ErrIllegalParameters, err)
}

func TestCreateSchemaDuplicateNameRejected(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()

	id, err := cat.CreateSchema(ctx, proto.RootSchemaID, "orders")
	require.NoError(t, err)
	require.NotZero(t, id)

	_, err = cat.CreateSchema(ctx, proto.RootSchemaID, "orders")
	require.Equal(t, cerrors.ErrSchemaExists, err)
}

func TestGetSchemaByName(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()

	id, err := cat.CreateSchema(ctx, proto.RootSchemaID, "orders")
	require.NoError(t, err)

	s, err := cat.GetSchemaByName(ctx, "orders")
	require.NoError(t, err)
	require.Equal(t, id, s.ID)
}

func TestDropSchemaRejectsReserved(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	err := cat.DropSchema(context.Background(), proto.RootSchemaID, proto.MetaSchemaID)
	require.Equal(t, cerrors.ErrIllegalParameters, err)
}

func TestDropSchemaRejectsNonEmpty(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()

	schemaID, err := cat.CreateSchema(ctx, proto.RootSchemaID, "orders")
	require.NoError(t, err)

	_, err = cat.CreateTable(ctx, schemaID, proto.TableDefinition{
		Name:      "widgets",
		Partition: rangePartition(rng("a", "z")),
	}, proto.AutoAssignID)
	require.NoError(t, err)

	err = cat.DropSchema(ctx, proto.RootSchemaID, schemaID)
	require.Equal(t, cerrors.ErrSchemaNotEmpty, err)
}

func TestDropSchemaSucceedsWhenEmpty(t *testing.T) {
	cat := newTestCatalog(t, newFakeRegionService(), newFakeAutoIncrementService())
	ctx := context.Background()

	schemaID, err := cat.CreateSchema(ctx, proto.RootSchemaID, "orders")
	require.NoError(t, err)

	require.NoError(t, cat.DropSchema(ctx, proto.RootSchemaID, schemaID))

	_, err = cat.GetSchema(ctx, schemaID)
	require.Equal(t, cerrors.ErrSchemaNotFound, err)
}
