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

// CreateSchema is grounded on CreateSchema in
// coordinator_control_meta.cc: only ROOT may parent a new schema; the
// name is reserved optimistically (PutIfAbsent) before the increment
// carrying the new id is proposed, so a losing race is rejected with
// ESCHEMA_EXISTS rather than silently overwriting another create.
func (c *Catalog) CreateSchema(ctx context.Context, parentSchemaID uint64, name string) (uint64, error) {
	span := trace.SpanFromContextSafe(ctx)

	if parentSchemaID != proto.RootSchemaID || name == "" {
		return 0, cerrors.ErrIllegalParameters
	}
	if c.names.schemaExists(name) {
		return 0, cerrors.ErrSchemaExists
	}

	increment := &proto.MetaIncrement{}
	newID := c.alloc.Next(proto.IdNextSchema, increment)

	if !c.names.reserveSchema(name, newID) {
		return 0, cerrors.ErrSchemaExists
	}

	c.alloc.Next(proto.EpochSchema, increment)
	increment.AddSchema(proto.OpCreate, newID, parentSchemaID, proto.Schema{ID: newID, Name: name})

	if err := c.log.Submit(ctx, increment); err != nil {
		c.names.releaseSchema(name)
		span.Errorf("create schema %q failed: %v", name, err)
		return 0, err
	}
	return newID, nil
}

// DropSchema is grounded on DropSchema in coordinator_control_meta.cc:
// reserved schemas are indestructible, and a schema with any table or
// index still registered against it cannot be dropped.
func (c *Catalog) DropSchema(ctx context.Context, parentSchemaID, schemaID uint64) error {
	if schemaID <= proto.ReservedSchemaIDMax {
		return cerrors.ErrIllegalParameters
	}

	s, ok := c.store.schemas.Get(schemaID)
	if !ok {
		return cerrors.ErrSchemaNotFound
	}
	if len(s.TableIDs) > 0 || len(s.IndexIDs) > 0 {
		return cerrors.ErrSchemaNotEmpty
	}

	increment := &proto.MetaIncrement{}
	c.alloc.Next(proto.EpochSchema, increment)
	increment.AddSchema(proto.OpDelete, schemaID, parentSchemaID, *s.Clone())

	return c.log.Submit(ctx, increment)
}
