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
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// catalogStore is the in-memory home of every catalog entity (C2). It is
// pure memory — no disk I/O — because entities are reconstructed from the
// replicated log, not from local state; only the Id/Epoch allocator
// persists anything to disk (idstorage.go).
type catalogStore struct {
	schemas       *shardedMap[uint64, *proto.Schema]
	tables        *shardedMap[uint64, *proto.Table]
	indexes       *shardedMap[uint64, *proto.Index]
	regions       *shardedMap[uint64, *proto.Region]
	tableMetrics  *shardedMap[uint64, *proto.TableMetrics]
	indexMetrics  *shardedMap[uint64, *proto.IndexMetrics]
}

func newCatalogStore() *catalogStore {
	return &catalogStore{
		schemas:      newShardedMapUint64[*proto.Schema](defaultShardNum),
		tables:       newShardedMapUint64[*proto.Table](defaultShardNum),
		indexes:      newShardedMapUint64[*proto.Index](defaultShardNum),
		regions:      newShardedMapUint64[*proto.Region](defaultShardNum),
		tableMetrics: newShardedMapUint64[*proto.TableMetrics](defaultShardNum),
		indexMetrics: newShardedMapUint64[*proto.IndexMetrics](defaultShardNum),
	}
}

func (c *catalogStore) bootstrapReservedSchemas() {
	for _, s := range proto.ReservedSchemas() {
		c.schemas.Put(s.ID, s)
	}
}
