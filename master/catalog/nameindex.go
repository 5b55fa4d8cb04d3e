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
	"fmt"

	"github.com/dingodb/coordinator-metacatalog/proto"
)

// nameIndex is the leader-local optimistic name reservation layer (C3).
// It exists so CreateSchema/CreateTable/CreateIndex can reject an obvious
// name collision before paying for a round of consensus, the same role
// schema_name_map_safe_temp_/table_name_map_safe_temp_/
// index_name_map_safe_temp_ play in coordinator_control_meta.cc. It is not
// itself replicated: rebuildFromStore reconstructs it from the catalog
// store on every LeaderChange, so a crashed leader's reservations don't
// leak.
//
// Table names and index names are kept in separate maps deliberately —
// see DESIGN.md, Open Question 1: the original keeps them separate too,
// so a table and an index may share a name within one schema.
type nameIndex struct {
	schemaNames *shardedMap[string, uint64]
	tableNames  *shardedMap[string, uint64]
	indexNames  *shardedMap[string, uint64]
}

func newNameIndex() *nameIndex {
	return &nameIndex{
		schemaNames: newShardedMapString[uint64](defaultShardNum),
		tableNames:  newShardedMapString[uint64](defaultShardNum),
		indexNames:  newShardedMapString[uint64](defaultShardNum),
	}
}

func scopedKey(schemaID uint64, name string) string {
	return fmt.Sprintf("%d/%s", schemaID, name)
}

func (n *nameIndex) reserveSchema(name string, id uint64) bool {
	return n.schemaNames.PutIfAbsent(name, id)
}

func (n *nameIndex) releaseSchema(name string) {
	n.schemaNames.Erase(name)
}

func (n *nameIndex) schemaExists(name string) bool {
	return n.schemaNames.Exists(name)
}

func (n *nameIndex) reserveTable(schemaID uint64, name string, id uint64) bool {
	return n.tableNames.PutIfAbsent(scopedKey(schemaID, name), id)
}

func (n *nameIndex) releaseTable(schemaID uint64, name string) {
	n.tableNames.Erase(scopedKey(schemaID, name))
}

func (n *nameIndex) tableExists(schemaID uint64, name string) bool {
	return n.tableNames.Exists(scopedKey(schemaID, name))
}

func (n *nameIndex) tableID(schemaID uint64, name string) (uint64, bool) {
	return n.tableNames.Get(scopedKey(schemaID, name))
}

func (n *nameIndex) reserveIndex(schemaID uint64, name string, id uint64) bool {
	return n.indexNames.PutIfAbsent(scopedKey(schemaID, name), id)
}

func (n *nameIndex) releaseIndex(schemaID uint64, name string) {
	n.indexNames.Erase(scopedKey(schemaID, name))
}

func (n *nameIndex) indexExists(schemaID uint64, name string) bool {
	return n.indexNames.Exists(scopedKey(schemaID, name))
}

func (n *nameIndex) indexID(schemaID uint64, name string) (uint64, bool) {
	return n.indexNames.Get(scopedKey(schemaID, name))
}

// rebuildFromStore repopulates the name index from the authoritative
// catalog store. Called on LeaderChange so a freshly-elected leader's
// reservation state matches what the replicated log has actually
// committed, rather than trusting the old leader's in-memory state.
func (n *nameIndex) rebuildFromStore(store *catalogStore) {
	n.schemaNames = newShardedMapString[uint64](defaultShardNum)
	n.tableNames = newShardedMapString[uint64](defaultShardNum)
	n.indexNames = newShardedMapString[uint64](defaultShardNum)

	store.schemas.Range(func(_ uint64, s *proto.Schema) bool {
		n.schemaNames.Put(s.Name, s.ID)
		return true
	})
	store.tables.Range(func(_ uint64, t *proto.Table) bool {
		n.tableNames.Put(scopedKey(t.SchemaID, t.Definition.Name), t.ID)
		return true
	})
	store.indexes.Range(func(_ uint64, idx *proto.Index) bool {
		n.indexNames.Put(scopedKey(idx.SchemaID, idx.Definition.Name), idx.ID)
		return true
	})
}
