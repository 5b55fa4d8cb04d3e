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

package proto

// Schema is the top level catalog entry. TableIDs/IndexIDs are kept in
// creation order, matching the original's repeated-field semantics.
type Schema struct {
	ID       uint64   `json:"id"`
	Name     string   `json:"name"`
	TableIDs []uint64 `json:"table_ids"`
	IndexIDs []uint64 `json:"index_ids"`
}

// Clone returns a deep copy so callers can't mutate catalog-store state
// through a returned pointer.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := &Schema{ID: s.ID, Name: s.Name}
	c.TableIDs = append(c.TableIDs, s.TableIDs...)
	c.IndexIDs = append(c.IndexIDs, s.IndexIDs...)
	return c
}

// ReservedSchemas returns the five bootstrap schemas created once at
// cluster genesis, in the fixed order the original assigns their ids.
func ReservedSchemas() []*Schema {
	return []*Schema{
		{ID: RootSchemaID, Name: "ROOT"},
		{ID: MetaSchemaID, Name: "META"},
		{ID: DingoSchemaID, Name: "DINGO"},
		{ID: MysqlSchemaID, Name: "MYSQL"},
		{ID: InformationSchemaSchemaID, Name: "INFORMATION_SCHEMA"},
	}
}
