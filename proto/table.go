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

// RangePartition is the only partition strategy this core accepts;
// HashPartition exists on the wire struct for wire-compatibility with the
// original but CreateTable/CreateIndex reject it.
type RangePartition struct {
	Ranges []Range `json:"ranges"`
}

type TablePartition struct {
	RangePartition *RangePartition `json:"range_partition,omitempty"`
	HashPartition  *struct{}       `json:"hash_partition,omitempty"`
}

// Column describes one table column; AutoIncrement marks the column this
// core must synchronously register with the AutoIncrementService before
// the table becomes visible.
type Column struct {
	Name          string `json:"name"`
	AutoIncrement bool   `json:"auto_increment"`
}

// TableDefinition is the caller-supplied shape of a table. Replica<1 is
// normalized to 3 by CreateTable, matching the original.
type TableDefinition struct {
	Name      string          `json:"name"`
	Columns   []Column        `json:"columns"`
	Partition *TablePartition `json:"table_partition,omitempty"`
	Replica   int             `json:"replica"`
}

func (d *TableDefinition) HasAutoIncrementColumn() bool {
	for _, c := range d.Columns {
		if c.AutoIncrement {
			return true
		}
	}
	return false
}

// Table is the persisted catalog entry for a table: its definition plus
// the partitions (region references) backing it.
type Table struct {
	ID         uint64          `json:"id"`
	SchemaID   uint64          `json:"schema_id"`
	Definition TableDefinition `json:"definition"`
	Partitions []Partition     `json:"partitions"`
}

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := &Table{ID: t.ID, SchemaID: t.SchemaID, Definition: t.Definition}
	c.Definition.Columns = append([]Column(nil), t.Definition.Columns...)
	c.Partitions = append([]Partition(nil), t.Partitions...)
	return c
}

// TableMetrics is the cached/recomputed aggregate over a table's regions.
type TableMetrics struct {
	RowsCount uint64 `json:"rows_count"`
	MinKey    []byte `json:"min_key"`
	MaxKey    []byte `json:"max_key"`
	PartCount int    `json:"part_count"`
}

// TableDefinitionWithID is the read-path response wrapper pairing a
// CommonID with the definition, mirroring the original's
// TableDefinitionWithId.
type TableDefinitionWithID struct {
	ID         CommonID        `json:"id"`
	Definition TableDefinition `json:"definition"`
}
