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

// IdEpochType names one scope of the monotonic counter table kept by the
// allocator. Tables and indexes share ID_NEXT_TABLE's id-space.
type IdEpochType string

const (
	IdNextSchema IdEpochType = "ID_NEXT_SCHEMA"
	IdNextTable  IdEpochType = "ID_NEXT_TABLE"

	EpochSchema IdEpochType = "EPOCH_SCHEMA"
	EpochTable  IdEpochType = "EPOCH_TABLE"
	EpochIndex  IdEpochType = "EPOCH_INDEX"
	EpochRegion IdEpochType = "EPOCH_REGION"
	EpochStore  IdEpochType = "EPOCH_STORE"
)

// AutoAssignID is the sentinel callers pass to CreateTable/CreateIndex to
// request allocator-assigned ids. Any other value is trusted verbatim and
// not checked for collision against the id space (see DESIGN.md, Open
// Question 2).
const AutoAssignID uint64 = 0

// IdEpoch is the persisted value for one IdEpochType.
type IdEpoch struct {
	Type  IdEpochType `json:"type"`
	Value uint64      `json:"value"`
}

// Reserved schema ids, fixed at boot for backward compatibility with
// clients that hardcode them. ROOT is the implicit parent of every user
// schema; the other four are fixed sibling namespaces. Any id in this
// range is indestructible and CreateSchema below it is illegal.
const (
	RootSchemaID              uint64 = 0
	MetaSchemaID                     = 1
	DingoSchemaID                    = 2
	MysqlSchemaID                    = 3
	InformationSchemaSchemaID        = 4

	// ReservedSchemaIDMax is the highest reserved schema id; any
	// schema_id at or below this value is part of the bootstrap set.
	ReservedSchemaIDMax = InformationSchemaSchemaID
)

// EntityType distinguishes the kind of id carried by a CommonID, mirroring
// the original's DingoCommonId.entity_type.
type EntityType int

const (
	EntityTypeSchema EntityType = iota
	EntityTypeTable
	EntityTypeIndex
	EntityTypePart
)

// CommonID identifies one entity within the catalog tree.
type CommonID struct {
	EntityType     EntityType `json:"entity_type"`
	ParentEntityID uint64     `json:"parent_entity_id"`
	EntityID       uint64     `json:"entity_id"`
}
