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

// Package errors is the stable taxonomy of client-facing catalog errors.
// Codes and names are part of the wire contract: callers match on Code,
// never on Error()'s text.
package errors

import "fmt"

// Errno is a stable, string-coded catalog error.
type Errno struct {
	Code uint32
	Name string
	Msg  string
}

func (e *Errno) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

func newErrno(code uint32, name, msg string) *Errno {
	return &Errno{Code: code, Name: name, Msg: msg}
}

// Tier 1: malformed or conflicting requests (caller error, no state change).
var (
	ErrIllegalParameters = newErrno(1001, "EILLEGAL_PARAMETERS", "request parameters are malformed or inconsistent")
	ErrSchemaExists      = newErrno(1002, "ESCHEMA_EXISTS", "schema name already exists")
	ErrSchemaNotFound    = newErrno(1003, "ESCHEMA_NOT_FOUND", "schema not found")
	ErrSchemaNotEmpty    = newErrno(1004, "ESCHEMA_NOT_EMPTY", "schema still has tables or indexes")
	ErrTableExists       = newErrno(1005, "ETABLE_EXISTS", "table name already exists in this schema")
	ErrTableNotFound     = newErrno(1006, "ETABLE_NOT_FOUND", "table not found")
	ErrIndexExists       = newErrno(1007, "EINDEX_EXISTS", "index name already exists in this schema")
	ErrIndexNotFound     = newErrno(1008, "EINDEX_NOT_FOUND", "index not found")

	ErrTableDefinitionIllegal = newErrno(1009, "ETABLE_DEFINITION_ILLEGAL", "table definition is illegal")
	ErrIndexDefinitionIllegal = newErrno(1010, "EINDEX_DEFINITION_ILLEGAL", "index definition is illegal")
)

// Tier 2: dependent-system failures surfaced synchronously to the caller.
var (
	ErrAutoIncrementWhileCreatingTable = newErrno(2001, "EAUTO_INCREMENT_WHILE_CREATING_TABLE", "auto-increment series registration failed while creating table")
	ErrTableRegionCreateFailed         = newErrno(2002, "ETABLE_REGION_CREATE_FAILED", "could not create all regions for table, created regions were rolled back")
	ErrIndexRegionCreateFailed         = newErrno(2003, "EINDEX_REGION_CREATE_FAILED", "could not create all regions for index, created regions were rolled back")
	ErrTableMetricsFailed              = newErrno(2004, "ETABLE_METRICS_FAILED", "table was removed while its metrics were being aggregated")
	ErrIndexMetricsFailed              = newErrno(2005, "EINDEX_METRICS_FAILED", "index was removed while its metrics were being aggregated")
)

// Tier 3: internal/unexpected conditions. Callers are not expected to
// branch on these; wrap with context via blobstore's errors.Info at the
// call site instead of minting new stable codes.
var (
	ErrNotLeader         = newErrno(3001, "ENOT_LEADER", "this node is not the catalog leader")
	ErrReplicatedLogDown = newErrno(3002, "EREPLICATED_LOG_DOWN", "replicated log is unavailable")
	// ErrInternal is surfaced when a Tier 2 partial-failure's own
	// compensation (the rollback that's supposed to undo the side effect
	// that already succeeded) itself fails — e.g. a created region won't
	// drop. The builder has no further retry of its own at that point;
	// operators must reconcile the dangling region by hand.
	ErrInternal = newErrno(3003, "EINTERNAL", "internal error, operator reconciliation required")
)
