/*
 *
 * Copyright 2023 CubeFS authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

/*

# Coordinator Meta-Catalog Core

A library that tracks the cluster-level metadata of a distributed
key-value/table/vector-index database: which schemas, tables, indexes
and regions exist, their definitions, and which store currently holds
each region's leader. It is not a server: it owns no network listener
and executes no query, it hands callers an atomic change-set (a
MetaIncrement) for a replicated log to commit, and applies whatever the
log decides back into its own state on every node, leader and follower
alike.

## Data Model

* Schema, the namespace a table or index lives in. ROOT, META, DINGO,
  MYSQL and INFORMATION_SCHEMA are reserved and bootstrapped on every
  node; user schemas nest directly under ROOT.

* Table / Index, a named, partitioned entity inside a schema. A table's
  partitions are plain range partitions (a hash partition is
  rejected); an index additionally carries a vector or scalar
  index parameter block (HNSW, FLAT, IVF_FLAT, IVF_PQ, DISKANN, or a
  scalar index type).

* Region, the physical replication unit a partition maps to — who owns
  it is this core's business, where it actually lives is not: region
  placement is delegated to an external region allocator.

## Architecture

* Id/Epoch Allocator — monotonic counters for entity ids and the
  schema/table/index/region/store epochs, optionally persisted through
  a RocksDB-backed kvstore so a restart doesn't need a full log replay.

* Catalog Store — the authoritative in-memory map of every schema,
  table, index and region.

* Name Index — a leader-local, non-replicated optimistic reservation
  layer that lets a create reject an obvious name collision before
  paying for a round of consensus; rebuilt from the Catalog Store on
  every leadership change.

* Definition Validator, Meta-Increment Builder, Read-Path Assembler and
  Metrics Aggregator — see master/catalog's package doc for the full
  breakdown.

### Replication

This core proposes one MetaIncrement per mutating call through a
ReplicatedLog and applies it back through a LogApplier once committed;
package raftadapter wires both onto package raft's Group/StateMachine
interfaces for a real multi-node deployment, or a single-node
setup can use the built-in loopback log.

### Storage

Catalog state is pure in-memory, replicated by the log. Only the
Id/Epoch Allocator's counters are optionally persisted to local disk.

## Building Blocks

* a raft Group/StateMachine contract (package raft; no consensus
  implementation is included)
* Prometheus
* RocksDB (id/epoch counters only)

*/

package coordinatormetacatalog
