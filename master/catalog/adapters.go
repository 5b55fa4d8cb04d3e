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

	"github.com/dingodb/coordinator-metacatalog/proto"
)

// RegionService is the external collaborator that actually places and
// removes regions on stores (the region allocator/placement engine, out
// of scope for this core per its own design). The Meta-Increment Builder
// calls it synchronously while building CreateTable/CreateIndex
// increments, and compensates (DropRegion for every region already
// created) on partial failure, exactly as CreateRegion/DropRegion are
// used in coordinator_control_meta.cc.
type RegionService interface {
	CreateRegion(ctx context.Context, name string, regionType proto.RegionType, rng proto.Range, schemaID, ownerID uint64, indexParameter *proto.IndexParameter, replica int) (regionID uint64, err error)
	DropRegion(ctx context.Context, regionID uint64) error
}

// AutoIncrementService is the external auto-increment-column subsystem.
// CreateTable/CreateIndex call SyncCreate synchronously before the table
// or index becomes visible — a failure here aborts the create with
// EAUTO_INCREMENT_WHILE_CREATING_TABLE; DropTable/DropIndex call
// AsyncDelete best-effort after the drop has already committed.
type AutoIncrementService interface {
	SyncCreate(ctx context.Context, ownerID uint64) error
	AsyncDelete(ctx context.Context, ownerID uint64)
}

// ReplicatedLog is the interface this core needs out of the consensus
// layer: propose one MetaIncrement and get back either an error (the
// proposal was rejected, e.g. this node is not the leader) or nothing —
// the actual application of the increment happens through LogApplier.Apply
// once the log commits it, possibly on a different node. Grounded on the
// shape of raft.Group.Propose (root raft package) and
// master/idgenerator.IDGenerator's use of it, without depending on that
// package's concrete transport.
type ReplicatedLog interface {
	Submit(ctx context.Context, increment *proto.MetaIncrement) error
}

// LogApplier is the other half of the contract: what the replicated log
// calls back into on every node (leader and followers alike) once an
// increment commits, plus the leadership-transition hook that drives the
// Name Index rebuild and metrics-sweep lifecycle. Grounded on
// raft.StateMachine.Apply/LeaderChange.
type LogApplier interface {
	Apply(ctx context.Context, increment *proto.MetaIncrement) error
	LeaderChange(leader uint64) error
}
