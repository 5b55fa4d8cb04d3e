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

// Package raftadapter wires the catalog core's ReplicatedLog/LogApplier
// contracts onto the Group/StateMachine interfaces of package raft, so a multi-node deployment proposes
// MetaIncrements through real consensus instead of the catalog package's
// single-node loopback log.
package raftadapter

import (
	"context"
	"encoding/json"

	cerrors "github.com/cubefs/cubefs/blobstore/util/errors"
	"github.com/dingodb/coordinator-metacatalog/master/catalog"
	"github.com/dingodb/coordinator-metacatalog/proto"
	"github.com/dingodb/coordinator-metacatalog/raft"
)

// Module is the raft proposal namespace this core registers under,
// matching the Module/RaftOp pattern master/idgenerator used for its own
// state machine.
var Module = []byte("coordinatorMetaCatalog")

const raftOpApplyIncrement = 1

// Log submits MetaIncrements through a raft.Group and turns the group's
// Apply callbacks back into catalog.Catalog.Apply calls.
type Log struct {
	group   raft.Group
	catalog *catalog.Catalog
}

// New returns a Log bound to an already-started raft.Group and the
// Catalog whose Apply method the group's state machine calls back into.
// Callers build the Catalog with this Log installed as
// catalog.Config.ReplicatedLog, and register NewApplier(cat) as the group's
// StateMachine.
func New(group raft.Group, cat *catalog.Catalog) *Log {
	return &Log{group: group, catalog: cat}
}

func (l *Log) Submit(ctx context.Context, increment *proto.MetaIncrement) error {
	data, err := json.Marshal(increment)
	if err != nil {
		return cerrors.Info(err, "marshal meta increment failed")
	}
	_, err = l.group.Propose(ctx, &raft.ProposalData{
		Module: Module,
		Op:     raftOpApplyIncrement,
		Data:   data,
	})
	return err
}

// Applier adapts a catalog.Catalog into a raft.StateMachine, decoding
// each proposal's payload back into a MetaIncrement before delegating to
// Catalog.Apply.
type Applier struct {
	catalog *catalog.Catalog
}

func NewApplier(cat *catalog.Catalog) *Applier {
	return &Applier{catalog: cat}
}

func (a *Applier) Apply(ctx context.Context, pds []raft.ProposalData, index uint64) ([]interface{}, error) {
	rets := make([]interface{}, 0, len(pds))
	for _, pd := range pds {
		increment := &proto.MetaIncrement{}
		if err := json.Unmarshal(pd.Data, increment); err != nil {
			return nil, cerrors.Info(err, "unmarshal meta increment failed")
		}
		if err := a.catalog.Apply(ctx, increment); err != nil {
			return nil, err
		}
		rets = append(rets, struct{}{})
	}
	return rets, nil
}

func (a *Applier) LeaderChange(peerID uint64) error {
	return a.catalog.LeaderChange(peerID)
}

func (a *Applier) ApplyMemberChange(cc *raft.Member, index uint64) error {
	return nil
}

func (a *Applier) Snapshot() raft.Snapshot {
	return nil
}

func (a *Applier) ApplySnapshot(s raft.Snapshot) error {
	return nil
}
