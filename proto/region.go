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

// RegionType distinguishes a table-backing region from an index-backing
// one; passed through to the External Adapter that actually creates it.
type RegionType int

const (
	RegionTypeStore RegionType = iota
	RegionTypeIndex
)

// PeerRole mirrors the original's peer role enum for region replicas.
type PeerRole int

const (
	PeerRoleVoter PeerRole = iota
	PeerRoleLearner
)

// Range is a half-open key range [StartKey, EndKey).
type Range struct {
	StartKey []byte `json:"start_key"`
	EndKey   []byte `json:"end_key"`
}

// Peer is one replica of a region.
type Peer struct {
	StoreID        uint64   `json:"store_id"`
	Role           PeerRole `json:"role"`
	ServerLocation string   `json:"server_location"`
}

// RegionDefinition is the part of a Region this core treats as opaque
// except for the fields it needs to assemble range-distribution reads.
type RegionDefinition struct {
	Name    string `json:"name"`
	Range   Range  `json:"range"`
	Peers   []Peer `json:"peers"`
}

// RegionMetrics is the region-reported row/key-range summary this core
// aggregates into table/index metrics.
type RegionMetrics struct {
	RowCount uint64 `json:"row_count"`
	MinKey   []byte `json:"min_key"`
	MaxKey   []byte `json:"max_key"`
}

// Region is a single placement unit backing one partition of a table or
// index. It is created/dropped through the RegionService external
// adapter and only read back here for range/metrics assembly.
type Region struct {
	ID             uint64         `json:"id"`
	Definition     RegionDefinition `json:"definition"`
	LeaderStoreID  uint64         `json:"leader_store_id"`
	HasMetrics     bool           `json:"has_metrics"`
	Metrics        RegionMetrics  `json:"metrics"`
}

func (r *Region) Clone() *Region {
	if r == nil {
		return nil
	}
	c := &Region{ID: r.ID, LeaderStoreID: r.LeaderStoreID, HasMetrics: r.HasMetrics}
	c.Definition.Name = r.Definition.Name
	c.Definition.Range.StartKey = append([]byte(nil), r.Definition.Range.StartKey...)
	c.Definition.Range.EndKey = append([]byte(nil), r.Definition.Range.EndKey...)
	c.Definition.Peers = append(c.Definition.Peers, r.Definition.Peers...)
	c.Metrics.RowCount = r.Metrics.RowCount
	c.Metrics.MinKey = append([]byte(nil), r.Metrics.MinKey...)
	c.Metrics.MaxKey = append([]byte(nil), r.Metrics.MaxKey...)
	return c
}

// Partition references the region currently backing one range slice of a
// table or index. Order matches the range order declared at creation.
type Partition struct {
	RegionID uint64 `json:"region_id"`
}

// RangeDistribution is one row of a GetTableRange/GetIndexRange response.
type RangeDistribution struct {
	ID              CommonID `json:"id"`
	Range           Range    `json:"range"`
	Leader          string   `json:"leader"`
	Voters          []string `json:"voters"`
	Learners        []string `json:"learners"`
	RegionMapEpoch  uint64   `json:"regionmap_epoch"`
	StoreMapEpoch   uint64   `json:"storemap_epoch"`
}
