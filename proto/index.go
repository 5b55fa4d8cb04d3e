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

// IndexType is the top level discriminator between a vector index and a
// scalar index.
type IndexType int

const (
	IndexTypeNone IndexType = iota
	IndexTypeVector
	IndexTypeScalar
)

// VectorIndexType selects which of the five parameter blocks below is
// required by the catalog's index validator (validateVectorIndexParameter).
type VectorIndexType int

const (
	VectorIndexTypeNone VectorIndexType = iota
	VectorIndexTypeHNSW
	VectorIndexTypeFlat
	VectorIndexTypeIVFFlat
	VectorIndexTypeIVFPQ
	VectorIndexTypeDiskANN
)

// MetricType is shared by every vector parameter block.
type MetricType int

const (
	MetricTypeNone MetricType = iota
	MetricTypeL2
	MetricTypeInnerProduct
	MetricTypeCosine
)

// ScalarIndexType selects the scalar index's backing structure.
type ScalarIndexType int

const (
	ScalarIndexTypeNone ScalarIndexType = iota
	ScalarIndexTypeBTree
)

// HNSWParameter mirrors pb::meta::CreateHnswParam. Note the field is
// spelled "Efconstruction", with no underscore, matching the original.
type HNSWParameter struct {
	Dimension       int        `json:"dimension"`
	MetricType      MetricType `json:"metric_type"`
	Efconstruction  int        `json:"efconstruction"`
	MaxElements     int        `json:"max_elements"`
	NLinks          int        `json:"nlinks"`
}

type FlatParameter struct {
	Dimension  int        `json:"dimension"`
	MetricType MetricType `json:"metric_type"`
}

type IVFFlatParameter struct {
	Dimension  int        `json:"dimension"`
	MetricType MetricType `json:"metric_type"`
	NCentroids int        `json:"ncentroids"`
}

type IVFPQParameter struct {
	Dimension       int        `json:"dimension"`
	MetricType      MetricType `json:"metric_type"`
	NCentroids      int        `json:"ncentroids"`
	NSubvector      int        `json:"nsubvector"`
	BucketInitSize  int        `json:"bucket_init_size"`
	BucketMaxSize   int        `json:"bucket_max_size"`
}

type DiskANNParameter struct {
	Dimension    int        `json:"dimension"`
	MetricType   MetricType `json:"metric_type"`
	NumTrees     int        `json:"num_trees"`
	NumNeighbors int        `json:"num_neighbors"`
	NumThreads   int        `json:"num_threads"`
}

// VectorIndexParameter carries exactly one of the five variant blocks,
// selected by VectorIndexType. Plain encoding/json decoding fills every
// block present; the catalog's validator rejects any block other than the
// one VectorIndexType names.
type VectorIndexParameter struct {
	VectorIndexType VectorIndexType   `json:"vector_index_type"`
	HNSW            *HNSWParameter    `json:"hnsw_parameter,omitempty"`
	Flat            *FlatParameter    `json:"flat_parameter,omitempty"`
	IVFFlat         *IVFFlatParameter `json:"ivf_flat_parameter,omitempty"`
	IVFPQ           *IVFPQParameter   `json:"ivf_pq_parameter,omitempty"`
	DiskANN         *DiskANNParameter `json:"diskann_parameter,omitempty"`
}

type ScalarIndexParameter struct {
	ScalarIndexType ScalarIndexType `json:"scalar_index_type"`
}

// IndexParameter is the index-type-dependent payload; exactly one of
// Vector/Scalar is populated depending on IndexDefinition.IndexType.
type IndexParameter struct {
	VectorIndexParameter *VectorIndexParameter `json:"vector_index_parameter,omitempty"`
	ScalarIndexParameter *ScalarIndexParameter `json:"scalar_index_parameter,omitempty"`
}

type IndexPartition struct {
	RangePartition *RangePartition `json:"range_partition,omitempty"`
	HashPartition  *struct{}       `json:"hash_partition,omitempty"`
}

// IndexDefinition is the caller-supplied shape of an index.
type IndexDefinition struct {
	Name            string          `json:"name"`
	IndexType       IndexType       `json:"index_type"`
	IndexParameter  IndexParameter  `json:"index_parameter"`
	Partition       *IndexPartition `json:"index_partition,omitempty"`
	Replica         int             `json:"replica"`
	WithAutoIncrement bool          `json:"with_auto_increment"`
}

// Index is the persisted catalog entry for an index.
type Index struct {
	ID         uint64          `json:"id"`
	SchemaID   uint64          `json:"schema_id"`
	Definition IndexDefinition `json:"definition"`
	Partitions []Partition     `json:"partitions"`
}

func (i *Index) Clone() *Index {
	if i == nil {
		return nil
	}
	c := &Index{ID: i.ID, SchemaID: i.SchemaID, Definition: i.Definition}
	c.Partitions = append([]Partition(nil), i.Partitions...)
	return c
}

// IndexMetrics mirrors TableMetrics for an index's own partitions.
type IndexMetrics struct {
	RowsCount uint64 `json:"rows_count"`
	MinKey    []byte `json:"min_key"`
	MaxKey    []byte `json:"max_key"`
	PartCount int    `json:"part_count"`
}

// IndexDefinitionWithID is the read-path response wrapper for an index.
type IndexDefinitionWithID struct {
	ID         CommonID        `json:"id"`
	Definition IndexDefinition `json:"definition"`
}
