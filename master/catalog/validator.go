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
	cerrors "github.com/dingodb/coordinator-metacatalog/errors"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// validateTableDefinition mirrors the inline checks CreateTable makes in
// coordinator_control_meta.cc before it ever touches the name index: a
// table must declare a range partition with at least one range, and hash
// partitioning is rejected outright.
func validateTableDefinition(def *proto.TableDefinition) error {
	if def == nil || def.Name == "" {
		return cerrors.ErrIllegalParameters
	}
	if def.Partition == nil || def.Partition.HashPartition != nil {
		return cerrors.ErrTableDefinitionIllegal
	}
	if def.Partition.RangePartition == nil || len(def.Partition.RangePartition.Ranges) == 0 {
		return cerrors.ErrTableDefinitionIllegal
	}
	return nil
}

func validateIndexPartition(def *proto.IndexDefinition) error {
	if def.Partition == nil || def.Partition.HashPartition != nil {
		return cerrors.ErrIndexDefinitionIllegal
	}
	if def.Partition.RangePartition == nil || len(def.Partition.RangePartition.Ranges) == 0 {
		return cerrors.ErrIndexDefinitionIllegal
	}
	return nil
}

// validateIndexDefinition is grounded line-for-line (in idiom, not text)
// on ValidateIndexDefinition in coordinator_control_meta.cc, including the
// per-vector-type required-parameter-block table.
func validateIndexDefinition(def *proto.IndexDefinition) error {
	if def == nil || def.Name == "" {
		return cerrors.ErrIllegalParameters
	}
	if def.IndexType == proto.IndexTypeNone {
		return cerrors.ErrIllegalParameters
	}

	switch def.IndexType {
	case proto.IndexTypeVector:
		if err := validateVectorIndexParameter(def.IndexParameter.VectorIndexParameter); err != nil {
			return err
		}
	case proto.IndexTypeScalar:
		sp := def.IndexParameter.ScalarIndexParameter
		if sp == nil || sp.ScalarIndexType == proto.ScalarIndexTypeNone {
			return cerrors.ErrIllegalParameters
		}
	default:
		return cerrors.ErrIllegalParameters
	}

	return validateIndexPartition(def)
}

// validateVectorParameterTagMatchesPayload enforces that only the block
// named by vp.VectorIndexType is populated — a caller that fills in more
// than one of HNSW/Flat/IVFFlat/IVFPQ/DiskANN is sending an ambiguous,
// illegal definition, even if the one matching the declared type is itself
// well-formed.
func validateVectorParameterTagMatchesPayload(vp *proto.VectorIndexParameter) error {
	if vp.HNSW != nil && vp.VectorIndexType != proto.VectorIndexTypeHNSW {
		return cerrors.ErrIllegalParameters
	}
	if vp.Flat != nil && vp.VectorIndexType != proto.VectorIndexTypeFlat {
		return cerrors.ErrIllegalParameters
	}
	if vp.IVFFlat != nil && vp.VectorIndexType != proto.VectorIndexTypeIVFFlat {
		return cerrors.ErrIllegalParameters
	}
	if vp.IVFPQ != nil && vp.VectorIndexType != proto.VectorIndexTypeIVFPQ {
		return cerrors.ErrIllegalParameters
	}
	if vp.DiskANN != nil && vp.VectorIndexType != proto.VectorIndexTypeDiskANN {
		return cerrors.ErrIllegalParameters
	}
	return nil
}

func validateVectorIndexParameter(vp *proto.VectorIndexParameter) error {
	if vp == nil || vp.VectorIndexType == proto.VectorIndexTypeNone {
		return cerrors.ErrIllegalParameters
	}
	if err := validateVectorParameterTagMatchesPayload(vp); err != nil {
		return err
	}

	switch vp.VectorIndexType {
	case proto.VectorIndexTypeHNSW:
		p := vp.HNSW
		if p == nil {
			return cerrors.ErrIllegalParameters
		}
		if p.Dimension <= 0 || p.MetricType == proto.MetricTypeNone ||
			p.Efconstruction <= 0 || p.MaxElements <= 0 || p.NLinks <= 0 {
			return cerrors.ErrIllegalParameters
		}
	case proto.VectorIndexTypeFlat:
		p := vp.Flat
		if p == nil {
			return cerrors.ErrIllegalParameters
		}
		if p.Dimension <= 0 || p.MetricType == proto.MetricTypeNone {
			return cerrors.ErrIllegalParameters
		}
	case proto.VectorIndexTypeIVFFlat:
		p := vp.IVFFlat
		if p == nil {
			return cerrors.ErrIllegalParameters
		}
		if p.Dimension <= 0 || p.MetricType == proto.MetricTypeNone || p.NCentroids <= 0 {
			return cerrors.ErrIllegalParameters
		}
	case proto.VectorIndexTypeIVFPQ:
		p := vp.IVFPQ
		if p == nil {
			return cerrors.ErrIllegalParameters
		}
		if p.Dimension <= 0 || p.MetricType == proto.MetricTypeNone || p.NCentroids <= 0 ||
			p.NSubvector <= 0 || p.BucketInitSize <= 0 || p.BucketMaxSize <= 0 {
			return cerrors.ErrIllegalParameters
		}
	case proto.VectorIndexTypeDiskANN:
		p := vp.DiskANN
		if p == nil {
			return cerrors.ErrIllegalParameters
		}
		if p.Dimension <= 0 || p.MetricType == proto.MetricTypeNone || p.NumTrees <= 0 ||
			p.NumNeighbors <= 0 || p.NumThreads <= 0 {
			return cerrors.ErrIllegalParameters
		}
	default:
		return cerrors.ErrIllegalParameters
	}

	return nil
}
