// Copyright 2022 The CubeFS Authors.
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
	"encoding/binary"

	"github.com/dingodb/coordinator-metacatalog/common/kvstore"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

var idEpochCF = kvstore.CF("id_epoch")

// idStorage persists the allocator's kind->counter table so a restarted
// coordinator doesn't have to replay the entire log to recover its next
// id/epoch values. Adapted from master/idgenerator/storage.go; the only
// change is the key type (IdEpochType instead of a free-form scope name).
type idStorage struct {
	kvStore kvstore.Store
}

func newIdStorage(kvStore kvstore.Store) *idStorage {
	return &idStorage{kvStore: kvStore}
}

func (s *idStorage) Load(ctx context.Context) (map[proto.IdEpochType]uint64, error) {
	lr := s.kvStore.List(ctx, idEpochCF, nil)
	defer lr.Close()

	ret := make(map[proto.IdEpochType]uint64)
	for {
		kg, vg, err := lr.ReadNext()
		if err != nil {
			return nil, err
		}
		if kg == nil || vg == nil {
			break
		}

		ret[proto.IdEpochType(kg.Key())] = decodeCounter(vg.Value())
		kg.Close()
		vg.Close()
	}

	return ret, nil
}

func (s *idStorage) Put(ctx context.Context, kind proto.IdEpochType, value uint64) error {
	return s.kvStore.SetRaw(ctx, idEpochCF, []byte(kind), encodeCounter(value))
}

func encodeCounter(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func decodeCounter(raw []byte) uint64 {
	return binary.BigEndian.Uint64(raw)
}
