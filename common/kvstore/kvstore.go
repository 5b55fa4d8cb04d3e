// Copyright 2023 The Cuber Authors.
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

package kvstore

import (
	"context"
	"errors"
)

const (
	defaultCF = "default"

	RocksdbLsmKVType = LsmKVType("rocksdb")
)

var ErrKVTypeNotFound = errors.New("kv type not found")

type (
	CF        string
	LsmKVType string

	// Store is the ordered key/value contract the id/epoch allocator's
	// persistence layer (master/catalog/idstorage.go) needs: write one
	// counter, and on restart list every counter back out. Collapsed from
	// a general-purpose multi-column-family RocksDB wrapper (snapshots,
	// batched writes, a parallel Get/MultiGet read path, tunable
	// compaction/cache/rate-limiter knobs) down to this, since the
	// catalog never opens more than the one "id_epoch" column family and
	// never does anything but put a counter and scan them all back.
	Store interface {
		SetRaw(ctx context.Context, col CF, key, value []byte) error
		List(ctx context.Context, col CF, prefix []byte) ListReader
		Close()
	}
	ListReader interface {
		// ReadNext returns nil key/val once the column family (or, with a
		// non-nil prefix, the matching key range) is exhausted.
		ReadNext() (key KeyGetter, val ValueGetter, err error)
		Close()
	}
	KeyGetter interface {
		Key() []byte
		Close()
	}
	ValueGetter interface {
		Value() []byte
		Close()
	}

	Option struct {
		ColumnFamily    []CF `json:"column_family"`
		CreateIfMissing bool `json:"create_if_missing"`
		Sync            bool `json:"sync"`
	}
)

func NewKVStore(ctx context.Context, path string, lsmType LsmKVType, option *Option) (Store, error) {
	switch lsmType {
	case RocksdbLsmKVType:
		return newRocksdb(ctx, path, option)
	default:
		return nil, ErrKVTypeNotFound
	}
}

func (cf CF) String() string {
	return string(cf)
}
