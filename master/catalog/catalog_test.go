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
	"fmt"
	"sync"
	"testing"

	"github.com/dingodb/coordinator-metacatalog/proto"
	"github.com/stretchr/testify/require"
)

// fakeRegionService hands out sequential region ids and never fails,
// unless failAfter is set to make the N-th CreateRegion call error, used
// to exercise the partial-failure compensation path.
type fakeRegionService struct {
	lock      sync.Mutex
	next      uint64
	created   map[uint64]bool
	dropped   []uint64
	failAfter int  // 0 means never fail
	failDrop  bool // make every DropRegion call error, to exercise compensation failure
	calls     int
}

func newFakeRegionService() *fakeRegionService {
	return &fakeRegionService{created: make(map[uint64]bool)}
}

func (f *fakeRegionService) CreateRegion(ctx context.Context, name string, regionType proto.RegionType, rng proto.Range, schemaID, ownerID uint64, indexParameter *proto.IndexParameter, replica int) (uint64, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls++
	if f.failAfter > 0 && f.calls > f.failAfter {
		return 0, fmt.Errorf("region allocator out of capacity")
	}
	f.next++
	f.created[f.next] = true
	return f.next, nil
}

func (f *fakeRegionService) DropRegion(ctx context.Context, regionID uint64) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.failDrop {
		return fmt.Errorf("region allocator unreachable")
	}
	delete(f.created, regionID)
	f.dropped = append(f.dropped, regionID)
	return nil
}

type fakeAutoIncrementService struct {
	lock      sync.Mutex
	created   map[uint64]bool
	deleted   map[uint64]bool
	failOwner uint64
}

func newFakeAutoIncrementService() *fakeAutoIncrementService {
	return &fakeAutoIncrementService{created: make(map[uint64]bool), deleted: make(map[uint64]bool)}
}

func (f *fakeAutoIncrementService) SyncCreate(ctx context.Context, ownerID uint64) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.failOwner != 0 && ownerID == f.failOwner {
		return fmt.Errorf("auto-increment series allocator down")
	}
	f.created[ownerID] = true
	return nil
}

func (f *fakeAutoIncrementService) AsyncDelete(ctx context.Context, ownerID uint64) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.deleted[ownerID] = true
}

// newTestCatalog builds a Catalog with the default loopback log and
// in-memory-only id/epoch allocator (no RocksDB), which is enough to
// exercise every Meta-Increment Builder/applier path without standing up
// a real region allocator or consensus transport.
func newTestCatalog(t *testing.T, regionSvc RegionService, autoIncrSvc AutoIncrementService) *Catalog {
	t.Helper()
	cfg := &Config{
		SelfNodeID:           1,
		RegionService:        regionSvc,
		AutoIncrementService: autoIncrSvc,
	}
	cat, err := catalogNew(t, cfg)
	require.NoError(t, err)
	require.NoError(t, cat.LeaderChange(1))
	return cat
}

func catalogNew(t *testing.T, cfg *Config) (*Catalog, error) {
	t.Helper()
	return NewCatalog(context.Background(), cfg)
}

func rng(start, end string) proto.Range {
	return proto.Range{StartKey: []byte(start), EndKey: []byte(end)}
}

func rangePartition(ranges ...proto.Range) *proto.TablePartition {
	return &proto.TablePartition{RangePartition: &proto.RangePartition{Ranges: ranges}}
}

func indexRangePartition(ranges ...proto.Range) *proto.IndexPartition {
	return &proto.IndexPartition{RangePartition: &proto.RangePartition{Ranges: ranges}}
}
