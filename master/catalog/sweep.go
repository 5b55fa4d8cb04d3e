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
	"time"

	"github.com/cubefs/cubefs/blobstore/common/trace"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// startSweep launches the periodic metrics recompute, grounded on
// CalculateTableMetrics/CalculateIndexMetrics in
// coordinator_control_meta.cc: every already-cached table/index is
// recomputed in place, and any entity the recompute can no longer find is
// evicted from the cache and has its gauge retired — the cache never
// admits a new entity on its own, only GetTableMetrics/GetIndexMetrics do
// that. Started/stopped from LeaderChange (applier.go), not buried as an
// always-on goroutine.
func (c *Catalog) startSweep() {
	if c.cfg.MetricsSweepInterval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.sweepCancel = cancel
	c.sweepDone = make(chan struct{})

	go func() {
		defer close(c.sweepDone)
		ticker := time.NewTicker(c.cfg.MetricsSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweepOnce(ctx)
			}
		}
	}()
}

func (c *Catalog) stopSweep() {
	if c.sweepCancel == nil {
		return
	}
	c.sweepCancel()
	<-c.sweepDone
	c.sweepCancel = nil
}

func (c *Catalog) sweepOnce(ctx context.Context) {
	c.sweepTables(ctx)
	c.sweepIndexes(ctx)
}

func (c *Catalog) sweepTables(ctx context.Context) {
	span := trace.SpanFromContextSafe(ctx)
	// collect ids first: Put needs the shard's write lock, which Range's
	// read lock would block.
	var ids, stale []uint64
	c.store.tableMetrics.Range(func(id uint64, _ *proto.TableMetrics) bool {
		ids = append(ids, id)
		return true
	})
	for _, id := range ids {
		m, err := c.computeTableMetrics(id)
		if err != nil {
			stale = append(stale, id)
			continue
		}
		c.store.tableMetrics.Put(id, m)
		c.metrics.updateTable(id, m.RowsCount, m.PartCount)
	}
	for _, id := range stale {
		c.store.tableMetrics.Erase(id)
		c.metrics.deleteTable(id)
		span.Infof("retired metrics for dropped table %d", id)
	}
}

func (c *Catalog) sweepIndexes(ctx context.Context) {
	span := trace.SpanFromContextSafe(ctx)
	var ids, stale []uint64
	c.store.indexMetrics.Range(func(id uint64, _ *proto.IndexMetrics) bool {
		ids = append(ids, id)
		return true
	})
	for _, id := range ids {
		m, err := c.computeIndexMetrics(id)
		if err != nil {
			stale = append(stale, id)
			continue
		}
		c.store.indexMetrics.Put(id, m)
		c.metrics.updateIndex(id, m.RowsCount, m.PartCount)
	}
	for _, id := range stale {
		c.store.indexMetrics.Erase(id)
		c.metrics.deleteIndex(id)
		span.Infof("retired metrics for dropped index %d", id)
	}
}
