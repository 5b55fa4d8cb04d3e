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
	"bytes"
	"context"
	"fmt"

	cerrors "github.com/dingodb/coordinator-metacatalog/errors"
	"github.com/dingodb/coordinator-metacatalog/metrics"
	"github.com/dingodb/coordinator-metacatalog/proto"
	"github.com/prometheus/client_golang/prometheus"
)

var minKeySeed = bytes.Repeat([]byte{0x00}, 10)
var maxKeySeed = bytes.Repeat([]byte{0xff}, 10)

// catalogMetrics is the generalization of
// coordinator_bvar_metrics_table_/coordinator_bvar_metrics_index_: a
// per-entity gauge that is created the first time an entity's metrics are
// computed and retired when the entity is dropped or its periodic
// recompute finds it gone.
type catalogMetrics struct {
	tableRows  *prometheus.GaugeVec
	tableParts *prometheus.GaugeVec
	indexRows  *prometheus.GaugeVec
	indexParts *prometheus.GaugeVec
}

func newCatalogMetrics() *catalogMetrics {
	m := &catalogMetrics{
		tableRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "coordinator", Name: "table_rows", Help: "aggregated row count across a table's regions",
		}, []string{"table_id"}),
		tableParts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "coordinator", Name: "table_part_count", Help: "declared partition count for a table",
		}, []string{"table_id"}),
		indexRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "coordinator", Name: "index_rows", Help: "aggregated row count across an index's regions",
		}, []string{"index_id"}),
		indexParts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "coordinator", Name: "index_part_count", Help: "declared partition count for an index",
		}, []string{"index_id"}),
	}
	// metrics.Registry is process-wide: a second Catalog in the same process
	// reuses the gauges the first one registered.
	register := func(g *prometheus.GaugeVec) *prometheus.GaugeVec {
		if err := metrics.Registry.Register(g); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			return are.ExistingCollector.(*prometheus.GaugeVec)
		}
		return g
	}
	m.tableRows, m.tableParts = register(m.tableRows), register(m.tableParts)
	m.indexRows, m.indexParts = register(m.indexRows), register(m.indexParts)
	return m
}

func (m *catalogMetrics) updateTable(id uint64, rows uint64, parts int) {
	label := fmt.Sprintf("%d", id)
	m.tableRows.WithLabelValues(label).Set(float64(rows))
	m.tableParts.WithLabelValues(label).Set(float64(parts))
}

func (m *catalogMetrics) deleteTable(id uint64) {
	label := fmt.Sprintf("%d", id)
	m.tableRows.DeleteLabelValues(label)
	m.tableParts.DeleteLabelValues(label)
}

func (m *catalogMetrics) updateIndex(id uint64, rows uint64, parts int) {
	label := fmt.Sprintf("%d", id)
	m.indexRows.WithLabelValues(label).Set(float64(rows))
	m.indexParts.WithLabelValues(label).Set(float64(parts))
}

func (m *catalogMetrics) deleteIndex(id uint64) {
	label := fmt.Sprintf("%d", id)
	m.indexRows.DeleteLabelValues(label)
	m.indexParts.DeleteLabelValues(label)
}

// GetTableMetrics returns the cached metrics for tableID, computing them
// on a cold cache — it never recomputes a value that's already cached;
// only the periodic sweep (sweep.go) refreshes a warm entry. Concurrent
// cold calls for the same id collapse into one computation via
// singleflight, grounded on the pack's use of golang.org/x/sync.
func (c *Catalog) GetTableMetrics(ctx context.Context, tableID uint64) (*proto.TableMetrics, error) {
	if cached, ok := c.store.tableMetrics.Get(tableID); ok {
		return cached, nil
	}

	key := fmt.Sprintf("table:%d", tableID)
	v, err, _ := c.metricsGroup.Do(key, func() (interface{}, error) {
		return c.computeTableMetrics(tableID)
	})
	if err != nil {
		return nil, err
	}
	m := v.(*proto.TableMetrics)
	c.store.tableMetrics.Put(tableID, m)
	c.metrics.updateTable(tableID, m.RowsCount, m.PartCount)
	return m, nil
}

func (c *Catalog) GetIndexMetrics(ctx context.Context, indexID uint64) (*proto.IndexMetrics, error) {
	if cached, ok := c.store.indexMetrics.Get(indexID); ok {
		return cached, nil
	}

	key := fmt.Sprintf("index:%d", indexID)
	v, err, _ := c.metricsGroup.Do(key, func() (interface{}, error) {
		return c.computeIndexMetrics(indexID)
	})
	if err != nil {
		return nil, err
	}
	m := v.(*proto.IndexMetrics)
	c.store.indexMetrics.Put(indexID, m)
	c.metrics.updateIndex(indexID, m.RowsCount, m.PartCount)
	return m, nil
}

// computeTableMetrics is grounded on CalculateTableMetricsSingle in
// coordinator_control_meta.cc: part_count is always the table's declared
// partition count, even when some of its regions are missing or haven't
// reported metrics yet — a skipped region just doesn't contribute rows or
// move the min/max key bounds. The key bounds are the smallest MinKey and
// largest MaxKey the reporting regions give; with no reporting region they
// stay at minKeySeed/maxKeySeed.
func (c *Catalog) computeTableMetrics(tableID uint64) (*proto.TableMetrics, error) {
	t, ok := c.store.tables.Get(tableID)
	if !ok {
		// distinct from ErrTableNotFound (GetTable's error): this is the
		// aggregation-path lookup, grounded on CalculateTableMetricsSingle
		// returning failure whenever table_map_.Get fails, which the
		// caller translates to ETABLE_METRICS_FAILED rather than
		// ETABLE_NOT_FOUND.
		return nil, cerrors.ErrTableMetricsFailed
	}

	m := &proto.TableMetrics{MinKey: minKeySeed, MaxKey: maxKeySeed, PartCount: len(t.Partitions)}
	seen := false
	for _, p := range t.Partitions {
		region, ok := c.store.regions.Get(p.RegionID)
		if !ok || !region.HasMetrics {
			continue
		}
		m.RowsCount += region.Metrics.RowCount
		if !seen || bytes.Compare(region.Metrics.MinKey, m.MinKey) < 0 {
			m.MinKey = region.Metrics.MinKey
		}
		if !seen || bytes.Compare(region.Metrics.MaxKey, m.MaxKey) > 0 {
			m.MaxKey = region.Metrics.MaxKey
		}
		seen = true
	}
	return m, nil
}

func (c *Catalog) computeIndexMetrics(indexID uint64) (*proto.IndexMetrics, error) {
	idx, ok := c.store.indexes.Get(indexID)
	if !ok {
		// see computeTableMetrics: the aggregation-path analogue of
		// ErrIndexNotFound, grounded on CalculateIndexMetricsSingle.
		return nil, cerrors.ErrIndexMetricsFailed
	}

	m := &proto.IndexMetrics{MinKey: minKeySeed, MaxKey: maxKeySeed, PartCount: len(idx.Partitions)}
	seen := false
	for _, p := range idx.Partitions {
		region, ok := c.store.regions.Get(p.RegionID)
		if !ok || !region.HasMetrics {
			continue
		}
		m.RowsCount += region.Metrics.RowCount
		if !seen || bytes.Compare(region.Metrics.MinKey, m.MinKey) < 0 {
			m.MinKey = region.Metrics.MinKey
		}
		if !seen || bytes.Compare(region.Metrics.MaxKey, m.MaxKey) > 0 {
			m.MaxKey = region.Metrics.MaxKey
		}
		seen = true
	}
	return m, nil
}
