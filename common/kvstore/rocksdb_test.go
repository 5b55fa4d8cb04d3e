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
	"os"
	"testing"

	"github.com/dingodb/coordinator-metacatalog/util"
	"github.com/stretchr/testify/require"
)

type testEg struct {
	engine Store
	path   string
}

func newEngine(ctx context.Context) (*testEg, error) {
	path, err := util.GenTmpPath()
	if err != nil {
		return nil, err
	}
	opt := &Option{CreateIfMissing: true, Sync: true}
	engine, err := newRocksdb(ctx, path, opt)
	if err != nil {
		return nil, err
	}
	return &testEg{engine: engine, path: path}, nil
}

func (eg *testEg) close() {
	eg.engine.Close()
	os.RemoveAll(eg.path)
}

func Test_openRocksdb(t *testing.T) {
	ctx := context.TODO()
	path, err := util.GenTmpPath()
	require.NoError(t, err)
	defer os.RemoveAll(path)

	opt := &Option{CreateIfMissing: true, ColumnFamily: []CF{"id_epoch"}}
	eg, err := newRocksdb(ctx, path, opt)
	require.NoError(t, err)
	eg.Close()

	_, err = newRocksdb(ctx, "", opt)
	require.Equal(t, errors.New("path is empty"), err)

	// reopening with the same column families must succeed
	eg, err = newRocksdb(ctx, path, opt)
	require.NoError(t, err)
	eg.Close()

	// opening without listing the existing column families must fail:
	// missing ones are created, but every existing one must be opened
	opt.ColumnFamily = []CF{"never_created"}
	_, err = newRocksdb(ctx, path, opt)
	require.Error(t, err)
}

func TestInstance_SetRawAndList(t *testing.T) {
	ctx := context.TODO()
	eg, err := newEngine(ctx)
	require.NoError(t, err)
	defer eg.close()

	require.NoError(t, eg.engine.SetRaw(ctx, defaultCF, []byte("key1"), []byte("value1")))
	require.NoError(t, eg.engine.SetRaw(ctx, defaultCF, []byte("key2"), []byte("value2")))
	require.NoError(t, eg.engine.SetRaw(ctx, defaultCF, []byte("other"), []byte("value3")))

	ls := eg.engine.List(ctx, defaultCF, []byte("key"))
	defer ls.Close()

	kg, vg, err := ls.ReadNext()
	require.NoError(t, err)
	require.Equal(t, []byte("key1"), kg.Key())
	require.Equal(t, []byte("value1"), vg.Value())
	kg.Close()
	vg.Close()

	kg, vg, err = ls.ReadNext()
	require.NoError(t, err)
	require.Equal(t, []byte("key2"), kg.Key())
	require.Equal(t, []byte("value2"), vg.Value())
	kg.Close()
	vg.Close()

	kg, _, err = ls.ReadNext()
	require.NoError(t, err)
	require.Nil(t, kg, "list must stop once the prefix is exhausted")
}

func TestInstance_ListWithoutPrefixScansEverything(t *testing.T) {
	ctx := context.TODO()
	eg, err := newEngine(ctx)
	require.NoError(t, err)
	defer eg.close()

	require.NoError(t, eg.engine.SetRaw(ctx, defaultCF, []byte("a"), []byte("1")))
	require.NoError(t, eg.engine.SetRaw(ctx, defaultCF, []byte("b"), []byte("2")))

	ls := eg.engine.List(ctx, defaultCF, nil)
	defer ls.Close()

	count := 0
	for {
		kg, _, err := ls.ReadNext()
		require.NoError(t, err)
		if kg == nil {
			break
		}
		count++
		kg.Close()
	}
	require.Equal(t, 2, count)
}

func TestInstance_SeparateColumnFamiliesDoNotLeak(t *testing.T) {
	ctx := context.TODO()
	path, err := util.GenTmpPath()
	require.NoError(t, err)
	defer os.RemoveAll(path)

	opt := &Option{CreateIfMissing: true, ColumnFamily: []CF{"id_epoch"}}
	eg, err := newRocksdb(ctx, path, opt)
	require.NoError(t, err)
	defer eg.Close()

	require.NoError(t, eg.SetRaw(ctx, CF("id_epoch"), []byte("k"), []byte("v")))
	ls := eg.List(ctx, defaultCF, nil)
	defer ls.Close()
	kg, _, err := ls.ReadNext()
	require.NoError(t, err)
	require.Nil(t, kg, "a key written to id_epoch must not show up in default")
}
