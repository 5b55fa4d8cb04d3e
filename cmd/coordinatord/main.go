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

package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/cubefs/cubefs/blobstore/common/config"
	"github.com/cubefs/cubefs/blobstore/common/trace"
	"github.com/cubefs/cubefs/blobstore/util/errors"
	"github.com/cubefs/cubefs/blobstore/util/log"
	_ "github.com/cubefs/cubefs/blobstore/util/version"
	"github.com/dingodb/coordinator-metacatalog/master/catalog"
	"github.com/dingodb/coordinator-metacatalog/proto"
)

// Config is the on-disk config for the coordinatord binary: the
// catalog's own Config embedded alongside the process-level knobs this
// core's teacher (cmd.go) also exposed.
type Config struct {
	catalog.Config

	MaxProcessors int       `json:"max_processors"`
	LogLevel      log.Level `json:"log_level"`
}

func main() {
	config.Init("f", "", "coordinatord.json")

	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		log.Fatal(errors.Detail(err))
	}

	if cfg.MaxProcessors > 0 {
		runtime.GOMAXPROCS(cfg.MaxProcessors)
	}
	modifyOpenFiles()
	log.SetOutputLevel(cfg.LogLevel)

	cfg.Config.RegionService = &unimplementedRegionService{}
	cfg.Config.AutoIncrementService = &unimplementedAutoIncrementService{}

	_, ctx := trace.StartSpanFromContext(context.Background(), "coordinatord")
	cat, err := catalog.NewCatalog(ctx, &cfg.Config)
	if err != nil {
		log.Fatalf("catalog init failed: %s", errors.Detail(err))
	}
	defer cat.Close()

	if err := cat.LeaderChange(cfg.Config.SelfNodeID); err != nil {
		log.Fatalf("leader change failed: %s", errors.Detail(err))
	}

	log.Info("coordinatord started")

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	<-ch
}

func modifyOpenFiles() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Fatalf("getting rlimit failed: %s", err)
	}
	log.Info("system limit: ", rLimit)

	if rLimit.Cur >= 102400 && rLimit.Max >= 102400 {
		return
	}

	rLimit.Cur = 1024000
	rLimit.Max = 1024000
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Fatalf("setting rlimit failed: %s", err)
	}
}

// unimplementedRegionService and unimplementedAutoIncrementService stand
// in for the region allocator and auto-increment subsystems, both out of
// this core's scope. A real deployment replaces cfg.Config.RegionService/
// AutoIncrementService with clients of those subsystems before starting
// coordinatord; left as the default, every create fails loudly instead
// of silently fabricating regions.
type unimplementedRegionService struct{}

func (*unimplementedRegionService) CreateRegion(ctx context.Context, name string, regionType proto.RegionType, rng proto.Range, schemaID, ownerID uint64, indexParameter *proto.IndexParameter, replica int) (uint64, error) {
	return 0, errors.New("region service not configured")
}

func (*unimplementedRegionService) DropRegion(ctx context.Context, regionID uint64) error {
	return errors.New("region service not configured")
}

type unimplementedAutoIncrementService struct{}

func (*unimplementedAutoIncrementService) SyncCreate(ctx context.Context, ownerID uint64) error {
	return errors.New("auto-increment service not configured")
}

func (*unimplementedAutoIncrementService) AsyncDelete(ctx context.Context, ownerID uint64) {}
