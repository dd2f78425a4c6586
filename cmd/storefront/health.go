package main

import (
	"context"
	"time"

	"github.com/gookit/slog"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type statusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// checkDB reports SERVING while the database answers a ping.
func checkDB(ctx context.Context, db pinger, hs statusSetter) healthpb.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := db.Ping(pingCtx); err != nil {
		slog.Warnf("[health] database ping failed: %v", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", st)
	return st
}

func watchDB(ctx context.Context, db pinger, hs statusSetter, every time.Duration) {
	checkDB(ctx, db, hs)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			checkDB(ctx, db, hs)
		}
	}
}
