// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// The page cache runs against an in-process miniredis server.
package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"thearchives/internal/cache"
	"thearchives/internal/catalog"
	"thearchives/internal/render"
	"thearchives/internal/route"
	"thearchives/internal/search"
)

// testEnv holds the wired handler groups and their dependencies.
type testEnv struct {
	Store     *catalog.Store
	Public    *Public
	Submit    *Submit
	Redis     *miniredis.Miniredis
	PageCache *cache.PageCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	pc := cache.NewPageCache(client, time.Minute)

	return &testEnv{
		Store:     store,
		Public:    NewPublic(store, search.New(store), route.NewResolver(store), rn, pc),
		Submit:    NewSubmit(rn, "curator@example.com"),
		Redis:     mr,
		PageCache: pc,
	}
}

// withChiURLParams attaches chi URL params to a request, as the router would.
func withChiURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
