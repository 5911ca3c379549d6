package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stefank0/djangomon/internal/catalog"
	"github.com/stefank0/djangomon/internal/config"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/storage"
)

const testToken = "s3cret"

// Normal and ghost cannot touch each other, so gengar only ever stalemates.
const testCatalog = `
types:
  - name: normal
    no_effect_against: [ghost]
  - name: ghost
    no_effect_against: [normal]
natures:
  - name: hardy
  - name: adamant
    increased: attack
    decreased: special-attack
abilities: [levitate]
species:
  - {number: 94, name: gengar, types: [ghost], base_stats: 90}
  - {number: 143, name: snorlax, types: [normal], base_stats: 80}
  - {number: 399, name: bidoof, types: [normal], base_stats: 40}
  - {number: 400, name: bibarel, types: [normal], evolves_from: bidoof, base_stats: 60}
moves:
  - {name: tackle, type: normal, damage_class: physical, power: 40}
  - {name: body-slam, type: normal, damage_class: physical, power: 85, noteworthy: true}
  - {name: shadow-ball, type: ghost, damage_class: special, power: 80}
combatants:
  - {species: gengar, nature: hardy, ability: levitate, moves: [shadow-ball]}
  - {species: snorlax, nature: adamant, moves: [tackle, body-slam]}
  - {species: bibarel, nature: hardy, moves: [tackle]}
`

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testServer struct {
	router *gin.Engine
	hub    *Hub
	repo   storage.Repository
}

func newTestServer(t *testing.T, token string) *testServer {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	db, err := storage.OpenAndMigrate("file:"+t.Name()+"?mode=memory&cache=shared", cat)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	repo := storage.NewSQLiteRepository(db)
	chart, err := storage.LoadTypeChart(repo)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub()
	h := NewBattleHandler(ctx, repo, engine.New(chart, engine.DefaultOptions()), hub,
		config.TournamentConfig{Workers: 2, Seed: 1})
	router := gin.New()
	RegisterRoutes(router, h, token)
	return &testServer{router: router, hub: hub, repo: repo}
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
