package resort_web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"alpenworks.io/resort-services/internal/store"
	"alpenworks.io/resort-services/internal/view"
)

func newTestServer(t *testing.T) *ResortWebServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	seed, err := store.NewEmbeddedSeedStore()
	require.NoError(t, err)

	lifts, err := seed.Lifts(ctx)
	require.NoError(t, err)

	server, err := newResortWebServer(seed, view.NewHub(ctx, lifts), Config{ListenAddress: ":0", PollSeconds: 5}, nil)
	require.NoError(t, err)
	return server
}

func get(t *testing.T, server *ResortWebServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func TestMapPageRenders(t *testing.T) {
	server := newTestServer(t)

	resp := get(t, server, "/map")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	require.Contains(t, body, "<svg")
	require.Contains(t, body, "lift-lines")
	require.Contains(t, body, "Weltcup-Express")
}

func TestMapPartialMarksSelection(t *testing.T) {
	server := newTestServer(t)

	resp := get(t, server, "/map/partial?selected=way-23918448")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `class="selected"`)
}

func TestLiftDetailContainsWaitAndBadge(t *testing.T) {
	server := newTestServer(t)

	// Seekarspitzbahn: hold, 3 minute wait.
	resp := get(t, server, "/lifts/way-23918610/detail")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	require.Contains(t, body, "3 minutes")
	require.Contains(t, body, "HOLD")
}

func TestLiftDetailUnknownIDIs404(t *testing.T) {
	server := newTestServer(t)

	resp := get(t, server, "/lifts/way-0/detail")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestMapAPIProjection(t *testing.T) {
	server := newTestServer(t)

	resp := get(t, server, "/api/map?selected=way-23918448")
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json"))

	var vm MapOverlayVM
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &vm))
	require.Equal(t, "way-23918448", vm.SelectedLiftID)
	require.Equal(t, len(vm.Paths), len(vm.Rows))

	var selected int
	for _, p := range vm.Paths {
		if p.Selected {
			selected++
		}
	}
	require.Equal(t, 1, selected)
}

func TestRootRedirectsToMap(t *testing.T) {
	server := newTestServer(t)

	resp := get(t, server, "/")
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, "/map", resp.Header().Get("Location"))
}
