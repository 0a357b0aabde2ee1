package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, repoOutputs bool) *Server {
	t.Helper()
	outs := seasonOutputs()
	if !repoOutputs {
		outs = nil
	}
	repo := publish(t, outs)
	return NewServer(Config{Mode: gin.TestMode, Team: "SPVGG Dragons"}, NewLoader(repo, testFiles, nil), nil)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

/*
TestServer_Pages renders every HTML page against a published season and
checks the page-specific content.
*/
func TestServer_Pages(t *testing.T) {
	s := newTestServer(t, true)

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"SPVGG Dragons - Team Overview", "Total Runs", "215", "Top 10 Run Scorers", "Asha Rao"}},
		{"/batting", []string{"Batting Insights", "at least 5 innings", "Boundary %"}},
		{"/batting?min_innings=2", []string{"at least 2 innings"}},
		{"/batting?min_innings=oops", []string{"at least 5 innings"}},
		{"/bowling", []string{"Bowling Insights", "All Bowlers", "Right-arm medium", "Wickets vs Economy", "Overs Bowled vs Wickets"}},
		{"/fielding", []string{"Fielding Insights", "Fielders", "Asha Rao"}},
		{"/players/" + url.PathEscape("Asha Rao"), []string{"Asha Rao", "Batting", "Bowling", "Fielding"}},
		{"/players/" + url.PathEscape("Chen Wei"), []string{"No bowling data found for Chen Wei."}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s, tt.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			for _, w := range tt.want {
				assert.Contains(t, rec.Body.String(), w)
			}
		})
	}
}

func TestServer_UnknownPlayer(t *testing.T) {
	s := newTestServer(t, true)

	rec := get(t, s, "/players/Nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data found for Nobody.")

	rec = get(t, s, "/api/players/Nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"player not found","name":"Nobody"}`, rec.Body.String())
}

func TestServer_EmptyState(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{"/", "/batting", "/bowling", "/fielding"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `class="notice"`, path)
	}

	rec := get(t, s, "/api/players")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Players []string `json:"players"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Players)
	assert.Len(t, body.Missing, 4)
}

func TestServer_API(t *testing.T) {
	s := newTestServer(t, true)

	rec := get(t, s, "/api/players")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Players []string `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []string{"Asha Rao", "Chen Wei"}, list.Players)

	rec = get(t, s, "/api/players/asha%20rao")
	require.Equal(t, http.StatusOK, rec.Code)
	var prof struct {
		Name    string         `json:"name"`
		Batting map[string]any `json:"batting"`
		Bowling map[string]any `json:"bowling"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prof))
	assert.Equal(t, "Asha Rao", prof.Name)
	assert.EqualValues(t, 200, prof.Batting["runs"])
	assert.EqualValues(t, 125, prof.Batting["strike_rate"])
	assert.EqualValues(t, 8, prof.Bowling["wickets"])
	assert.Equal(t, "Right-arm medium", prof.Bowling["style"])
	for _, section := range []map[string]any{prof.Batting, prof.Bowling} {
		for key := range section {
			assert.Equal(t, strings.ToLower(key), key, "profile keys are snake_case")
		}
	}
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	s := newTestServer(t, true)
	s.cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
