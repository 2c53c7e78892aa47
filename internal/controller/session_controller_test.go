package controller_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/boardtutor-backend/internal/controller"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	sm := service.NewSessionManager(service.ManagerConfig{})
	t.Cleanup(sm.Close)
	app := fiber.New()
	controller.SetupRoutes(app, service.NewSessionService(sm), []string{"http://localhost:5173"})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, client, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if client != "" {
		req.Header.Set("X-Client-ID", client)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeView(t *testing.T, data []byte) service.SessionView {
	t.Helper()
	var v service.SessionView
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func createSession(t *testing.T, app *fiber.App, body string) service.SessionView {
	t.Helper()
	status, data := do(t, app, http.MethodPost, "/api/sessions", "alice", body)
	require.Equal(t, fiber.StatusCreated, status, string(data))
	return decodeView(t, data)
}

func TestClientIDRequired(t *testing.T) {
	app := newApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/lessons", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodGet, "/api/lessons?clientId=alice", "", "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestSessionLifecycle(t *testing.T) {
	app := newApp(t)
	view := createSession(t, app, `{"variant":"chess"}`)
	base := "/api/sessions/" + view.ID

	status, _ := do(t, app, http.MethodPost, base+"/click", "alice", `{"x":6,"y":0}`)
	require.Equal(t, fiber.StatusOK, status)
	status, data := do(t, app, http.MethodPost, base+"/click", "alice", `{"x":5,"y":2}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"Ng1-f3"}, decodeView(t, data).State.MoveHistory)

	status, data = do(t, app, http.MethodGet, base, "bob", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, model.Black, decodeView(t, data).State.Turn)

	status, _ = do(t, app, http.MethodPost, base+"/undo", "bob", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, data = do(t, app, http.MethodPost, base+"/flip", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, decodeView(t, data).State.Flipped)

	status, data = do(t, app, http.MethodPost, base+"/reset", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decodeView(t, data).State.MoveHistory)

	status, _ = do(t, app, http.MethodDelete, base, "alice", "")
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = do(t, app, http.MethodGet, base, "alice", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPromoteEndpoint(t *testing.T) {
	app := newApp(t)
	view := createSession(t, app, `{"variant":"chess","lesson":"promotion"}`)
	base := "/api/sessions/" + view.ID

	do(t, app, http.MethodPost, base+"/click", "alice", `{"x":4,"y":6}`)
	status, data := do(t, app, http.MethodPost, base+"/click", "alice", `{"x":4,"y":7}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, model.PhaseAwaitingPromotion, decodeView(t, data).State.Phase)

	status, _ = do(t, app, http.MethodPost, base+"/promote", "alice", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, data = do(t, app, http.MethodPost, base+"/promote", "alice", `{"type":"queen"}`)
	require.Equal(t, fiber.StatusOK, status)
	got := decodeView(t, data)
	assert.True(t, got.Completed)
	assert.Equal(t, model.Queen, got.State.Board.At(model.Pos(4, 7)).Type)
}

func TestAnswerEndpoint(t *testing.T) {
	app := newApp(t)
	status, data := do(t, app, http.MethodPost, "/api/sessions", "alice", `{"variant":"xiangqi","lesson":"palace-quiz"}`)
	require.Equal(t, fiber.StatusCreated, status, string(data))
	assert.NotContains(t, string(data), "correct", "answers leaked to the client")
	view := decodeView(t, data)
	require.NotNil(t, view.Lesson)
	require.Len(t, view.Lesson.Options, 3)
	base := "/api/sessions/" + view.ID

	status, data = do(t, app, http.MethodPost, base+"/answer", "alice", `{"option":1}`)
	require.Equal(t, fiber.StatusOK, status, string(data))
	got := decodeView(t, data)
	assert.True(t, got.Completed)
	require.NotNil(t, got.Answer)
	assert.Equal(t, 1, *got.Answer)

	status, _ = do(t, app, http.MethodPost, base+"/answer", "alice", `{"option":`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	game := createSession(t, app, `{"variant":"chess"}`)
	status, _ = do(t, app, http.MethodPost, "/api/sessions/"+game.ID+"/answer", "alice", `{"option":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestBadRequests(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "unknown variant", method: http.MethodPost, path: "/api/sessions", body: `{"variant":"go"}`, want: fiber.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, path: "/api/sessions", body: `{"variant":`, want: fiber.StatusBadRequest},
		{name: "unknown lesson variant", method: http.MethodGet, path: "/api/lessons?variant=shogi", want: fiber.StatusBadRequest},
		{name: "missing session", method: http.MethodPost, path: "/api/sessions/nope/click", body: `{"x":0,"y":0}`, want: fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, app, tt.method, tt.path, "alice", tt.body)
			assert.Equal(t, tt.want, status, string(data))

			var body map[string]string
			require.NoError(t, json.Unmarshal(data, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestListLessons(t *testing.T) {
	app := newApp(t)

	status, data := do(t, app, http.MethodGet, "/api/lessons?variant=xiangqi", "alice", "")
	require.Equal(t, fiber.StatusOK, status)

	var body struct {
		Lessons []struct {
			ID      string `json:"id"`
			Variant string `json:"variant"`
		} `json:"lessons"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	require.NotEmpty(t, body.Lessons)
	assert.Equal(t, "general", body.Lessons[0].ID)
	assert.Equal(t, "xiangqi", body.Lessons[0].Variant)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newApp(t)
	status, _ := do(t, app, http.MethodGet, "/ws/session/abc", "alice", "")
	assert.Equal(t, fiber.StatusUpgradeRequired, status)
}
