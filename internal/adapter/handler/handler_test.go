package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/scrum-assistant/internal/adapter/dto/session"
	"github.com/johnquangdev/scrum-assistant/internal/adapter/repository"
	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/cache"
	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/storage"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/ceremony"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/meeting"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/summary"
	"github.com/johnquangdev/scrum-assistant/pkg/validator"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type testServer struct {
	e     *echo.Echo
	clock *clock.Mock
	svc   *meeting.MeetingService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(t0)

	store := cache.NewMemoryStore(mock)
	t.Cleanup(func() { _ = store.Close() })

	docs, err := storage.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	catalog, err := ceremony.Default()
	require.NoError(t, err)

	svc := meeting.NewMeetingService(
		repository.NewSessionRepository(store, 0, nil),
		summary.NewGenerator(docs, nil, nil),
		catalog,
		nil,
		meeting.WithClock(mock),
	)
	t.Cleanup(svc.Close)

	e := echo.New()
	e.Validator = validator.New()
	NewRouter(
		mock,
		NewCollectionHandler(docs, nil),
		NewSessionHandler(svc, clock.New(), 5*time.Millisecond, nil),
		NewSummaryHandler(svc, nil),
		NewCeremonyHandler(catalog, nil),
	).Setup(e)

	return testServer{e: e, clock: mock, svc: svc}
}

func (s testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// data decodes the "data" field of a success envelope
func data(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// errorCode returns the "code" field of an error body
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"backend","time":"2026-03-02T09:00:00.000Z"}`, rec.Body.String())
}

func TestCollections(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/projects", `{"id":"client","name":"Alpha","tags":["a"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var first map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.NotEqual(t, "client", first["id"])
	assert.NotEmpty(t, first["id"])
	assert.Equal(t, "Alpha", first["name"])

	rec = s.do(t, http.MethodPost, "/api/projects", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var empty map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Len(t, empty, 1)

	rec = s.do(t, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, first["id"], list[0]["id"])
	assert.Equal(t, empty["id"], list[1]["id"])

	rec = s.do(t, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCollections_RejectsNonObjects(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/tasks", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "STORAGE_INVALID_RECORD", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/tasks", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PAYLOAD", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/tasks", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

type failingStore struct{}

func (failingStore) List(context.Context, string) ([]repositories.Document, error) {
	return []repositories.Document{}, nil
}

func (failingStore) Append(context.Context, string, any) (repositories.Document, error) {
	return repositories.Document{}, stdErrors.Join(repositories.ErrWriteFailed, stdErrors.New("disk full"))
}

func TestCollections_WriteFailure(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"name":"x"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewCollectionHandler(failingStore{}, nil)
	require.NoError(t, h.Append(repositories.CollectionProjects)(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "STORAGE_WRITE_FAILED", body.Code)
	assert.Equal(t, "projects", body.Details["collection"])
}

func TestCeremonies(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/ceremonies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []ceremony.Ceremony
	data(t, rec, &all)
	assert.Len(t, all, 4)

	rec = s.do(t, http.MethodGet, "/api/ceremonies/Retrospective", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var one ceremony.Ceremony
	data(t, rec, &one)
	assert.Equal(t, entities.MeetingTypeRetrospective, one.Type)

	rec = s.do(t, http.MethodGet, "/api/ceremonies/kickoff", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func (s testServer) createSession(t *testing.T, body string) session.SessionResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created session.SessionResponse
	data(t, rec, &created)
	return created
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	created := s.createSession(t, `{"type":"Standup","participants":[{"name":"Alice","role":"Dev"},{"name":"Bob"}],"objectives":["Share progress"]}`)
	assert.Equal(t, "Daily Standup", created.Title)
	assert.Equal(t, "standup", created.Type)
	assert.Equal(t, "idle", created.Status)
	assert.Equal(t, "00:00:00", created.Elapsed)
	base := "/api/sessions/" + created.ID

	rec := s.do(t, http.MethodPost, base+"/start", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	s.clock.Add(10 * time.Second)
	rec = s.do(t, http.MethodPost, base+"/events", `{"kind":"note_edited","actor":"Alice","text":"Discuss X"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ev session.EventResponse
	data(t, rec, &ev)
	require.NotNil(t, ev.Text)
	assert.Equal(t, "Discuss X", *ev.Text)
	assert.Nil(t, ev.On)

	s.clock.Add(10 * time.Second)
	rec = s.do(t, http.MethodPost, base+"/events", `{"kind":"objective_toggled","actor":"Bob","index":0,"completed":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	s.clock.Add(10 * time.Second)
	rec = s.do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view session.SessionResponse
	data(t, rec, &view)
	assert.Equal(t, "active", view.Status)
	assert.Equal(t, int64(30), view.ElapsedSeconds)
	assert.Equal(t, "Discuss X", view.CurrentNote)
	assert.Len(t, view.Events, 2)
	assert.True(t, view.Objectives[0].Completed)

	rec = s.do(t, http.MethodPost, base+"/end", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stored entities.StoredSummary
	data(t, rec, &stored)
	assert.Equal(t, int64(30), stored.DurationSeconds)
	assert.Equal(t, 1, stored.ObjectivesCompleted)
	assert.Equal(t, []string{"Discuss X"}, stored.KeyDiscussions)

	rec = s.do(t, http.MethodPost, base+"/end", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SESSION_INVALID_TRANSITION", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, base+"/events", `{"kind":"note_edited","text":"late"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/summaries/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var found entities.StoredSummary
	data(t, rec, &found)
	assert.Equal(t, stored.ID, found.ID)

	rec = s.do(t, http.MethodGet, "/api/summaries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Total int `json:"total"`
	}
	data(t, rec, &list)
	assert.Equal(t, 1, list.Total)

	rec = s.do(t, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats entities.DashboardStats
	data(t, rec, &stats)
	assert.Equal(t, 1, stats.TotalMeetings)
	assert.Equal(t, int64(30), stats.AvgDurationSeconds)
	assert.Equal(t, entities.MeetingTypeStandup, stats.MeetingTypes[0].Type)
	assert.Equal(t, 100, stats.MeetingTypes[0].Percentage)
	assert.Zero(t, stats.OpenActionItems)
}

func TestSession_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/sessions", `{"type":"kickoff"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/sessions", `{"type":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PAYLOAD", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, rec))

	created := s.createSession(t, `{"type":"review","participants":[{"name":"Alice"}],"objectives":["Demo"]}`)
	base := "/api/sessions/" + created.ID

	rec = s.do(t, http.MethodPost, base+"/summary", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SESSION_INVALID_STATE", errorCode(t, rec))

	rec = s.do(t, http.MethodPut, base+"/participants", `{"participants":[{"name":"Bob"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, base+"/start", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, base+"/participants", `{"participants":[{"name":"Carol"}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, base+"/events", `{"kind":"mic_toggled","actor":"Bob"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, base+"/events", `{"kind":"objective_toggled","index":3,"completed":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "SESSION_INVALID_EVENT", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, base+"/events", `{"kind":"note_edited","actor":"Alice","text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "SESSION_INVALID_EVENT", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/summaries/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SUMMARY_NOT_FOUND", errorCode(t, rec))
}

func TestShare(t *testing.T) {
	s := newTestServer(t)
	created := s.createSession(t, `{"type":"standup","participants":[{"name":"Alice"}]}`)
	base := "/api/sessions/" + created.ID

	rec := s.do(t, http.MethodPost, base+"/abandon", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, tc := range []struct {
		channel   string
		want      string
		urlPrefix string
	}{
		{channel: "", want: "text"},
		{channel: "text", want: "text"},
		{channel: "email", want: "email", urlPrefix: "mailto:?"},
		{channel: "whatsapp", want: "whatsapp", urlPrefix: "https://wa.me/?text="},
		{channel: "slack", want: "slack"},
	} {
		t.Run(tc.want+"/"+tc.channel, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/summaries/"+created.ID+"/share?channel="+tc.channel, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp struct {
				Channel string `json:"channel"`
				Text    string `json:"text"`
				URL     string `json:"url"`
			}
			data(t, rec, &resp)
			assert.Equal(t, tc.want, resp.Channel)
			assert.NotEmpty(t, resp.Text)
			if tc.urlPrefix == "" {
				assert.Empty(t, resp.URL)
			} else {
				assert.True(t, strings.HasPrefix(resp.URL, tc.urlPrefix), resp.URL)
			}
		})
	}

	rec = s.do(t, http.MethodGet, "/api/summaries/"+created.ID+"/share?channel=fax", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClockStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.e)
	defer srv.Close()
	ctx := context.Background()

	created := s.createSession(t, `{"type":"standup","participants":[{"name":"Alice"}]}`)
	_, err := s.svc.Start(ctx, created.ID)
	require.NoError(t, err)
	s.clock.Add(65 * time.Second)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/" + created.ID + "/clock"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	var frame session.ClockFrame
	require.NoError(t, ws.ReadJSON(&frame))
	assert.Equal(t, created.ID, frame.SessionID)
	assert.Equal(t, "active", frame.Status)
	assert.Equal(t, int64(65), frame.ElapsedSeconds)
	assert.Equal(t, "00:01:05", frame.Display)

	_, err = s.svc.End(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for frame.Status != "ended" {
		require.NoError(t, ws.ReadJSON(&frame))
	}
	assert.Equal(t, int64(65), frame.ElapsedSeconds)

	_, _, err = ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestClockStream_UnknownSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/sessions/missing/clock", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, rec))
}
