package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/store"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

const sessionID = "abc_123"

func createAPIServer(t *testing.T, frames int) (*Server, store.Store) {
	s := store.InMemStore(0)
	ctx := context.Background()
	session := pb.NewSession(sessionID, rules.Grid{Width: 40, Height: 30}, time.Unix(1500, 0))
	require.NoError(t, s.CreateSession(ctx, session))
	for i := 0; i < frames; i++ {
		require.NoError(t, s.PushFrame(ctx, sessionID, &pb.Frame{
			Turn:  int64(i),
			Snake: []*pb.Point{{X: int32(20 + i), Y: 15}},
			Food:  &pb.Point{X: 5, Y: 5},
		}))
	}
	srv := New(":1234", s, sessionID)
	srv.PollInterval = 5 * time.Millisecond
	return srv, s
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func TestStatus(t *testing.T) {
	srv, _ := createAPIServer(t, 3)

	rr := get(srv, "/status")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := &pb.StatusResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp))
	require.Equal(t, sessionID, resp.Session.ID)
	require.True(t, resp.Session.Running())
	require.Equal(t, int64(2), resp.LastFrame.Turn)
}

func TestStatusNoFrames(t *testing.T) {
	srv, _ := createAPIServer(t, 0)

	rr := get(srv, "/status")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := &pb.StatusResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp))
	require.Nil(t, resp.LastFrame)
}

func TestStatusUnknownSession(t *testing.T) {
	srv := New(":1234", store.InMemStore(0), "missing")
	rr := get(srv, "/status")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFrames(t *testing.T) {
	srv, _ := createAPIServer(t, 5)

	tests := []struct {
		Path  string
		Turns []int64
	}{
		{"/frames", []int64{0, 1, 2, 3, 4}},
		{"/frames?limit=2", []int64{0, 1}},
		{"/frames?offset=3", []int64{3, 4}},
		{"/frames?offset=-2&limit=1", []int64{3}},
		{"/frames?offset=10", []int64{}},
	}
	for _, test := range tests {
		rr := get(srv, test.Path)
		require.Equal(t, http.StatusOK, rr.Code, test.Path)

		resp := &pb.ListFramesResponse{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp), test.Path)
		require.Equal(t, int32(len(test.Turns)), resp.Count, test.Path)
		turns := []int64{}
		for _, f := range resp.Frames {
			turns = append(turns, f.Turn)
		}
		require.Equal(t, test.Turns, turns, test.Path)
	}
}

func TestFramesBadParams(t *testing.T) {
	srv, _ := createAPIServer(t, 1)

	require.Equal(t, http.StatusBadRequest, get(srv, "/frames?offset=abc").Code)
	require.Equal(t, http.StatusBadRequest, get(srv, "/frames?limit=-1").Code)
}

func TestCORS(t *testing.T) {
	srv, _ := createAPIServer(t, 1)

	req, _ := http.NewRequest("GET", "/status", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func dial(t *testing.T, srv *Server) (*websocket.Conn, func()) {
	ts := httptest.NewServer(srv.Handler())
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/socket"
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	return c, func() {
		c.Close()
		ts.Close()
	}
}

func readFrames(t *testing.T, c *websocket.Conn) ([]*pb.Frame, error) {
	var frames []*pb.Frame
	for {
		require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
		mt, message, err := c.ReadMessage()
		if err != nil {
			return frames, err
		}
		require.Equal(t, websocket.TextMessage, mt)
		f := &pb.Frame{}
		require.NoError(t, json.Unmarshal(message, f))
		frames = append(frames, f)
	}
}

func TestSocketCompleteSession(t *testing.T) {
	srv, s := createAPIServer(t, 3)
	require.NoError(t, s.SetSessionStatus(context.Background(), sessionID, rules.SessionStatusComplete))

	c, cleanup := dial(t, srv)
	defer cleanup()

	frames, err := readFrames(t, c)
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
	require.Len(t, frames, 3)
	require.Equal(t, int32(22), frames[2].Head().X)
}

func TestSocketFollowsLiveSession(t *testing.T) {
	srv, s := createAPIServer(t, 1)

	c, cleanup := dial(t, srv)
	defer cleanup()

	go func() {
		ctx := context.Background()
		for i := 1; i < 4; i++ {
			time.Sleep(10 * time.Millisecond)
			s.PushFrame(ctx, sessionID, &pb.Frame{Turn: int64(i)})
		}
		s.SetSessionStatus(ctx, sessionID, rules.SessionStatusComplete)
	}()

	frames, err := readFrames(t, c)
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
	require.Len(t, frames, 4)
	for i, f := range frames {
		require.Equal(t, int64(i), f.Turn)
	}
}

func TestSocketFollowsPastFrameCap(t *testing.T) {
	s := store.InMemStore(5)
	ctx := context.Background()
	session := pb.NewSession(sessionID, rules.Grid{Width: 40, Height: 30}, time.Unix(1500, 0))
	require.NoError(t, s.CreateSession(ctx, session))
	for i := 0; i < 5; i++ {
		require.NoError(t, s.PushFrame(ctx, sessionID, &pb.Frame{Turn: int64(i)}))
	}
	srv := New(":1234", s, sessionID)
	srv.PollInterval = 5 * time.Millisecond

	c, cleanup := dial(t, srv)
	defer cleanup()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
		f := &pb.Frame{}
		require.NoError(t, c.ReadJSON(f))
		require.Equal(t, int64(i), f.Turn)
	}

	go func() {
		for i := 5; i < 25; i++ {
			s.PushFrame(ctx, sessionID, &pb.Frame{Turn: int64(i)})
		}
		s.SetSessionStatus(ctx, sessionID, rules.SessionStatusComplete)
	}()

	frames, err := readFrames(t, c)
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
	require.NotEmpty(t, frames)
	require.Equal(t, int64(24), frames[len(frames)-1].Turn)
	for i := 1; i < len(frames); i++ {
		require.True(t, frames[i].Seq > frames[i-1].Seq)
	}
}

func TestSocketUnknownSession(t *testing.T) {
	srv := New(":1234", store.InMemStore(0), "missing")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/socket"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
