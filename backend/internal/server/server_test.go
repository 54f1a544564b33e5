package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lxzan/gws"

	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/hub"
	"github.com/soar/xrplayground/backend/internal/scene"
	"github.com/soar/xrplayground/backend/internal/session"
)

var frontend = fstest.MapFS{
	"index.html": {Data: []byte("<!DOCTYPE html>\n<html>\n  <head>\n    <!-- debug view -->\n    <title>xr</title>\n  </head>\n  <body>\n    <p>hello</p>\n  </body>\n</html>\n")},
	"app.js":     {Data: []byte("// feed\nfunction  add ( a ,  b ) {\n  return a + b;\n}\n")},
	"icon.png":   {Data: []byte("\x89PNG raw")},
}

type recorder struct {
	mu   sync.Mutex
	msgs []hub.ClientMessage
}

func (r *recorder) Apply(msg hub.ClientMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	if msg.Type == "explode" {
		return errors.New("no such command")
	}
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.msgs {
		out = append(out, m.Type)
	}
	return out
}

func newTestServer(t *testing.T, cmd hub.Commander) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard, "[TEST] ", 0)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.NewHub(logger)
	go h.Run(ctx)
	s := session.New(scene.New(), gamepad.NewVirtualSource(), session.WithLogger(logger), session.WithFrameRate(200))
	b := hub.NewBroadcaster(h, nil, nil, nil)
	s.Setup(b)
	go b.Run(ctx)
	go s.Run(ctx)

	handler, err := New(h, b, cmd, frontend, "", logger).Handler()
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (string, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: %s", url, resp.Status)
	}
	return resp.Header.Get("Content-Type"), string(body)
}

func TestServesMinifiedFrontend(t *testing.T) {
	ts := newTestServer(t, &recorder{})

	ct, body := get(t, ts.URL+"/")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("index content type = %q", ct)
	}
	if strings.Contains(body, "debug view") || strings.Contains(body, "\n  ") {
		t.Errorf("index not minified: %q", body)
	}
	if !strings.Contains(body, "hello") {
		t.Errorf("index lost its content: %q", body)
	}

	_, js := get(t, ts.URL+"/app.js")
	if strings.Contains(js, "// feed") || len(js) >= len(frontend["app.js"].Data) {
		t.Errorf("script not minified: %q", js)
	}

	_, png := get(t, ts.URL+"/icon.png")
	if png != "\x89PNG raw" {
		t.Errorf("binary asset changed: %q", png)
	}
}

func TestWebSocketFeed(t *testing.T) {
	cmd := &recorder{}
	ts := newTestServer(t, cmd)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial hub.WSMessage
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatal(err)
	}
	if initial.Type != "full" || initial.Data == nil || len(initial.Data.Controllers) != 2 {
		t.Errorf("initial message = %+v", initial)
	}

	if err := conn.WriteJSON(hub.ClientMessage{Type: "recenter"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(hub.ClientMessage{Type: "explode"}); err != nil {
		t.Fatal(err)
	}
	// Status syncs may arrive before the reply.
	var reply hub.WSMessage
	for reply.Type == "" || reply.Type == "full" {
		reply = hub.WSMessage{}
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatal(err)
		}
	}
	if reply.Type != "error" || !strings.Contains(reply.Error, "no such command") {
		t.Errorf("reply = %+v", reply)
	}
	if got := cmd.types(); len(got) != 2 || got[0] != "recenter" {
		t.Errorf("commands = %v", got)
	}
}

type gwsRecorder struct {
	gws.BuiltinEventHandler
	msgs chan hub.WSMessage
}

func (r *gwsRecorder) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	var msg hub.WSMessage
	if err := json.Unmarshal(message.Bytes(), &msg); err == nil {
		r.msgs <- msg
	}
}

func (r *gwsRecorder) next(t *testing.T) hub.WSMessage {
	t.Helper()
	select {
	case msg := <-r.msgs:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("no message")
	}
	return hub.WSMessage{}
}

// The feed must work with clients other than gorilla's.
func TestWebSocketFeedWithGws(t *testing.T) {
	cmd := &recorder{}
	ts := newTestServer(t, cmd)

	rec := &gwsRecorder{msgs: make(chan hub.WSMessage, 8)}
	socket, _, err := gws.NewClient(rec, &gws.ClientOption{
		Addr: "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws",
	})
	if err != nil {
		t.Fatal(err)
	}
	go socket.ReadLoop()
	defer socket.WriteClose(1000, nil)

	if msg := rec.next(t); msg.Type != "full" || msg.Data == nil || len(msg.Data.Controllers) != 2 {
		t.Errorf("initial message = %+v", msg)
	}

	data, _ := json.Marshal(hub.ClientMessage{Type: "explode"})
	if err := socket.WriteMessage(gws.OpcodeText, data); err != nil {
		t.Fatal(err)
	}
	msg := rec.next(t)
	for msg.Type == "full" {
		msg = rec.next(t)
	}
	if msg.Type != "error" {
		t.Errorf("reply = %+v", msg)
	}
}
