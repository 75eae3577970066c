package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/app"
	"github.com/gorilla/websocket"
)

func TestWebSocketSummaryStream(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	// Prime the guest session so answers are accepted.
	getQuestions(t, server, "/questions/Cinema/guest", map[string]string{"X-Session-Id": "ws1"})

	u := "ws" + server.URL[len("http"):] + "/ws?guest=true&sessionId=ws1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives first.
	typ, _ := readNext(t, conn)
	if typ != "summary" {
		t.Fatalf("expected summary, got %s", typ)
	}

	answer := map[string]any{
		"type": "answer",
		"payload": map[string]any{
			"questionId":     "cinema-01",
			"selectedOption": "A",
		},
	}
	if err := conn.WriteJSON(answer); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	answerSeen := false
	summarySeen := false
	for i := 0; i < 3 && !(answerSeen && summarySeen); i++ {
		typ, payload := readNext(t, conn)
		switch typ {
		case "answerResult":
			answerSeen = true
			var result struct {
				IsCorrect    bool `json:"isCorrect"`
				UpdatedScore int  `json:"updatedScore"`
			}
			if err := json.Unmarshal(payload, &result); err != nil {
				t.Fatalf("decode result: %v", err)
			}
			if !result.IsCorrect || result.UpdatedScore != app.CorrectAward {
				t.Fatalf("unexpected result: %+v", result)
			}
		case "summary":
			summarySeen = true
		}
	}
	if !answerSeen || !summarySeen {
		t.Fatalf("expected answerResult and summary, got answerResult=%v summary=%v", answerSeen, summarySeen)
	}
}

func TestWebSocketRejectsUnknownMessage(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?guest=true&sessionId=ws2"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if typ, _ := readNext(t, conn); typ != "summary" {
		t.Fatalf("expected initial summary, got %s", typ)
	}

	if err := conn.WriteJSON(map[string]any{"type": "nonsense"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if typ, _ := readNext(t, conn); typ != "error" {
		t.Fatalf("expected error, got %s", typ)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}
