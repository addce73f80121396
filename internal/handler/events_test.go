package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"docit/internal/domain/models"
	"docit/internal/service/events"
)

func TestEventsStream(t *testing.T) {
	hub := events.NewHub(testLogger())
	h := NewEventsHandler(hub, testLogger())

	srv := httptest.NewServer(withSession(verifiedUser, http.HandlerFunc(h.Stream)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount(verifiedUser.UserID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// events for other users never reach this stream
	hub.Publish(models.ChangeEvent{Type: models.ChangeCreated, Entity: models.EntityFolder, UserID: otherUser.UserID, FolderID: "f-other"})
	hub.Publish(models.ChangeEvent{Type: models.ChangeUpdated, Entity: models.EntityItem, UserID: verifiedUser.UserID, FolderID: "f1", ListID: "l1", ItemID: "i1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.ChangeEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if got.Entity != models.EntityItem || got.ItemID != "i1" || got.Type != models.ChangeUpdated {
		t.Fatalf("event = %+v", got)
	}

	conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for hub.SubscriberCount(verifiedUser.UserID) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not released after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEventsRequiresSession(t *testing.T) {
	h := NewEventsHandler(events.NewHub(testLogger()), testLogger())

	rec := httptest.NewRecorder()
	h.Stream(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	expectStatus(t, rec, http.StatusUnauthorized)
}
