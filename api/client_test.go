package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/illing1230/ai-memory-agent-sub000/agent"
	"github.com/illing1230/ai-memory-agent-sub000/api"
	"github.com/illing1230/ai-memory-agent-sub000/cache"
	"github.com/illing1230/ai-memory-agent-sub000/core"
	"github.com/illing1230/ai-memory-agent-sub000/state"
)

func loggedInSession(t *testing.T) *state.SessionStore {
	t.Helper()
	session, err := state.OpenSession(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	user := &core.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"}
	if err := session.Login(user, "tok-abc"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return session
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth, gotUserID, gotReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserID = r.Header.Get("X-User-ID")
		gotReqID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(api.ChatRoomsResponse{})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, loggedInSession(t))
	if _, err := client.ListChatRooms(context.Background()); err != nil {
		t.Fatalf("list rooms: %v", err)
	}

	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
	if gotUserID != "user-1" {
		t.Errorf("X-User-ID = %q, want user-1", gotUserID)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID missing")
	}
}

func TestAPIErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "not a member of this room"})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, loggedInSession(t))
	_, err := client.GetChatRoom(context.Background(), "room-1")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", apiErr.Status)
	}
	if apiErr.Detail != "not a member of this room" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestListCachingAndInvalidation(t *testing.T) {
	listCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/chat-rooms":
			listCalls++
			json.NewEncoder(w).Encode(api.ChatRoomsResponse{
				Rooms: []core.ChatRoom{{ID: "room-1", Name: "general"}},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/chat-rooms":
			json.NewEncoder(w).Encode(core.ChatRoom{ID: "room-2", Name: "new"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	qc, err := cache.New(time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer qc.Close()

	client := api.NewClient(server.URL, loggedInSession(t), api.WithCache(qc))
	ctx := context.Background()

	if _, err := client.ListChatRooms(ctx); err != nil {
		t.Fatalf("first list: %v", err)
	}
	qc.Wait()

	if _, err := client.ListChatRooms(ctx); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if listCalls != 1 {
		t.Fatalf("backend hit %d times before mutation, want 1", listCalls)
	}

	// A mutation invalidates the list; the next read refetches.
	if _, err := client.CreateChatRoom(ctx, api.CreateRoomRequest{Name: "new"}); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := client.ListChatRooms(ctx); err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if listCalls != 2 {
		t.Errorf("backend hit %d times after mutation, want 2", listCalls)
	}
}

func TestUploadDocumentMultipart(t *testing.T) {
	var gotName, gotRoom, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "no file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		buf := make([]byte, header.Size)
		n, _ := file.Read(buf)
		gotContent = string(buf[:n])
		gotName = header.Filename
		gotRoom = r.FormValue("chat_room_id")

		json.NewEncoder(w).Encode(core.Document{ID: "doc-1", Name: header.Filename, Status: "processing"})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, loggedInSession(t))
	doc, err := client.UploadDocument(context.Background(), "notes.txt", strings.NewReader("hello world"), "room-1")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if gotName != "notes.txt" {
		t.Errorf("filename = %q", gotName)
	}
	if gotContent != "hello world" {
		t.Errorf("content = %q", gotContent)
	}
	if gotRoom != "room-1" {
		t.Errorf("chat_room_id = %q", gotRoom)
	}
	if doc.Status != "processing" {
		t.Errorf("status = %q", doc.Status)
	}
}

func TestSendMessageGeneratesClientID(t *testing.T) {
	var gotClientID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.SendMessageRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotClientID = req.ClientID
		json.NewEncoder(w).Encode(core.Message{ID: "msg-1", Content: req.Content, ClientID: req.ClientID})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, loggedInSession(t))
	msg, err := client.SendMessage(context.Background(), "room-1", api.SendMessageRequest{Content: "hi"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotClientID == "" {
		t.Error("client_msg_id not generated")
	}
	if msg.ClientID != gotClientID {
		t.Errorf("returned client id %q != sent %q", msg.ClientID, gotClientID)
	}
}

func TestCreateAgentTypeCarriesSchema(t *testing.T) {
	var got api.CreateAgentTypeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/agent-types" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(core.AgentType{
			ID: "type-1", Name: got.Name, Version: got.Version, ConfigSchema: got.ConfigSchema,
		})
	}))
	defer server.Close()

	schema := agent.ObjectSchema(map[string]interface{}{
		"source": agent.StringProperty("where to pull context from"),
		"mode":   agent.StringEnumProperty("extraction mode", "passive", "active"),
	}, "source")

	client := api.NewClient(server.URL, loggedInSession(t))
	agentType, err := client.CreateAgentType(context.Background(), api.CreateAgentTypeRequest{
		Name:         "summarizer",
		Version:      "1.0.0",
		ConfigSchema: schema,
	})
	if err != nil {
		t.Fatalf("create agent type: %v", err)
	}
	if agentType.ID != "type-1" {
		t.Errorf("id = %q", agentType.ID)
	}

	// The schema survives the wire round trip in displayable form.
	fields := agent.DescribeSchema(got.ConfigSchema)
	if len(fields) != 2 {
		t.Fatalf("got %d schema fields, want 2", len(fields))
	}
	if fields[0].Name != "source" || !fields[0].Required {
		t.Errorf("first field = %+v, want required source", fields[0])
	}
	if len(fields[1].Enum) != 2 {
		t.Errorf("mode enum = %v", fields[1].Enum)
	}
}

func TestPrefetchWarmsCache(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		switch r.URL.Path {
		case "/chat-rooms":
			json.NewEncoder(w).Encode(api.ChatRoomsResponse{})
		case "/memories":
			json.NewEncoder(w).Encode(api.MemoriesResponse{})
		case "/documents":
			json.NewEncoder(w).Encode(api.DocumentsResponse{})
		case "/agent-types":
			json.NewEncoder(w).Encode(api.AgentTypesResponse{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	qc, err := cache.New(time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer qc.Close()

	client := api.NewClient(server.URL, loggedInSession(t), api.WithCache(qc))
	if err := client.Prefetch(context.Background()); err != nil {
		t.Fatalf("prefetch: %v", err)
	}
	qc.Wait()

	// All four lists answered and cached.
	for _, path := range []string{"/chat-rooms", "/memories", "/documents", "/agent-types"} {
		if hits[path] != 1 {
			t.Errorf("%s hit %d times, want 1", path, hits[path])
		}
	}
	if _, err := client.ListChatRooms(context.Background()); err != nil {
		t.Fatalf("list after prefetch: %v", err)
	}
	if hits["/chat-rooms"] != 1 {
		t.Errorf("list after prefetch hit the backend")
	}
}
