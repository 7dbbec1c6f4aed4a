package conversations_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/cityfix/internal/app/features/conversations"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
	"github.com/dalemusser/cityfix/internal/domain/models"
	"github.com/dalemusser/cityfix/internal/testutil"
)

func newTestHandler(t *testing.T) (*conversations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	norm := queryspec.New(queryspec.Config{DefaultLimit: 20, MaxLimit: 100}, queryspec.Conversations())
	handler := conversations.NewHandler(db, norm, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func TestHandleOpen(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := fixtures.CreateUser(ctx, "Ada", "ada@example.com")
	other := fixtures.CreateProvider(ctx, "Bayo", "bayo@example.com", "Plumber", 6.52, 3.37, nil)

	req := testutil.NewJSONRequest(t, "POST", "/conversations", map[string]any{
		"with_user_id": other.ID.Hex(),
	})
	req = testutil.WithUser(req, testutil.SessionFor(me))

	rec := httptest.NewRecorder()
	handler.HandleOpen(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var first models.Conversation
	testutil.DecodeJSON(t, rec, &first)

	// Opening from the other side returns the same conversation.
	req = testutil.NewJSONRequest(t, "POST", "/conversations", map[string]any{
		"with_user_id": me.ID.Hex(),
	})
	req = testutil.WithUser(req, testutil.SessionFor(other))

	rec = httptest.NewRecorder()
	handler.HandleOpen(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reversed open: got %d", rec.Code)
	}
	var second models.Conversation
	testutil.DecodeJSON(t, rec, &second)
	if first.ID != second.ID {
		t.Errorf("expected one conversation per pair: %v vs %v", first.ID, second.ID)
	}
}

func TestHandleOpen_SelfAndBadID(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := fixtures.CreateUser(ctx, "Ada", "ada@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/conversations", map[string]any{
		"with_user_id": me.ID.Hex(),
	})
	req = testutil.WithUser(req, testutil.SessionFor(me))
	rec := httptest.NewRecorder()
	handler.HandleOpen(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self conversation: got %d, want 400", rec.Code)
	}

	req = testutil.NewJSONRequest(t, "POST", "/conversations", map[string]any{
		"with_user_id": "not-hex",
	})
	req = testutil.WithUser(req, testutil.SessionFor(me))
	rec = httptest.NewRecorder()
	handler.HandleOpen(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want 400", rec.Code)
	}
}

func TestSendAndListMessages(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := fixtures.CreateUser(ctx, "Ada", "ada@example.com")
	other := fixtures.CreateUser(ctx, "Bayo", "bayo@example.com")
	conv := fixtures.CreateConversation(ctx, me.ID, other.ID)

	req := testutil.NewJSONRequest(t, "POST", "/conversations/"+conv.ID.Hex()+"/messages", map[string]any{
		"body": "hello <script>alert(1)</script>there",
	})
	req = testutil.WithUser(req, testutil.SessionFor(me))
	req = testutil.WithChiURLParam(req, "id", conv.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleSend(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var msg models.Message
	testutil.DecodeJSON(t, rec, &msg)
	if strings.Contains(msg.Body, "<script>") {
		t.Errorf("body: got %q, want tags stripped", msg.Body)
	}
	if msg.SenderID != me.ID || msg.RecipientID != other.ID {
		t.Errorf("routing: sender %v recipient %v", msg.SenderID, msg.RecipientID)
	}

	// The other participant reads it back.
	req = httptest.NewRequest("GET", "/conversations/"+conv.ID.Hex()+"/messages", nil)
	req = testutil.WithUser(req, testutil.SessionFor(other))
	req = testutil.WithChiURLParam(req, "id", conv.ID.Hex())

	rec = httptest.NewRecorder()
	handler.ServeMessages(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var resp struct {
		Items []models.Message `json:"items"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(resp.Items))
	}
}

func TestSend_OutsiderRejected(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Ada", "ada@example.com")
	b := fixtures.CreateUser(ctx, "Bayo", "bayo@example.com")
	conv := fixtures.CreateConversation(ctx, a.ID, b.ID)

	outsider := fixtures.CreateUser(ctx, "Eve", "eve@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/conversations/"+conv.ID.Hex()+"/messages", map[string]any{
		"body": "let me in",
	})
	req = testutil.WithUser(req, testutil.SessionFor(outsider))
	req = testutil.WithChiURLParam(req, "id", conv.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleSend(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("outsider send: got %d, want 404", rec.Code)
	}
}

func TestSend_EmptyBody(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Ada", "ada@example.com")
	conv := fixtures.CreateConversation(ctx, a.ID, fixtures.CreateUser(ctx, "Bayo", "bayo@example.com").ID)

	// Tags-only content strips down to nothing.
	req := testutil.NewJSONRequest(t, "POST", "/conversations/"+conv.ID.Hex()+"/messages", map[string]any{
		"body": "<script>alert(1)</script>",
	})
	req = testutil.WithUser(req, testutil.SessionFor(a))
	req = testutil.WithChiURLParam(req, "id", conv.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleSend(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body: got %d, want 400", rec.Code)
	}
}

func TestInboxFlow_ViewedAndBumped(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := fixtures.CreateUser(ctx, "Ada", "ada@example.com")
	other := fixtures.CreateUser(ctx, "Bayo", "bayo@example.com")
	conv := fixtures.CreateConversation(ctx, me.ID, other.ID)

	// Mark viewed.
	req := testutil.WithUser(httptest.NewRequest("POST", "/conversations/"+conv.ID.Hex()+"/viewed", nil), testutil.SessionFor(me))
	req = testutil.WithChiURLParam(req, "id", conv.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleMarkViewed(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark viewed: got %d", rec.Code)
	}

	// A new message flips it back to not-viewed.
	req = testutil.NewJSONRequest(t, "POST", "/conversations/"+conv.ID.Hex()+"/messages", map[string]any{"body": "ping"})
	req = testutil.WithUser(req, testutil.SessionFor(other))
	req = testutil.WithChiURLParam(req, "id", conv.ID.Hex())
	rec = httptest.NewRecorder()
	handler.HandleSend(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send: got %d", rec.Code)
	}

	// The inbox shows it unread at the top.
	req = testutil.WithUser(httptest.NewRequest("GET", "/conversations", nil), testutil.SessionFor(me))
	rec = httptest.NewRecorder()
	handler.ServeList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var resp struct {
		Items []models.Conversation `json:"items"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(resp.Items))
	}
	if resp.Items[0].Status != models.ConversationNotViewed {
		t.Errorf("status: got %q, want not-viewed after new activity", resp.Items[0].Status)
	}
}

func TestServeList_EmptyInbox(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.WithUser(httptest.NewRequest("GET", "/conversations", nil), testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.ServeList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp struct {
		Items []models.Conversation `json:"items"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("items: got %v, want empty array", resp.Items)
	}
}
