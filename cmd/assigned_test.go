package cmd

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/testutil"
)

func TestAssigned(t *testing.T) {
	env := newTestEnv(t)
	env.notion.HandleJSON(http.MethodPost, "/v1/databases/"+testDatabaseID+"/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))
	env.acceptMessages(t)

	if err := env.run("assigned"); err != nil {
		t.Fatalf("assigned returned error: %v", err)
	}

	want := "Sent 2 tasks for Alice\nSent 1 tasks for Bob\n" +
		"\n" +
		"Delivered 3 task(s) in 2 message(s) to +55 11 99999-0000:\n" +
		"\n" +
		"  Alice 2 task(s)\n" +
		"  Bob   1 task(s)\n"
	if got := env.out.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}

	bodies := env.sentBodies(t)
	if len(bodies) != 2 {
		t.Fatalf("sent %d messages, want 2", len(bodies))
	}
	wantAlice := "`Tasks played by Alice`\n\n" +
		"_Task_ | _Status_ | _Start Date_\n\n" +
		"1. Checkout flow *|* In progress *|* May 10 - 12, 2024\n" +
		"\n" +
		"2. Refund emails *|* In progress *|* Dec 30, 2023 - Jan 2, 2024\n"
	if bodies[0] != wantAlice {
		t.Errorf("Alice's message =\n%q\nwant\n%q", bodies[0], wantAlice)
	}
	if !strings.Contains(bodies[1], "1. Seller onboarding *|* Assigned *|* No Date\n") {
		t.Errorf("Bob's message = %q", bodies[1])
	}

	var to struct {
		To string `json:"to"`
	}
	_ = env.whatsapp.Requests()[0].DecodeBody(&to)
	if to.To != "5511999990000" {
		t.Errorf("recipient = %q, want 5511999990000", to.To)
	}
}

func TestAssignedQueryFilter(t *testing.T) {
	env := newTestEnv(t)
	env.notion.HandleJSON(http.MethodPost, "/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))
	env.acceptMessages(t)

	if err := env.run("assigned", "--status", "Review"); err != nil {
		t.Fatalf("assigned returned error: %v", err)
	}

	var req api.QueryRequest
	if err := env.notion.RequestsTo("/query")[0].DecodeBody(&req); err != nil {
		t.Fatal(err)
	}
	got, _ := json.Marshal(req.Filter)
	want := `{"and":[{"property":"Assign","people":{"is_not_empty":true}},{"property":"Status","status":{"equals":"Review"}}]}`
	if string(got) != want {
		t.Errorf("filter = %s, want %s", got, want)
	}
}

func TestAssignedNoTasks(t *testing.T) {
	env := newTestEnv(t)
	env.notion.HandleJSON(http.MethodPost, "/query", http.StatusOK, map[string]any{
		"object": "list", "results": []any{}, "has_more": false,
	})
	env.acceptMessages(t)

	if err := env.run("assigned"); err != nil {
		t.Fatalf("assigned returned error: %v", err)
	}
	if got := env.out.String(); got != "No assigned tasks found.\n" {
		t.Errorf("output = %q", got)
	}
	if n := len(env.whatsapp.Requests()); n != 0 {
		t.Errorf("expected no messages, got %d", n)
	}
}

func TestAssignedMissingRecipient(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("WHATSAPP_NUMBER", "")
	env.notion.HandleJSON(http.MethodPost, "/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))
	env.acceptMessages(t)

	err := env.run("assigned")
	if exitcode.ExitCode(err) != exitcode.ConfigMissing {
		t.Fatalf("exit code = %d, want %d (%v)", exitcode.ExitCode(err), exitcode.ConfigMissing, err)
	}
	if !strings.Contains(err.Error(), "WHATSAPP_NUMBER") {
		t.Errorf("error should name WHATSAPP_NUMBER, got: %v", err)
	}
	if n := len(env.whatsapp.Requests()); n != 0 {
		t.Errorf("expected no messages, got %d", n)
	}
}

func TestAssignedToFlagOverridesNumber(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("WHATSAPP_NUMBER", "")
	env.notion.HandleJSON(http.MethodPost, "/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))
	env.acceptMessages(t)

	if err := env.run("assigned", "--to", "+1 415 555 0100"); err != nil {
		t.Fatalf("assigned returned error: %v", err)
	}
	var to struct {
		To string `json:"to"`
	}
	_ = env.whatsapp.Requests()[0].DecodeBody(&to)
	if to.To != "14155550100" {
		t.Errorf("recipient = %q, want 14155550100", to.To)
	}
}

func TestAssignedStopsAtFirstFailure(t *testing.T) {
	env := newTestEnv(t)
	env.notion.HandleJSON(http.MethodPost, "/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))
	env.whatsapp.HandleJSON(http.MethodPost, "/messages", http.StatusBadRequest, map[string]any{
		"error": map[string]any{"message": "Recipient phone number not in allowed list", "code": 131030},
	})

	err := env.run("assigned")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "for Alice") || !strings.Contains(err.Error(), "not in allowed list") {
		t.Errorf("unexpected error: %v", err)
	}
	if n := len(env.whatsapp.Requests()); n != 1 {
		t.Errorf("expected 1 attempt, got %d", n)
	}
	if strings.Contains(env.out.String(), "Sent") {
		t.Errorf("nothing should be reported as sent, got: %s", env.out.String())
	}
}

func TestAssignedDryRun(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "")
	env.notion.HandleJSON(http.MethodPost, "/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))

	if err := env.run("assigned", "--dry-run"); err != nil {
		t.Fatalf("assigned --dry-run returned error: %v", err)
	}

	out := env.out.String()
	if !strings.Contains(out, "`Tasks played by Alice`") || !strings.Contains(out, "`Tasks played by Bob`") {
		t.Errorf("dry run should print both messages, got:\n%s", out)
	}
	if !strings.Contains(out, "Would send 2 message(s) to +55 11 99999-0000:") {
		t.Errorf("dry run should print a summary, got:\n%s", out)
	}
	if !strings.Contains(out, "  Alice 2 task(s)") {
		t.Errorf("summary should list Alice, got:\n%s", out)
	}
	if n := len(env.whatsapp.Requests()); n != 0 {
		t.Errorf("dry run should not send, got %d requests", n)
	}
}

func TestAssignedJSON(t *testing.T) {
	env := newTestEnv(t)
	env.notion.HandleJSON(http.MethodPost, "/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))
	env.acceptMessages(t)

	if err := env.run("assigned", "--output", "json"); err != nil {
		t.Fatalf("assigned returned error: %v", err)
	}

	var result deliveryJSON
	if err := json.Unmarshal(env.out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, env.out.String())
	}
	if len(result.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(result.Messages))
	}
	if m := result.Messages[0]; m.Group != "Alice" || m.Tasks != 2 || !m.Sent {
		t.Errorf("first message = %+v", m)
	}
	if result.DryRun {
		t.Error("dryRun should be false")
	}
}

func TestAssignedDatabaseByTitle(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("DATABASE_ID", "")
	env.notion.HandleJSON(http.MethodPost, "/v1/search", http.StatusOK, testutil.LoadFixture(t, "search_databases.json"))
	env.notion.HandleJSON(http.MethodPost, "/v1/databases/"+testDatabaseID+"/query", http.StatusOK, testutil.LoadFixture(t, "query_assigned.json"))
	env.acceptMessages(t)

	if err := env.run("assigned", "--database", "marketplace"); err != nil {
		t.Fatalf("assigned returned error: %v", err)
	}
	if n := len(env.notion.RequestsTo("/query")); n != 1 {
		t.Errorf("expected 1 query, got %d", n)
	}
}

func TestAssignedNoDatabase(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("DATABASE_ID", "")

	err := env.run("assigned")
	if exitcode.ExitCode(err) != exitcode.UsageError {
		t.Errorf("exit code = %d, want %d (%v)", exitcode.ExitCode(err), exitcode.UsageError, err)
	}
}
