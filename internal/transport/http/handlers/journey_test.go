package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"workpulse/internal/app/server"
	"workpulse/internal/domain/achievements"
	"workpulse/internal/domain/rewards"
	"workpulse/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(t *testing.T, dbURL string) config.Config {
	t.Helper()
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedTenantName:     "Test Tenant",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		EmailFrom:          "no-reply@test.local",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		CertificateDir:     t.TempDir(),
	}
}

func TestRewardsJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(t, dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()
	app.Jobs.Start(context.Background())

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, token, employeeEmail)

	// A present day with an early check-in and overtime earns base,
	// punctuality and overtime points in one upload.
	workDate := time.Now().Format("2006-01-02")
	checkIn := workDate + "T09:15:00Z"
	resp := postJSON(t, client, ts.URL+"/api/v1/attendance", token, map[string]any{
		"employeeId":    employeeID,
		"workDate":      workDate,
		"status":        "present",
		"checkInAt":     checkIn,
		"overtimeHours": 2.5,
	})
	var attendancePayload struct {
		Awarded []map[string]any `json:"awarded"`
	}
	if err := json.Unmarshal(resp.Data, &attendancePayload); err != nil {
		t.Fatalf("failed to decode attendance response: %v", err)
	}
	if len(attendancePayload.Awarded) != 3 {
		t.Fatalf("expected 3 award entries, got %d", len(attendancePayload.Awarded))
	}

	balance := fetchBalance(t, client, ts.URL, token, employeeID)
	if balance != 45 {
		t.Fatalf("expected balance 45 after attendance, got %d", balance)
	}

	// Re-uploading the same day must not double-award.
	postJSON(t, client, ts.URL+"/api/v1/attendance", token, map[string]any{
		"employeeId":    employeeID,
		"workDate":      workDate,
		"status":        "present",
		"checkInAt":     checkIn,
		"overtimeHours": 2.5,
	})
	if again := fetchBalance(t, client, ts.URL, token, employeeID); again != balance {
		t.Fatalf("balance changed on re-upload: %d -> %d", balance, again)
	}

	// 95 logged minutes earn 3 half-hour blocks in a single entry.
	resp = postJSON(t, client, ts.URL+"/api/v1/worklogs", token, map[string]any{
		"employeeId": employeeID,
		"entries": []map[string]any{
			{"tag": "dev", "minutes": 65, "logDate": workDate},
			{"tag": "review", "minutes": 30, "logDate": workDate},
		},
	})
	var worklogPayload struct {
		SubmissionID string           `json:"submissionId"`
		Awarded      []map[string]any `json:"awarded"`
	}
	if err := json.Unmarshal(resp.Data, &worklogPayload); err != nil {
		t.Fatalf("failed to decode worklog response: %v", err)
	}
	if worklogPayload.SubmissionID == "" {
		t.Fatal("expected submission id")
	}
	if len(worklogPayload.Awarded) == 0 {
		t.Fatal("expected worklog points to be awarded")
	}

	newBalance := fetchBalance(t, client, ts.URL, token, employeeID)
	if newBalance < balance+24 {
		t.Fatalf("expected at least %d after worklogs, got %d", balance+24, newBalance)
	}

	adjusted := postJSON(t, client, ts.URL+"/api/v1/rewards/adjustments", token, map[string]any{
		"employeeId": employeeID,
		"points":     100,
		"reason":     "quarterly spot bonus",
	})
	var adjustment map[string]any
	if err := json.Unmarshal(adjusted.Data, &adjustment); err != nil {
		t.Fatalf("failed to decode adjustment: %v", err)
	}
	if fetchBalance(t, client, ts.URL, token, employeeID) != newBalance+100 {
		t.Fatal("manual adjustment not reflected in balance")
	}

	history := getJSON(t, client, ts.URL+"/api/v1/rewards/history?employeeId="+employeeID, token)
	var entries []map[string]any
	if err := json.Unmarshal(history.Data, &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(entries) < 5 {
		t.Fatalf("expected at least 5 ledger entries, got %d", len(entries))
	}

	progress := getJSON(t, client, ts.URL+"/api/v1/achievements/progress?employeeId="+employeeID, token)
	var rows []map[string]any
	if err := json.Unmarshal(progress.Data, &rows); err != nil {
		t.Fatalf("failed to decode progress: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected seeded achievement definitions in progress view")
	}

	// Logging work on five distinct days completes the seeded logging
	// achievement; exactly one unlock ledger entry may appear.
	var backfill []map[string]any
	for i := 1; i <= 4; i++ {
		backfill = append(backfill, map[string]any{
			"tag":     "dev",
			"minutes": 30,
			"logDate": time.Now().AddDate(0, 0, -i).Format("2006-01-02"),
		})
	}
	postJSON(t, client, ts.URL+"/api/v1/worklogs", token, map[string]any{
		"employeeId": employeeID,
		"entries":    backfill,
	})

	completed, unlockedAt := workLoggerState(t, client, ts.URL, token, employeeID)
	if !completed {
		t.Fatal("expected completion after five distinct log days")
	}
	if unlockedAt == "" {
		t.Fatal("expected an unlock timestamp on the completed achievement")
	}
	if n := countUnlockEntries(t, client, ts.URL, token, employeeID); n != 1 {
		t.Fatalf("expected exactly one unlock ledger entry, got %d", n)
	}

	// Evaluating again with the achievement already complete must not
	// move the timestamp or award a second unlock.
	postJSON(t, client, ts.URL+"/api/v1/worklogs", token, map[string]any{
		"employeeId": employeeID,
		"entries": []map[string]any{
			{"tag": "review", "minutes": 30, "logDate": workDate},
		},
	})
	stillCompleted, stillUnlockedAt := workLoggerState(t, client, ts.URL, token, employeeID)
	if !stillCompleted || stillUnlockedAt != unlockedAt {
		t.Fatalf("unlock state changed on re-evaluation: completed=%v unlockedAt=%s -> %s", stillCompleted, unlockedAt, stillUnlockedAt)
	}
	if n := countUnlockEntries(t, client, ts.URL, token, employeeID); n != 1 {
		t.Fatalf("expected the unlock entry to stay single, got %d", n)
	}

	// Definition codes are unique per tenant; a repeat create conflicts.
	defPayload := map[string]any{
		"code":       "TEAM_PLAYER",
		"name":       "Team Player",
		"category":   "points",
		"pointValue": 25,
	}
	if created := postJSON(t, client, ts.URL+"/api/v1/achievements", token, defPayload); created.Error != nil {
		t.Fatalf("definition create failed: %v", created.Error)
	}
	dup := postJSON(t, client, ts.URL+"/api/v1/achievements", token, defPayload)
	dupErr, _ := dup.Error.(map[string]any)
	if code, _ := dupErr["code"].(string); code != "duplicate_code" {
		t.Fatalf("expected duplicate_code conflict, got %v", dup.Error)
	}

	// Recompute runs on the background worker; poll until the snapshot
	// lands.
	postJSON(t, client, ts.URL+"/api/v1/leaderboard/recompute", token, nil)
	deadline := time.Now().Add(10 * time.Second)
	var firstRank int
	for {
		occurrences, rank := weeklyStanding(t, client, ts.URL, token, employeeID)
		if occurrences == 1 {
			firstRank = rank
			break
		}
		if occurrences > 1 {
			t.Fatalf("expected a single leaderboard row for the employee, got %d", occurrences)
		}
		if time.Now().After(deadline) {
			t.Fatal("leaderboard never included the journey employee")
		}
		time.Sleep(200 * time.Millisecond)
	}

	// A second recompute over unchanged data keeps one row per employee
	// with the same rank.
	runsBefore := app.Metrics.Snapshot()["leaderboardRuns"].(uint64)
	postJSON(t, client, ts.URL+"/api/v1/leaderboard/recompute", token, nil)
	deadline = time.Now().Add(10 * time.Second)
	for app.Metrics.Snapshot()["leaderboardRuns"].(uint64) < runsBefore+4 {
		if time.Now().After(deadline) {
			t.Fatal("second recompute never finished")
		}
		time.Sleep(100 * time.Millisecond)
	}
	occurrences, rank := weeklyStanding(t, client, ts.URL, token, employeeID)
	if occurrences != 1 || rank != firstRank {
		t.Fatalf("second recompute changed the standing: occurrences=%d rank=%d, want 1 row at rank %d", occurrences, rank, firstRank)
	}
}

func workLoggerState(t *testing.T, client *http.Client, baseURL, token, employeeID string) (bool, string) {
	t.Helper()
	progress := getJSON(t, client, baseURL+"/api/v1/achievements/progress?employeeId="+employeeID, token)
	var rows []struct {
		Definition struct {
			Code string `json:"code"`
		} `json:"definition"`
		Completed  bool   `json:"completed"`
		UnlockedAt string `json:"unlockedAt"`
	}
	if err := json.Unmarshal(progress.Data, &rows); err != nil {
		t.Fatalf("failed to decode progress: %v", err)
	}
	for _, row := range rows {
		if row.Definition.Code == achievements.CodeWorkLogger {
			return row.Completed, row.UnlockedAt
		}
	}
	t.Fatal("work logger achievement missing from progress view")
	return false, ""
}

func countUnlockEntries(t *testing.T, client *http.Client, baseURL, token, employeeID string) int {
	t.Helper()
	history := getJSON(t, client, baseURL+"/api/v1/rewards/history?employeeId="+employeeID, token)
	var entries []struct {
		PointType string `json:"pointType"`
	}
	if err := json.Unmarshal(history.Data, &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	n := 0
	for _, entry := range entries {
		if entry.PointType == rewards.PointTypeAchievement {
			n++
		}
	}
	return n
}

func weeklyStanding(t *testing.T, client *http.Client, baseURL, token, employeeID string) (int, int) {
	t.Helper()
	standings := getJSON(t, client, baseURL+"/api/v1/leaderboard?period=weekly", token)
	var board []struct {
		EmployeeID  string `json:"employeeId"`
		OverallRank int    `json:"overallRank"`
	}
	if err := json.Unmarshal(standings.Data, &board); err != nil {
		t.Fatalf("failed to decode standings: %v", err)
	}
	occurrences, rank := 0, 0
	for _, row := range board {
		if row.EmployeeID == employeeID {
			occurrences++
			rank = row.OverallRank
		}
	}
	return occurrences, rank
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, email string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"firstName": "Journey",
		"lastName":  "Tester",
		"email":     email,
		"status":    "active",
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected employee id")
	}
	return id
}

func fetchBalance(t *testing.T, client *http.Client, baseURL, token, employeeID string) int {
	t.Helper()
	resp := getJSON(t, client, baseURL+"/api/v1/rewards/balance?employeeId="+employeeID, token)
	var payload struct {
		Balance int `json:"balance"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode balance: %v", err)
	}
	return payload.Balance
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}
