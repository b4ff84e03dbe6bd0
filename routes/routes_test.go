package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"project/config"
	"project/models"
	"project/storage"
)

const testAdminPassword = "12345678910admin"

func newTestRouter(t *testing.T) (*mux.Router, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	cfg := &config.Config{
		AdminPassword: testAdminPassword,
		CORSOrigins:   []string{"*"},
	}
	return InitRouter(Deps{Store: store, Cfg: cfg}), store
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// approveVerification walks a handle through verify + admin approval and
// returns the created user's id.
func approveVerification(t *testing.T, router *mux.Router, handle string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/verify", map[string]string{"instagramHandle": handle})
	if rec.Code != http.StatusOK {
		t.Fatalf("verify returned %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	request := resp["request"].(map[string]interface{})
	id := request["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/admin/verify/"+id, map[string]string{"action": "approve"})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin verify returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/user/"+handle, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get user returned %d: %s", rec.Code, rec.Body.String())
	}
	return decode(t, rec)["id"].(string)
}

func TestVerificationFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/verify", map[string]string{"instagramHandle": "alice"})
	resp := decode(t, rec)
	if resp["status"] != "pending" {
		t.Fatalf("expected pending, got %v", resp["status"])
	}
	firstID := resp["request"].(map[string]interface{})["id"].(string)

	// Resubmitting while pending reuses the open request.
	rec = doJSON(t, router, http.MethodPost, "/api/verify", map[string]string{"instagramHandle": "alice"})
	resp = decode(t, rec)
	if got := resp["request"].(map[string]interface{})["id"].(string); got != firstID {
		t.Fatalf("expected pending request %s to be reused, got %s", firstID, got)
	}

	// Status check is still pending before review.
	rec = doJSON(t, router, http.MethodGet, "/api/verify/alice", nil)
	if resp = decode(t, rec); resp["status"] != "pending" {
		t.Fatalf("expected pending status, got %v", resp["status"])
	}

	rec = doJSON(t, router, http.MethodPost, "/api/admin/verify/"+firstID, map[string]string{"action": "approve"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/verify/alice", nil)
	if resp = decode(t, rec); resp["status"] != "verified" {
		t.Fatalf("expected verified, got %v", resp["status"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/user/alice", nil)
	user := decode(t, rec)
	if user["balance"].(float64) != 500 {
		t.Fatalf("expected signup bonus 500, got %v", user["balance"])
	}

	// Verifying again short-circuits without a new request.
	rec = doJSON(t, router, http.MethodPost, "/api/verify", map[string]string{"instagramHandle": "alice"})
	if resp = decode(t, rec); resp["status"] != "already_verified" {
		t.Fatalf("expected already_verified, got %v", resp["status"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/admin/verification-requests", nil)
	var pending []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil {
		t.Fatalf("decode pending list: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty pending queue, got %d entries", len(pending))
	}
}

func TestTaskSubmissionFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	userID := approveVerification(t, router, "bob")

	rec := doJSON(t, router, http.MethodGet, "/api/tasks", nil)
	var tasks []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	if len(tasks) == 0 {
		t.Fatal("expected seeded tasks")
	}
	taskID := tasks[0]["id"].(string)
	reward := int64(tasks[0]["reward"].(float64))

	rec = doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/submit", map[string]string{
		"userId":        userID,
		"screenshotUrl": "proof.png",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit returned %d: %s", rec.Code, rec.Body.String())
	}
	subID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/admin/tasks/submissions/"+subID, map[string]string{"action": "approve"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/user/bob", nil)
	user := decode(t, rec)
	if int64(user["balance"].(float64)) != 500+reward {
		t.Fatalf("expected balance %d, got %v", 500+reward, user["balance"])
	}
	if user["completedTasks"].(float64) != 1 {
		t.Fatalf("expected 1 completed task, got %v", user["completedTasks"])
	}
	if user["hasAdvancedAccess"] != true {
		t.Fatal("expected advanced access unlocked")
	}

	// Re-reviewing the same submission conflicts and credits nothing.
	rec = doJSON(t, router, http.MethodPost, "/api/admin/tasks/submissions/"+subID, map[string]string{"action": "approve"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on double approval, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/user/bob", nil)
	if int64(decode(t, rec)["balance"].(float64)) != 500+reward {
		t.Fatal("double approval must not double-credit")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/user/bob/submissions", nil)
	var subs []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &subs); err != nil {
		t.Fatalf("decode submissions: %v", err)
	}
	if len(subs) != 1 || subs[0]["status"] != "approved" {
		t.Fatalf("unexpected submissions listing: %v", subs)
	}
}

func TestTaskListingFilters(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/tasks?advanced=true", nil)
	var tasks []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	if len(tasks) == 0 {
		t.Fatal("expected seeded advanced tasks")
	}
	for _, task := range tasks {
		if task["isAdvanced"] != true {
			t.Fatalf("advanced listing returned regular task %v", task)
		}
		if task["isActive"] != true {
			t.Fatalf("listing returned inactive task %v", task)
		}
	}
}

func TestWithdrawalFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	userID := approveVerification(t, router, "carol")

	// More than the balance is refused up front.
	rec := doJSON(t, router, http.MethodPost, "/api/withdraw", map[string]interface{}{
		"userId": userID, "type": "upi", "amount": 10000,
		"details": map[string]string{"upiId": "carol@upi"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for insufficient balance, got %d", rec.Code)
	}

	// Wrong details variant for the type is a validation error.
	rec = doJSON(t, router, http.MethodPost, "/api/withdraw", map[string]interface{}{
		"userId": userID, "type": "amazon", "amount": 100,
		"details": map[string]string{"upiId": "carol@upi"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing gift card details, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/withdraw", map[string]interface{}{
		"userId": userID, "type": "upi", "amount": 300,
		"details": map[string]string{"upiId": "carol@upi"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("withdraw returned %d: %s", rec.Code, rec.Body.String())
	}
	wr := decode(t, rec)
	if wr["status"] != "pending" {
		t.Fatalf("expected pending withdrawal, got %v", wr["status"])
	}

	// The amount is reserved immediately.
	rec = doJSON(t, router, http.MethodGet, "/api/user/carol", nil)
	if decode(t, rec)["balance"].(float64) != 200 {
		t.Fatal("expected balance debited to 200 on request creation")
	}

	// Rejection refunds.
	rec = doJSON(t, router, http.MethodPost, "/api/admin/withdrawals/"+wr["id"].(string), map[string]string{"action": "reject"})
	if rec.Code != http.StatusOK {
		t.Fatalf("reject returned %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodGet, "/api/user/carol", nil)
	if decode(t, rec)["balance"].(float64) != 500 {
		t.Fatal("expected refund back to 500 after rejection")
	}
}

func TestAdminLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": testAdminPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["success"] != true {
		t.Fatalf("expected success true, got %s", rec.Body.String())
	}
}

func TestAdminTaskCRUD(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/tasks", map[string]interface{}{
		"title": "New Task", "description": "do it", "reward": 1200,
		"taskType": "like", "isAdvanced": false, "isActive": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	taskID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPut, "/api/admin/tasks/"+taskID, map[string]interface{}{"reward": 1500})
	if rec.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode(t, rec)
	if updated["reward"].(float64) != 1500 {
		t.Fatalf("expected reward 1500, got %v", updated["reward"])
	}
	if updated["title"] != "New Task" {
		t.Fatal("partial update must leave other fields alone")
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/admin/tasks/"+taskID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete returned %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/admin/tasks/"+taskID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	// Missing required field.
	rec := doJSON(t, router, http.MethodPost, "/api/support", map[string]string{"email": "a@b.c"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing message, got %d", rec.Code)
	}

	// Unknown fields are rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/support", map[string]string{
		"email": "a@b.c", "message": "hi", "extra": "nope",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}

	// Bad email format.
	rec = doJSON(t, router, http.MethodPost, "/api/support", map[string]string{
		"email": "not-an-email", "message": "hi",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", rec.Code)
	}

	// Unknown withdrawal type.
	rec = doJSON(t, router, http.MethodPost, "/api/withdraw", map[string]interface{}{
		"userId": "3f1b4a10-0000-4000-8000-000000000000", "type": "paypal", "amount": 100,
		"details": map[string]string{"upiId": "x"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestBindingFlow(t *testing.T) {
	router, store := newTestRouter(t)
	userID := approveVerification(t, router, "dave")

	rec := doJSON(t, router, http.MethodPost, "/api/bind-instagram", map[string]string{
		"userId": userID, "username": "dave", "password": "hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bind returned %d: %s", rec.Code, rec.Body.String())
	}
	reqID := decode(t, rec)["request"].(map[string]interface{})["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/admin/bind/"+reqID, map[string]string{"action": "approve"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve returned %d: %s", rec.Code, rec.Body.String())
	}

	user, err := store.GetUser(userID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if !user.IsInstagramBound {
		t.Fatal("expected user bound after approval")
	}
}

func TestSettingsUpsert(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/settings", map[string]string{
		"key": "upiMessage", "value": "UPI is live",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/admin/settings", nil)
	var settings []models.Setting
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	found := false
	for _, s := range settings {
		if s.Key == "upiMessage" {
			found = true
			if s.Value != "UPI is live" {
				t.Fatalf("expected updated value, got %q", s.Value)
			}
		}
	}
	if !found {
		t.Fatal("expected upiMessage setting in listing")
	}
}

func TestStats(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/stats", nil)
	stats := decode(t, rec)
	if stats["activeUsers"].(float64) != 0 {
		t.Fatalf("expected 0 active users, got %v", stats["activeUsers"])
	}

	approveVerification(t, router, "erin")
	rec = doJSON(t, router, http.MethodGet, "/api/stats", nil)
	stats = decode(t, rec)
	if stats["activeUsers"].(float64) != 1 {
		t.Fatalf("expected 1 active user, got %v", stats["activeUsers"])
	}
}
