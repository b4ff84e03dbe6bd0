package storage

import (
	"errors"
	"sync"
	"testing"

	"project/models"
)

func newUser(t *testing.T, s *MemStore, handle string) *models.User {
	t.Helper()
	u := &models.User{InstagramHandle: handle, IsVerified: true, Balance: models.SignupBonus}
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestCreateUser_DuplicateHandle(t *testing.T) {
	s := NewMemStore()
	newUser(t, s, "alice")
	err := s.CreateUser(&models.User{InstagramHandle: "alice"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate handle, got %v", err)
	}
}

func TestGetUserByHandle(t *testing.T) {
	s := NewMemStore()
	u := newUser(t, s, "bob")
	got, err := s.GetUserByHandle("bob")
	if err != nil {
		t.Fatalf("GetUserByHandle: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected user %s, got %s", u.ID, got.ID)
	}
	if _, err := s.GetUserByHandle("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreditUser_UnlocksAdvancedAccess(t *testing.T) {
	s := NewMemStore()
	u := newUser(t, s, "carol")
	got, err := s.CreditUser(u.ID, 1000, 1)
	if err != nil {
		t.Fatalf("CreditUser: %v", err)
	}
	if got.Balance != models.SignupBonus+1000 {
		t.Fatalf("expected balance %d, got %d", models.SignupBonus+1000, got.Balance)
	}
	if got.CompletedTasks != 1 {
		t.Fatalf("expected 1 completed task, got %d", got.CompletedTasks)
	}
	if !got.HasAdvancedAccess {
		t.Fatal("expected advanced access after first completed task")
	}

	// A refund credit with no completion delta must not reset the flag.
	got, err = s.CreditUser(u.ID, 500, 0)
	if err != nil {
		t.Fatalf("CreditUser: %v", err)
	}
	if !got.HasAdvancedAccess {
		t.Fatal("advanced access must never revert")
	}
}

func TestDebitUser(t *testing.T) {
	s := NewMemStore()
	u := newUser(t, s, "dave")
	if _, err := s.DebitUser(u.ID, models.SignupBonus+1); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	got, err := s.DebitUser(u.ID, 200)
	if err != nil {
		t.Fatalf("DebitUser: %v", err)
	}
	if got.Balance != models.SignupBonus-200 {
		t.Fatalf("expected balance %d, got %d", models.SignupBonus-200, got.Balance)
	}
}

func TestTransitionTaskSubmission_Guard(t *testing.T) {
	s := NewMemStore()
	sub := &models.TaskSubmission{UserID: "u", TaskID: "t"}
	if err := s.CreateTaskSubmission(sub); err != nil {
		t.Fatalf("CreateTaskSubmission: %v", err)
	}

	if _, err := s.TransitionTaskSubmission(sub.ID, models.StatusPending, models.StatusApproved); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if _, err := s.TransitionTaskSubmission(sub.ID, models.StatusPending, models.StatusApproved); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second transition, got %v", err)
	}
	if _, err := s.TransitionTaskSubmission("missing", models.StatusPending, models.StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransitionTaskSubmission_ConcurrentSingleWinner(t *testing.T) {
	s := NewMemStore()
	sub := &models.TaskSubmission{UserID: "u", TaskID: "t"}
	if err := s.CreateTaskSubmission(sub); err != nil {
		t.Fatalf("CreateTaskSubmission: %v", err)
	}

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.TransitionTaskSubmission(sub.ID, models.StatusPending, models.StatusApproved); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)
	var count int
	for range wins {
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 winning transition, got %d", count)
	}
}

func TestListTasks_FiltersTierAndActive(t *testing.T) {
	s := NewMemStore()

	regular, err := s.ListTasks(false)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(regular) != 3 {
		t.Fatalf("expected 3 seeded regular tasks, got %d", len(regular))
	}
	advanced, err := s.ListTasks(true)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(advanced) != 2 {
		t.Fatalf("expected 2 seeded advanced tasks, got %d", len(advanced))
	}
	for _, task := range advanced {
		if !task.IsAdvanced || !task.IsActive {
			t.Fatalf("advanced listing returned task %+v", task)
		}
	}

	// Deactivated tasks drop out of both listings.
	inactive := false
	if _, err := s.UpdateTask(advanced[0].ID, TaskPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	advanced, _ = s.ListTasks(true)
	if len(advanced) != 1 {
		t.Fatalf("expected 1 advanced task after deactivation, got %d", len(advanced))
	}
}

func TestDeleteTask(t *testing.T) {
	s := NewMemStore()
	task := &models.Task{Title: "x", Description: "y", Reward: 100, TaskType: models.TaskTypeFollow, IsActive: true}
	if err := s.CreateTask(task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.DeleteTask(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSetSetting_Upsert(t *testing.T) {
	s := NewMemStore()

	seeded, err := s.GetSetting("upiMessage")
	if err != nil {
		t.Fatalf("expected seeded upiMessage setting: %v", err)
	}
	updated, err := s.SetSetting("upiMessage", "UPI is back")
	if err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if updated.ID != seeded.ID {
		t.Fatal("upsert of an existing key must keep its id")
	}
	if updated.Value != "UPI is back" {
		t.Fatalf("expected updated value, got %q", updated.Value)
	}

	created, err := s.SetSetting("banner", "hello")
	if err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if created.ID == "" || created.Key != "banner" {
		t.Fatalf("unexpected created setting %+v", created)
	}
	all, _ := s.ListSettings()
	if len(all) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(all))
	}
}

func TestPendingVerificationByHandle(t *testing.T) {
	s := NewMemStore()
	vr := &models.VerificationRequest{InstagramHandle: "eve"}
	if err := s.CreateVerificationRequest(vr); err != nil {
		t.Fatalf("CreateVerificationRequest: %v", err)
	}
	if _, err := s.GetPendingVerificationByHandle("eve"); err != nil {
		t.Fatalf("expected pending request: %v", err)
	}
	if _, err := s.TransitionVerificationRequest(vr.ID, models.StatusPending, models.StatusRejected); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := s.GetPendingVerificationByHandle("eve"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rejected request must not count as pending, got %v", err)
	}
}
