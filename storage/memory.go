package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"project/models"
)

// MemStore is the reference Store backend: plain maps behind a single mutex.
// Every exported method takes the lock for its whole duration, so each
// operation (including the compare-and-set transitions) is atomic. State is
// volatile; restarting the process loses everything.
type MemStore struct {
	mu sync.RWMutex

	users        map[string]models.User
	tasks        map[string]models.Task
	submissions  map[string]models.TaskSubmission
	verification map[string]models.VerificationRequest
	bindings     map[string]models.InstagramBindingRequest
	withdrawals  map[string]models.WithdrawalRequest
	support      map[string]models.SupportRequest
	settings     map[string]models.Setting // keyed by setting key
}

func NewMemStore() *MemStore {
	s := &MemStore{
		users:        make(map[string]models.User),
		tasks:        make(map[string]models.Task),
		submissions:  make(map[string]models.TaskSubmission),
		verification: make(map[string]models.VerificationRequest),
		bindings:     make(map[string]models.InstagramBindingRequest),
		withdrawals:  make(map[string]models.WithdrawalRequest),
		support:      make(map[string]models.SupportRequest),
		settings:     make(map[string]models.Setting),
	}
	for _, t := range DefaultTasks() {
		t.ID = uuid.NewString()
		t.CreatedAt = time.Now()
		s.tasks[t.ID] = t
	}
	for k, v := range DefaultSettings() {
		s.settings[k] = models.Setting{ID: uuid.NewString(), Key: k, Value: v}
	}
	return s
}

// InTx provides no rollback for the in-memory backend; fn runs directly and
// relies on the per-operation atomicity above.
func (s *MemStore) InTx(fn func(Store) error) error {
	return fn(s)
}

// Users

func (s *MemStore) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) GetUserByHandle(handle string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.InstagramHandle == handle {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.InstagramHandle == u.InstagramHandle {
			return ErrConflict
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *MemStore) UpdateUser(id string, patch UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.IsVerified != nil {
		u.IsVerified = *patch.IsVerified
	}
	if patch.Balance != nil {
		u.Balance = *patch.Balance
	}
	if patch.CompletedTasks != nil {
		u.CompletedTasks = *patch.CompletedTasks
	}
	if patch.HasAdvancedAccess != nil {
		u.HasAdvancedAccess = *patch.HasAdvancedAccess
	}
	if patch.IsInstagramBound != nil {
		u.IsInstagramBound = *patch.IsInstagramBound
	}
	s.users[id] = u
	return &u, nil
}

func (s *MemStore) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *MemStore) CreditUser(id string, amount int64, completedDelta int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Balance += amount
	u.CompletedTasks += completedDelta
	if u.CompletedTasks >= 1 {
		u.HasAdvancedAccess = true
	}
	s.users[id] = u
	return &u, nil
}

func (s *MemStore) DebitUser(id string, amount int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if u.Balance < amount {
		return nil, ErrInsufficientBalance
	}
	u.Balance -= amount
	s.users[id] = u
	return &u, nil
}

// Tasks

func (s *MemStore) GetTask(id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemStore) ListTasks(advanced bool) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.IsActive && t.IsAdvanced == advanced {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemStore) CreateTask(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemStore) UpdateTask(id string, patch TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Reward != nil {
		t.Reward = *patch.Reward
	}
	if patch.TaskType != nil {
		t.TaskType = *patch.TaskType
	}
	if patch.IsAdvanced != nil {
		t.IsAdvanced = *patch.IsAdvanced
	}
	if patch.IsActive != nil {
		t.IsActive = *patch.IsActive
	}
	s.tasks[id] = t
	return &t, nil
}

func (s *MemStore) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Task submissions

func (s *MemStore) GetTaskSubmission(id string) (*models.TaskSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (s *MemStore) ListTaskSubmissions(status string) ([]models.TaskSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TaskSubmission
	for _, sub := range s.submissions {
		if status == "" || sub.Status == status {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *MemStore) ListTaskSubmissionsByUser(userID string) ([]models.TaskSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TaskSubmission
	for _, sub := range s.submissions {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *MemStore) CreateTaskSubmission(sub *models.TaskSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.ID = uuid.NewString()
	sub.Status = models.StatusPending
	sub.SubmittedAt = time.Now()
	s.submissions[sub.ID] = *sub
	return nil
}

func (s *MemStore) TransitionTaskSubmission(id, from, to string) (*models.TaskSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sub.Status != from {
		return nil, ErrConflict
	}
	sub.Status = to
	s.submissions[id] = sub
	return &sub, nil
}

// Verification requests

func (s *MemStore) ListVerificationRequests(status string) ([]models.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.VerificationRequest
	for _, r := range s.verification {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemStore) GetPendingVerificationByHandle(handle string) (*models.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.verification {
		if r.InstagramHandle == handle && r.Status == models.StatusPending {
			r := r
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateVerificationRequest(r *models.VerificationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	s.verification[r.ID] = *r
	return nil
}

func (s *MemStore) TransitionVerificationRequest(id, from, to string) (*models.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.verification[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.Status != from {
		return nil, ErrConflict
	}
	r.Status = to
	s.verification[id] = r
	return &r, nil
}

// Instagram binding requests

func (s *MemStore) ListBindingRequests(status string) ([]models.InstagramBindingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.InstagramBindingRequest
	for _, r := range s.bindings {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemStore) CreateBindingRequest(r *models.InstagramBindingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	s.bindings[r.ID] = *r
	return nil
}

func (s *MemStore) TransitionBindingRequest(id, from, to string) (*models.InstagramBindingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.bindings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.Status != from {
		return nil, ErrConflict
	}
	r.Status = to
	s.bindings[id] = r
	return &r, nil
}

// Withdrawal requests

func (s *MemStore) ListWithdrawalRequests(status string) ([]models.WithdrawalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.WithdrawalRequest
	for _, r := range s.withdrawals {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemStore) CreateWithdrawalRequest(r *models.WithdrawalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	s.withdrawals[r.ID] = *r
	return nil
}

func (s *MemStore) TransitionWithdrawalRequest(id, from, to string) (*models.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.withdrawals[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.Status != from {
		return nil, ErrConflict
	}
	r.Status = to
	s.withdrawals[id] = r
	return &r, nil
}

// Support requests

func (s *MemStore) ListSupportRequests(status string) ([]models.SupportRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SupportRequest
	for _, r := range s.support {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemStore) CreateSupportRequest(r *models.SupportRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	s.support[r.ID] = *r
	return nil
}

func (s *MemStore) TransitionSupportRequest(id, from, to string) (*models.SupportRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.support[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.Status != from {
		return nil, ErrConflict
	}
	r.Status = to
	s.support[id] = r
	return &r, nil
}

// Settings

func (s *MemStore) GetSetting(key string) (*models.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &set, nil
}

func (s *MemStore) SetSetting(key, value string) (*models.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.settings[key]
	if ok {
		set.Value = value
	} else {
		set = models.Setting{ID: uuid.NewString(), Key: key, Value: value}
	}
	s.settings[key] = set
	return &set, nil
}

func (s *MemStore) ListSettings() ([]models.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Setting, 0, len(s.settings))
	for _, set := range s.settings {
		out = append(out, set)
	}
	return out, nil
}
