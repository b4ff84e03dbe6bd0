package storage

import (
	"errors"

	"project/models"
)

var (
	// ErrNotFound is returned when a referenced id (or unique key) has no record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write collides with existing state, such as
	// a duplicate unique handle or a status transition from a terminal state.
	ErrConflict = errors.New("record conflict")
	// ErrInsufficientBalance is returned by DebitUser when the user cannot
	// cover the requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// UserPatch is a partial update over a User. Nil fields are left untouched.
type UserPatch struct {
	IsVerified        *bool
	Balance           *int64
	CompletedTasks    *int
	HasAdvancedAccess *bool
	IsInstagramBound  *bool
}

// TaskPatch is a partial update over a Task. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Reward      *int64
	TaskType    *string
	IsAdvanced  *bool
	IsActive    *bool
}

// Store is the uniform persistence surface for all domain entities. Create
// methods assign the id and creation timestamp on the passed record. List
// methods taking a status filter return all records when status is empty.
//
// Transition methods are the compare-and-set primitive behind the approval
// state machine: they move a record from one status to another atomically and
// return ErrConflict when the record is no longer in the expected status, so
// concurrent reviews of the same record resolve to exactly one winner.
type Store interface {
	// InTx runs fn against a store whose writes commit or roll back together
	// where the backend supports it. The in-memory backend provides no
	// rollback; its individual operations are atomic and fn runs as-is.
	InTx(fn func(Store) error) error

	// Users
	GetUser(id string) (*models.User, error)
	GetUserByHandle(handle string) (*models.User, error)
	CreateUser(u *models.User) error
	UpdateUser(id string, patch UserPatch) (*models.User, error)
	ListUsers() ([]models.User, error)
	// CreditUser adds amount to the balance and completedDelta to the task
	// count in one step. Advanced access unlocks when the count reaches 1 and
	// is never revoked.
	CreditUser(id string, amount int64, completedDelta int) (*models.User, error)
	// DebitUser subtracts amount from the balance, failing with
	// ErrInsufficientBalance rather than going negative.
	DebitUser(id string, amount int64) (*models.User, error)

	// Tasks
	GetTask(id string) (*models.Task, error)
	// ListTasks returns active tasks of the requested tier.
	ListTasks(advanced bool) ([]models.Task, error)
	CreateTask(t *models.Task) error
	UpdateTask(id string, patch TaskPatch) (*models.Task, error)
	DeleteTask(id string) error

	// Task submissions
	GetTaskSubmission(id string) (*models.TaskSubmission, error)
	ListTaskSubmissions(status string) ([]models.TaskSubmission, error)
	ListTaskSubmissionsByUser(userID string) ([]models.TaskSubmission, error)
	CreateTaskSubmission(s *models.TaskSubmission) error
	TransitionTaskSubmission(id, from, to string) (*models.TaskSubmission, error)

	// Verification requests
	ListVerificationRequests(status string) ([]models.VerificationRequest, error)
	GetPendingVerificationByHandle(handle string) (*models.VerificationRequest, error)
	CreateVerificationRequest(r *models.VerificationRequest) error
	TransitionVerificationRequest(id, from, to string) (*models.VerificationRequest, error)

	// Instagram binding requests
	ListBindingRequests(status string) ([]models.InstagramBindingRequest, error)
	CreateBindingRequest(r *models.InstagramBindingRequest) error
	TransitionBindingRequest(id, from, to string) (*models.InstagramBindingRequest, error)

	// Withdrawal requests
	ListWithdrawalRequests(status string) ([]models.WithdrawalRequest, error)
	CreateWithdrawalRequest(r *models.WithdrawalRequest) error
	TransitionWithdrawalRequest(id, from, to string) (*models.WithdrawalRequest, error)

	// Support requests
	ListSupportRequests(status string) ([]models.SupportRequest, error)
	CreateSupportRequest(r *models.SupportRequest) error
	TransitionSupportRequest(id, from, to string) (*models.SupportRequest, error)

	// Settings
	GetSetting(key string) (*models.Setting, error)
	SetSetting(key, value string) (*models.Setting, error)
	ListSettings() ([]models.Setting, error)
}
