package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project/models"
)

// GormStore backs the Store interface with MySQL through GORM for deployments
// that need durability. Status transitions are conditional UPDATEs checked via
// RowsAffected, and InTx maps to a real database transaction, so approval side
// effects commit together with the transition on this backend.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the schema and seeds the default catalog when the
// tasks table is empty.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskSubmission{},
		&models.VerificationRequest{},
		&models.InstagramBindingRequest{},
		&models.WithdrawalRequest{},
		&models.SupportRequest{},
		&models.Setting{},
	); err != nil {
		return nil, err
	}
	s := &GormStore{db: db}
	var count int64
	if err := db.Model(&models.Task{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		for _, t := range DefaultTasks() {
			t.ID = uuid.NewString()
			t.CreatedAt = time.Now()
			if err := db.Create(&t).Error; err != nil {
				return nil, err
			}
		}
		for k, v := range DefaultSettings() {
			if _, err := s.SetSetting(k, v); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *GormStore) InTx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func wrapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// transition flips status from -> to for one row of the given model and loads
// the row into dst. RowsAffected 0 means either a missing id or a lost
// compare-and-set race; the follow-up read disambiguates.
func (s *GormStore) transition(model interface{}, dst interface{}, id, from, to string) error {
	res := s.db.Model(model).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := s.db.First(dst, "id = ?", id).Error; err != nil {
			return wrapErr(err)
		}
		return ErrConflict
	}
	return wrapErr(s.db.First(dst, "id = ?", id).Error)
}

// Users

func (s *GormStore) GetUser(id string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByHandle(handle string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "instagram_handle = ?", handle).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(u *models.User) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("instagram_handle = ?", u.InstagramHandle).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	return s.db.Create(u).Error
}

func (s *GormStore) UpdateUser(id string, patch UserPatch) (*models.User, error) {
	updates := map[string]interface{}{}
	if patch.IsVerified != nil {
		updates["is_verified"] = *patch.IsVerified
	}
	if patch.Balance != nil {
		updates["balance"] = *patch.Balance
	}
	if patch.CompletedTasks != nil {
		updates["completed_tasks"] = *patch.CompletedTasks
	}
	if patch.HasAdvancedAccess != nil {
		updates["has_advanced_access"] = *patch.HasAdvancedAccess
	}
	if patch.IsInstagramBound != nil {
		updates["is_instagram_bound"] = *patch.IsInstagramBound
	}
	if len(updates) > 0 {
		res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetUser(id)
}

func (s *GormStore) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) CreditUser(id string, amount int64, completedDelta int) (*models.User, error) {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"balance":             gorm.Expr("balance + ?", amount),
		"completed_tasks":     gorm.Expr("completed_tasks + ?", completedDelta),
		// MySQL applies SET clauses in order and gorm sorts map keys, so
		// completed_tasks already holds the incremented value here.
		"has_advanced_access": gorm.Expr("has_advanced_access OR completed_tasks >= 1"),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(id)
}

func (s *GormStore) DebitUser(id string, amount int64) (*models.User, error) {
	res := s.db.Model(&models.User{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetUser(id); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientBalance
	}
	return s.GetUser(id)
}

// Tasks

func (s *GormStore) GetTask(id string) (*models.Task, error) {
	var t models.Task
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &t, nil
}

func (s *GormStore) ListTasks(advanced bool) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("is_active = ? AND is_advanced = ?", true, advanced).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *GormStore) CreateTask(t *models.Task) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	return s.db.Create(t).Error
}

func (s *GormStore) UpdateTask(id string, patch TaskPatch) (*models.Task, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Reward != nil {
		updates["reward"] = *patch.Reward
	}
	if patch.TaskType != nil {
		updates["task_type"] = *patch.TaskType
	}
	if patch.IsAdvanced != nil {
		updates["is_advanced"] = *patch.IsAdvanced
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if len(updates) > 0 {
		res := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetTask(id)
}

func (s *GormStore) DeleteTask(id string) error {
	res := s.db.Delete(&models.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Task submissions

func (s *GormStore) GetTaskSubmission(id string) (*models.TaskSubmission, error) {
	var sub models.TaskSubmission
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &sub, nil
}

func (s *GormStore) ListTaskSubmissions(status string) ([]models.TaskSubmission, error) {
	var subs []models.TaskSubmission
	q := s.db
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *GormStore) ListTaskSubmissionsByUser(userID string) ([]models.TaskSubmission, error) {
	var subs []models.TaskSubmission
	if err := s.db.Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *GormStore) CreateTaskSubmission(sub *models.TaskSubmission) error {
	sub.ID = uuid.NewString()
	sub.Status = models.StatusPending
	sub.SubmittedAt = time.Now()
	return s.db.Create(sub).Error
}

func (s *GormStore) TransitionTaskSubmission(id, from, to string) (*models.TaskSubmission, error) {
	var sub models.TaskSubmission
	if err := s.transition(&models.TaskSubmission{}, &sub, id, from, to); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Verification requests

func (s *GormStore) ListVerificationRequests(status string) ([]models.VerificationRequest, error) {
	var reqs []models.VerificationRequest
	q := s.db
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *GormStore) GetPendingVerificationByHandle(handle string) (*models.VerificationRequest, error) {
	var r models.VerificationRequest
	err := s.db.First(&r, "instagram_handle = ? AND status = ?", handle, models.StatusPending).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &r, nil
}

func (s *GormStore) CreateVerificationRequest(r *models.VerificationRequest) error {
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	return s.db.Create(r).Error
}

func (s *GormStore) TransitionVerificationRequest(id, from, to string) (*models.VerificationRequest, error) {
	var r models.VerificationRequest
	if err := s.transition(&models.VerificationRequest{}, &r, id, from, to); err != nil {
		return nil, err
	}
	return &r, nil
}

// Instagram binding requests

func (s *GormStore) ListBindingRequests(status string) ([]models.InstagramBindingRequest, error) {
	var reqs []models.InstagramBindingRequest
	q := s.db
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *GormStore) CreateBindingRequest(r *models.InstagramBindingRequest) error {
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	return s.db.Create(r).Error
}

func (s *GormStore) TransitionBindingRequest(id, from, to string) (*models.InstagramBindingRequest, error) {
	var r models.InstagramBindingRequest
	if err := s.transition(&models.InstagramBindingRequest{}, &r, id, from, to); err != nil {
		return nil, err
	}
	return &r, nil
}

// Withdrawal requests

func (s *GormStore) ListWithdrawalRequests(status string) ([]models.WithdrawalRequest, error) {
	var reqs []models.WithdrawalRequest
	q := s.db
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *GormStore) CreateWithdrawalRequest(r *models.WithdrawalRequest) error {
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	return s.db.Create(r).Error
}

func (s *GormStore) TransitionWithdrawalRequest(id, from, to string) (*models.WithdrawalRequest, error) {
	var r models.WithdrawalRequest
	if err := s.transition(&models.WithdrawalRequest{}, &r, id, from, to); err != nil {
		return nil, err
	}
	return &r, nil
}

// Support requests

func (s *GormStore) ListSupportRequests(status string) ([]models.SupportRequest, error) {
	var reqs []models.SupportRequest
	q := s.db
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *GormStore) CreateSupportRequest(r *models.SupportRequest) error {
	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.CreatedAt = time.Now()
	return s.db.Create(r).Error
}

func (s *GormStore) TransitionSupportRequest(id, from, to string) (*models.SupportRequest, error) {
	var r models.SupportRequest
	if err := s.transition(&models.SupportRequest{}, &r, id, from, to); err != nil {
		return nil, err
	}
	return &r, nil
}

// Settings

func (s *GormStore) GetSetting(key string) (*models.Setting, error) {
	var set models.Setting
	if err := s.db.First(&set, "`key` = ?", key).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &set, nil
}

func (s *GormStore) SetSetting(key, value string) (*models.Setting, error) {
	var set models.Setting
	err := s.db.First(&set, "`key` = ?", key).Error
	switch {
	case err == nil:
		if err := s.db.Model(&set).Update("value", value).Error; err != nil {
			return nil, err
		}
		set.Value = value
		return &set, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		set = models.Setting{ID: uuid.NewString(), Key: key, Value: value}
		if err := s.db.Create(&set).Error; err != nil {
			return nil, err
		}
		return &set, nil
	default:
		return nil, err
	}
}

func (s *GormStore) ListSettings() ([]models.Setting, error) {
	var sets []models.Setting
	if err := s.db.Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}
