package services

import (
	"errors"

	"project/models"
	"project/storage"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ErrInvalidAction is returned for review payloads whose action is neither
// approve nor reject.
var ErrInvalidAction = errors.New("action must be approve or reject")

// ReviewService applies admin decisions to pending requests. Every review
// goes through the store's compare-and-set transition, so a request leaves
// pending exactly once and its side effects run exactly once; re-reviewing a
// terminal request fails with storage.ErrConflict and touches nothing.
type ReviewService struct {
	store storage.Store
}

func NewReviewService(store storage.Store) *ReviewService {
	return &ReviewService{store: store}
}

func terminalStatus(action string) (string, error) {
	switch action {
	case ActionApprove:
		return models.StatusApproved, nil
	case ActionReject:
		return models.StatusRejected, nil
	default:
		return "", ErrInvalidAction
	}
}

// ReviewVerification approves or rejects a handle verification. Approval
// creates the user account with the signup bonus.
func (s *ReviewService) ReviewVerification(id, action string) (*models.VerificationRequest, error) {
	to, err := terminalStatus(action)
	if err != nil {
		return nil, err
	}
	var req *models.VerificationRequest
	err = s.store.InTx(func(tx storage.Store) error {
		req, err = tx.TransitionVerificationRequest(id, models.StatusPending, to)
		if err != nil {
			return err
		}
		if to != models.StatusApproved {
			return nil
		}
		return tx.CreateUser(&models.User{
			InstagramHandle: req.InstagramHandle,
			IsVerified:      true,
			Balance:         models.SignupBonus,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ReviewTaskSubmission approves or rejects a proof screenshot. Approval
// credits the task reward, bumps the completed count and unlocks advanced
// access from the first completion onward.
func (s *ReviewService) ReviewTaskSubmission(id, action string) (*models.TaskSubmission, error) {
	to, err := terminalStatus(action)
	if err != nil {
		return nil, err
	}
	var sub *models.TaskSubmission
	err = s.store.InTx(func(tx storage.Store) error {
		sub, err = tx.TransitionTaskSubmission(id, models.StatusPending, to)
		if err != nil {
			return err
		}
		if to != models.StatusApproved {
			return nil
		}
		task, err := tx.GetTask(sub.TaskID)
		if err != nil {
			return err
		}
		_, err = tx.CreditUser(sub.UserID, task.Reward, 1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// ReviewBinding approves or rejects an account binding. Approval marks the
// referenced user as bound.
func (s *ReviewService) ReviewBinding(id, action string) (*models.InstagramBindingRequest, error) {
	to, err := terminalStatus(action)
	if err != nil {
		return nil, err
	}
	var req *models.InstagramBindingRequest
	err = s.store.InTx(func(tx storage.Store) error {
		req, err = tx.TransitionBindingRequest(id, models.StatusPending, to)
		if err != nil {
			return err
		}
		if to != models.StatusApproved {
			return nil
		}
		bound := true
		_, err = tx.UpdateUser(req.UserID, storage.UserPatch{IsInstagramBound: &bound})
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ReviewWithdrawal approves or rejects a payout. The amount was debited when
// the request was created, so approval moves no money; rejection refunds the
// reserved amount.
func (s *ReviewService) ReviewWithdrawal(id, action string) (*models.WithdrawalRequest, error) {
	to, err := terminalStatus(action)
	if err != nil {
		return nil, err
	}
	var req *models.WithdrawalRequest
	err = s.store.InTx(func(tx storage.Store) error {
		req, err = tx.TransitionWithdrawalRequest(id, models.StatusPending, to)
		if err != nil {
			return err
		}
		if to != models.StatusRejected {
			return nil
		}
		_, err = tx.CreditUser(req.UserID, req.Amount, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// RespondSupport marks a support request as handled.
func (s *ReviewService) RespondSupport(id string) (*models.SupportRequest, error) {
	return s.store.TransitionSupportRequest(id, models.StatusPending, models.StatusResponded)
}
