package controllers

import (
	"net/http"

	"project/models"
	"project/storage"
	"project/utils"
)

type WithdrawalController struct {
	store storage.Store
}

func NewWithdrawalController(store storage.Store) *WithdrawalController {
	return &WithdrawalController{store: store}
}

// POST /api/withdraw
//
// The amount is debited from the user's balance up front, so the same funds
// cannot back two open requests. A rejected request refunds the debit.
func (c *WithdrawalController) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string                   `json:"userId" validate:"required,uuid4"`
		Type    string                   `json:"type" validate:"required,oneof=upi amazon flipkart googleplay"`
		Amount  int64                    `json:"amount" validate:"required,gt=0"`
		Details models.WithdrawalDetails `json:"details"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	details, msg := normalizeDetails(req.Type, req.Details)
	if msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	wr := &models.WithdrawalRequest{
		UserID:  req.UserID,
		Type:    req.Type,
		Amount:  req.Amount,
		Details: details,
	}
	err := c.store.InTx(func(tx storage.Store) error {
		if _, err := tx.DebitUser(req.UserID, req.Amount); err != nil {
			return err
		}
		return tx.CreateWithdrawalRequest(wr)
	})
	if err != nil {
		WriteStoreError(w, err, "User")
		return
	}
	utils.WriteJSON(w, http.StatusOK, wr)
}

// normalizeDetails validates the payout destination for the chosen type and
// strips fields belonging to the other variant. Returns a client error message
// when the required fields are missing.
func normalizeDetails(wtype string, d models.WithdrawalDetails) (models.WithdrawalDetails, string) {
	if wtype == models.WithdrawalTypeUPI {
		if d.UPIID == "" {
			return models.WithdrawalDetails{}, "upiId is required for UPI withdrawals"
		}
		return models.WithdrawalDetails{UPIID: d.UPIID}, ""
	}
	if d.Email == "" || d.Mobile == "" {
		return models.WithdrawalDetails{}, "email and mobile are required for gift card withdrawals"
	}
	return models.WithdrawalDetails{Email: d.Email, Mobile: d.Mobile}, ""
}
