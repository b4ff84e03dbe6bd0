package controllers

import (
	"net/http"

	"project/models"
	"project/storage"
	"project/utils"
)

type SupportController struct {
	store storage.Store
}

func NewSupportController(store storage.Store) *SupportController {
	return &SupportController{store: store}
}

// POST /api/support
func (c *SupportController) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email   string `json:"email" validate:"required,email"`
		Message string `json:"message" validate:"required"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	sr := &models.SupportRequest{Email: req.Email, Message: req.Message}
	if err := c.store.CreateSupportRequest(sr); err != nil {
		WriteStoreError(w, err, "Support request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, sr)
}
