package controllers

import (
	"net/http"

	"project/models"
	"project/storage"
	"project/utils"
)

type BindingController struct {
	store storage.Store
}

func NewBindingController(store storage.Store) *BindingController {
	return &BindingController{store: store}
}

// POST /api/bind-instagram
func (c *BindingController) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     string `json:"userId" validate:"required,uuid4"`
		Username   string `json:"username" validate:"required,max=100"`
		Password   string `json:"password" validate:"required,max=255"`
		AccessCode string `json:"accessCode" validate:"omitempty,max=100"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if _, err := c.store.GetUser(req.UserID); err != nil {
		WriteStoreError(w, err, "User")
		return
	}

	br := &models.InstagramBindingRequest{
		UserID:     req.UserID,
		Username:   req.Username,
		Password:   req.Password,
		AccessCode: req.AccessCode,
	}
	if err := c.store.CreateBindingRequest(br); err != nil {
		WriteStoreError(w, err, "Binding request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  models.StatusPending,
		"request": br,
	})
}
