package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"project/models"
	"project/storage"
	"project/utils"
)

type PublicController struct {
	store storage.Store
}

func NewPublicController(store storage.Store) *PublicController {
	return &PublicController{store: store}
}

// GET /api/stats
func (c *PublicController) GetStats(w http.ResponseWriter, r *http.Request) {
	users, err := c.store.ListUsers()
	if err != nil {
		WriteStoreError(w, err, "Stats")
		return
	}
	var active int
	var paid int64
	for _, u := range users {
		if !u.IsVerified {
			continue
		}
		active++
		if u.Balance < models.SignupBonus {
			paid += models.SignupBonus - u.Balance
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"activeUsers": active,
		"totalPaid":   paid / 100, // paisa to rupees for the landing page counter
	})
}

// POST /api/verify
func (c *PublicController) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstagramHandle string `json:"instagramHandle" validate:"required,max=100"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if user, err := c.store.GetUserByHandle(req.InstagramHandle); err == nil && user.IsVerified {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": "already_verified",
			"user":   user,
		})
		return
	}

	// A pending request for the same handle is reused rather than duplicated.
	if existing, err := c.store.GetPendingVerificationByHandle(req.InstagramHandle); err == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":  models.StatusPending,
			"request": existing,
		})
		return
	}

	vr := &models.VerificationRequest{InstagramHandle: req.InstagramHandle}
	if err := c.store.CreateVerificationRequest(vr); err != nil {
		WriteStoreError(w, err, "Verification request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  models.StatusPending,
		"request": vr,
	})
}

// GET /api/verify/{handle}
func (c *PublicController) CheckVerification(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	user, err := c.store.GetUserByHandle(handle)
	if err == nil && user.IsVerified {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": "verified",
			"user":   user,
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": models.StatusPending})
}

// GET /api/user/{handle}
func (c *PublicController) GetUser(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	user, err := c.store.GetUserByHandle(handle)
	if err != nil || !user.IsVerified {
		utils.WriteError(w, http.StatusNotFound, "User not found or not verified")
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

// GET /api/user/{handle}/submissions
func (c *PublicController) GetUserSubmissions(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	user, err := c.store.GetUserByHandle(handle)
	if err != nil || !user.IsVerified {
		utils.WriteError(w, http.StatusNotFound, "User not found or not verified")
		return
	}
	subs, err := c.store.ListTaskSubmissionsByUser(user.ID)
	if err != nil {
		WriteStoreError(w, err, "Task submissions")
		return
	}
	if subs == nil {
		subs = []models.TaskSubmission{}
	}
	utils.WriteJSON(w, http.StatusOK, subs)
}
