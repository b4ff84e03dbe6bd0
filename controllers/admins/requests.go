package admins

import (
	"net/http"

	"github.com/gorilla/mux"

	"project/controllers"
	"project/models"
	"project/services"
	"project/storage"
	"project/utils"
)

// RequestsController serves the admin review queues and applies decisions
// through the approval state machine.
type RequestsController struct {
	store   storage.Store
	reviews *services.ReviewService
}

func NewRequestsController(store storage.Store, reviews *services.ReviewService) *RequestsController {
	return &RequestsController{store: store, reviews: reviews}
}

type reviewPayload struct {
	Action string `json:"action" validate:"required"`
}

// GET /api/admin/verification-requests
func (c *RequestsController) ListVerificationRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.store.ListVerificationRequests(models.StatusPending)
	if err != nil {
		controllers.WriteStoreError(w, err, "Verification requests")
		return
	}
	if reqs == nil {
		reqs = []models.VerificationRequest{}
	}
	utils.WriteJSON(w, http.StatusOK, reqs)
}

// GET /api/admin/binding-requests
func (c *RequestsController) ListBindingRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.store.ListBindingRequests(models.StatusPending)
	if err != nil {
		controllers.WriteStoreError(w, err, "Binding requests")
		return
	}
	if reqs == nil {
		reqs = []models.InstagramBindingRequest{}
	}
	utils.WriteJSON(w, http.StatusOK, reqs)
}

// GET /api/admin/task-submissions
func (c *RequestsController) ListTaskSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := c.store.ListTaskSubmissions(models.StatusPending)
	if err != nil {
		controllers.WriteStoreError(w, err, "Task submissions")
		return
	}
	if subs == nil {
		subs = []models.TaskSubmission{}
	}
	utils.WriteJSON(w, http.StatusOK, subs)
}

// GET /api/admin/withdrawal-requests
func (c *RequestsController) ListWithdrawalRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.store.ListWithdrawalRequests(models.StatusPending)
	if err != nil {
		controllers.WriteStoreError(w, err, "Withdrawal requests")
		return
	}
	if reqs == nil {
		reqs = []models.WithdrawalRequest{}
	}
	utils.WriteJSON(w, http.StatusOK, reqs)
}

// GET /api/admin/support-requests
func (c *RequestsController) ListSupportRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.store.ListSupportRequests(models.StatusPending)
	if err != nil {
		controllers.WriteStoreError(w, err, "Support requests")
		return
	}
	if reqs == nil {
		reqs = []models.SupportRequest{}
	}
	utils.WriteJSON(w, http.StatusOK, reqs)
}

// POST /api/admin/verify/{requestId}
func (c *RequestsController) ReviewVerification(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		return
	}
	req, err := c.reviews.ReviewVerification(mux.Vars(r)["requestId"], payload.Action)
	if err != nil {
		controllers.WriteStoreError(w, err, "Verification request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

// POST /api/admin/tasks/submissions/{submissionId}
func (c *RequestsController) ReviewTaskSubmission(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		return
	}
	sub, err := c.reviews.ReviewTaskSubmission(mux.Vars(r)["submissionId"], payload.Action)
	if err != nil {
		controllers.WriteStoreError(w, err, "Task submission")
		return
	}
	utils.WriteJSON(w, http.StatusOK, sub)
}

// POST /api/admin/bind/{requestId}
func (c *RequestsController) ReviewBinding(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		return
	}
	req, err := c.reviews.ReviewBinding(mux.Vars(r)["requestId"], payload.Action)
	if err != nil {
		controllers.WriteStoreError(w, err, "Binding request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

// POST /api/admin/withdrawals/{requestId}
func (c *RequestsController) ReviewWithdrawal(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		return
	}
	req, err := c.reviews.ReviewWithdrawal(mux.Vars(r)["requestId"], payload.Action)
	if err != nil {
		controllers.WriteStoreError(w, err, "Withdrawal request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

// POST /api/admin/support/{requestId}
func (c *RequestsController) RespondSupport(w http.ResponseWriter, r *http.Request) {
	req, err := c.reviews.RespondSupport(mux.Vars(r)["requestId"])
	if err != nil {
		controllers.WriteStoreError(w, err, "Support request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}
