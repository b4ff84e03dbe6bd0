package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"project/controllers/admins"
	"project/middleware"
	"project/services"
)

func AdminRoutes(api *mux.Router, deps Deps) {
	auth := admins.NewAuthController(deps.Cfg.AdminPassword)
	requests := admins.NewRequestsController(deps.Store, services.NewReviewService(deps.Store))
	tasks := admins.NewTasksController(deps.Store)
	settings := admins.NewSettingsController(deps.Store)

	// Rate limit login attempts: 5 per IP per minute
	var loginLimiter middleware.Limiter = middleware.NewIPRateLimiter(5, time.Minute)
	if deps.Redis != nil {
		loginLimiter = middleware.NewRedisRateLimiter(deps.Redis, "admin_login", 5, time.Minute)
	}
	api.Handle("/admin/login", loginLimiter.Middleware(http.HandlerFunc(auth.Login))).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()

	// Pending review queues
	admin.HandleFunc("/verification-requests", requests.ListVerificationRequests).Methods(http.MethodGet)
	admin.HandleFunc("/binding-requests", requests.ListBindingRequests).Methods(http.MethodGet)
	admin.HandleFunc("/task-submissions", requests.ListTaskSubmissions).Methods(http.MethodGet)
	admin.HandleFunc("/withdrawal-requests", requests.ListWithdrawalRequests).Methods(http.MethodGet)
	admin.HandleFunc("/support-requests", requests.ListSupportRequests).Methods(http.MethodGet)

	// Review decisions
	admin.HandleFunc("/verify/{requestId}", requests.ReviewVerification).Methods(http.MethodPost)
	admin.HandleFunc("/bind/{requestId}", requests.ReviewBinding).Methods(http.MethodPost)
	admin.HandleFunc("/tasks/submissions/{submissionId}", requests.ReviewTaskSubmission).Methods(http.MethodPost)
	admin.HandleFunc("/withdrawals/{requestId}", requests.ReviewWithdrawal).Methods(http.MethodPost)
	admin.HandleFunc("/support/{requestId}", requests.RespondSupport).Methods(http.MethodPost)

	// Task management
	admin.HandleFunc("/tasks", tasks.CreateTask).Methods(http.MethodPost)
	admin.HandleFunc("/tasks/{taskId}", tasks.UpdateTask).Methods(http.MethodPut)
	admin.HandleFunc("/tasks/{taskId}", tasks.DeleteTask).Methods(http.MethodDelete)

	// Settings
	admin.HandleFunc("/settings", settings.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", settings.UpsertSetting).Methods(http.MethodPost)
}
