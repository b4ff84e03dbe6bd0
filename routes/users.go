package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"project/controllers"
)

func UserRoutes(api *mux.Router, deps Deps) {
	public := controllers.NewPublicController(deps.Store)
	tasks := controllers.NewTaskController(deps.Store)
	binding := controllers.NewBindingController(deps.Store)
	withdrawals := controllers.NewWithdrawalController(deps.Store)
	support := controllers.NewSupportController(deps.Store)

	api.HandleFunc("/stats", public.GetStats).Methods(http.MethodGet)

	api.HandleFunc("/verify", public.SubmitVerification).Methods(http.MethodPost)
	api.HandleFunc("/verify/{handle}", public.CheckVerification).Methods(http.MethodGet)

	api.HandleFunc("/user/{handle}", public.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/user/{handle}/submissions", public.GetUserSubmissions).Methods(http.MethodGet)

	api.HandleFunc("/tasks", tasks.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskId}/submit", tasks.SubmitTask).Methods(http.MethodPost)

	api.HandleFunc("/bind-instagram", binding.Submit).Methods(http.MethodPost)
	api.HandleFunc("/withdraw", withdrawals.Submit).Methods(http.MethodPost)
	api.HandleFunc("/support", support.Submit).Methods(http.MethodPost)
}
