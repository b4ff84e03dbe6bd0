package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"project/models"
	"project/storage"
	"project/utils"
)

type TaskController struct {
	store storage.Store
}

func NewTaskController(store storage.Store) *TaskController {
	return &TaskController{store: store}
}

// GET /api/tasks?advanced=bool
func (c *TaskController) ListTasks(w http.ResponseWriter, r *http.Request) {
	advanced := r.URL.Query().Get("advanced") == "true"
	tasks, err := c.store.ListTasks(advanced)
	if err != nil {
		WriteStoreError(w, err, "Tasks")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	utils.WriteJSON(w, http.StatusOK, tasks)
}

// POST /api/tasks/{taskId}/submit
func (c *TaskController) SubmitTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]
	var req struct {
		UserID        string `json:"userId" validate:"required,uuid4"`
		ScreenshotURL string `json:"screenshotUrl" validate:"omitempty,max=512"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := c.store.GetUser(req.UserID)
	if err != nil {
		WriteStoreError(w, err, "User")
		return
	}
	task, err := c.store.GetTask(taskID)
	if err != nil {
		WriteStoreError(w, err, "Task")
		return
	}
	if !task.IsActive {
		utils.WriteError(w, http.StatusBadRequest, "Task is not active")
		return
	}

	sub := &models.TaskSubmission{
		UserID:        user.ID,
		TaskID:        task.ID,
		ScreenshotURL: req.ScreenshotURL,
	}
	if err := c.store.CreateTaskSubmission(sub); err != nil {
		WriteStoreError(w, err, "Task submission")
		return
	}
	utils.WriteJSON(w, http.StatusOK, sub)
}
