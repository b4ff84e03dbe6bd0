package admins

import (
	"net/http"

	"github.com/gorilla/mux"

	"project/controllers"
	"project/models"
	"project/storage"
	"project/utils"
)

type TasksController struct {
	store storage.Store
}

func NewTasksController(store storage.Store) *TasksController {
	return &TasksController{store: store}
}

// POST /api/admin/tasks
func (c *TasksController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title" validate:"required,max=255"`
		Description string `json:"description" validate:"required"`
		Reward      int64  `json:"reward" validate:"required,gt=0"`
		TaskType    string `json:"taskType" validate:"required,oneof=follow like share custom"`
		IsAdvanced  bool   `json:"isAdvanced"`
		IsActive    bool   `json:"isActive"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		TaskType:    req.TaskType,
		IsAdvanced:  req.IsAdvanced,
		IsActive:    req.IsActive,
	}
	if err := c.store.CreateTask(task); err != nil {
		controllers.WriteStoreError(w, err, "Task")
		return
	}
	utils.WriteJSON(w, http.StatusOK, task)
}

// PUT /api/admin/tasks/{taskId}
func (c *TasksController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       *string `json:"title" validate:"omitempty,max=255"`
		Description *string `json:"description" validate:"omitempty,min=1"`
		Reward      *int64  `json:"reward" validate:"omitempty,gt=0"`
		TaskType    *string `json:"taskType" validate:"omitempty,oneof=follow like share custom"`
		IsAdvanced  *bool   `json:"isAdvanced"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	task, err := c.store.UpdateTask(mux.Vars(r)["taskId"], storage.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		TaskType:    req.TaskType,
		IsAdvanced:  req.IsAdvanced,
		IsActive:    req.IsActive,
	})
	if err != nil {
		controllers.WriteStoreError(w, err, "Task")
		return
	}
	utils.WriteJSON(w, http.StatusOK, task)
}

// DELETE /api/admin/tasks/{taskId}
func (c *TasksController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := c.store.DeleteTask(mux.Vars(r)["taskId"]); err != nil {
		controllers.WriteStoreError(w, err, "Task")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
