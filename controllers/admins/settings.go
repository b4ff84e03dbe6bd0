package admins

import (
	"net/http"

	"project/controllers"
	"project/models"
	"project/storage"
	"project/utils"
)

type SettingsController struct {
	store storage.Store
}

func NewSettingsController(store storage.Store) *SettingsController {
	return &SettingsController{store: store}
}

// GET /api/admin/settings
func (c *SettingsController) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.store.ListSettings()
	if err != nil {
		controllers.WriteStoreError(w, err, "Settings")
		return
	}
	if settings == nil {
		settings = []models.Setting{}
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

// POST /api/admin/settings
func (c *SettingsController) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key" validate:"required,max=100"`
		Value string `json:"value" validate:"required"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	setting, err := c.store.SetSetting(req.Key, req.Value)
	if err != nil {
		controllers.WriteStoreError(w, err, "Setting")
		return
	}
	utils.WriteJSON(w, http.StatusOK, setting)
}
