package admins

import (
	"net/http"

	"project/utils"
)

// AuthController gates the admin panel behind the shared static password.
// Login returns a bare success flag; no session or token is issued.
type AuthController struct {
	password string
}

func NewAuthController(password string) *AuthController {
	return &AuthController{password: password}
}

// POST /api/admin/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password" validate:"required"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Password != c.password {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
