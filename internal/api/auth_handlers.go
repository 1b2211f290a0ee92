package api

import (
	"encoding/json"
	"log"
	"net/http"

	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type AuthHandler struct {
	Service *service.UserService
}

func NewAuthHandler(svc *service.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.Service.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}

// Register handles the multipart registration form, including the optional
// KYC photo and id_document uploads.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req := entities.RegisterRequest{
		FirstName:        r.FormValue("first_name"),
		Username:         r.FormValue("username"),
		Password:         r.FormValue("password"),
		Role:             r.FormValue("role"),
		RegistrationType: r.FormValue("registration_type"),
		FullName:         r.FormValue("full_name"),
		ContactAddress:   r.FormValue("contact_address"),
		PhoneNumber:      r.FormValue("phone_number"),
		Email:            r.FormValue("email"),
		IDType:           r.FormValue("id_type"),
		IDNumber:         r.FormValue("id_number"),
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		path, err := saveUpload(file, header)
		if err != nil {
			log.Printf("Error saving photo upload: %v", err)
			http.Error(w, "Server error during registration", http.StatusInternalServerError)
			return
		}
		req.PhotoURL = path
	}
	if file, header, err := r.FormFile("id_document"); err == nil {
		path, err := saveUpload(file, header)
		if err != nil {
			log.Printf("Error saving id_document upload: %v", err)
			http.Error(w, "Server error during registration", http.StatusInternalServerError)
			return
		}
		req.IDURL = path
	}

	if _, err := h.Service.Register(req); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Registration successful")
}
