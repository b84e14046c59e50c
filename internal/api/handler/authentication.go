package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/log"
	"github.com/vfg2006/agent-performance-api/pkg/middleware"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Falha no login")
			writeServiceError(w, err, "Erro interno ao realizar login")
			return
		}

		utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
	})
}

// Register cria um usuário ativo com perfil de visualização
func Register(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Register")

		var req RegisterRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		user, err := service.RegisterUser(r.Context(), &domain.User{
			FullName:     req.FullName,
			Email:        req.Email,
			PasswordHash: req.Password,
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao registrar usuário")
			writeServiceError(w, err, "Erro ao criar usuário")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, user)
	})
}

// GetMe retorna o perfil do usuário da sessão
func GetMe(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), session.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao obter dados do usuário")
			writeServiceError(w, err, "Erro ao obter dados do usuário")
			return
		}

		utils.WriteJSON(w, http.StatusOK, user)
	})
}

// ChangePassword permite que o usuário altere a própria senha
func ChangePassword(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ChangePassword")

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		targetUserID, ok := userIDParam(w, r)
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.ChangePassword(r.Context(), session, targetUserID, req.CurrentPassword, req.NewPassword); err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("user_id", targetUserID).Warn("Erro ao alterar senha")
			writeServiceError(w, err, "Erro ao alterar senha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// userIDParam lê o :id numérico da rota e responde 400 quando inválido
func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário não fornecido", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
		return 0, false
	}

	return id, true
}
