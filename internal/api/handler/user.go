package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/log"
	"github.com/vfg2006/agent-performance-api/pkg/middleware"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

type ResetPasswordResponse struct {
	Password string `json:"password"`
}

// ListUsers lista os usuários não excluídos
func ListUsers(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao buscar usuários")
			writeServiceError(w, err, "Erro ao buscar usuários")
			return
		}

		if users == nil {
			users = []*domain.User{}
		}

		utils.WriteJSON(w, http.StatusOK, users)
	})
}

// UpdateUser altera nome, perfil e situação de um usuário
func UpdateUser(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateUser")

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		var request domain.UpdateUserRequest
		if err := utils.DecodeJSON(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		request.ID = id

		user, err := service.UpdateUser(r.Context(), session, &request)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("user_id", id).Error("Erro ao atualizar usuário")
			writeServiceError(w, err, "Erro ao atualizar usuário")
			return
		}

		utils.WriteJSON(w, http.StatusOK, user)
	})
}

// DeleteUser faz a exclusão lógica; o administrador não pode excluir a si mesmo
func DeleteUser(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteUser")

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		if err := service.DeleteUser(r.Context(), session, id); err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("user_id", id).Error("Erro ao excluir usuário")
			writeServiceError(w, err, "Erro ao excluir usuário")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// ResetPassword gera uma senha forte para o usuário informado
func ResetPassword(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ResetPassword")

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		password, err := service.ResetPassword(r.Context(), session, id)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("user_id", id).Error("Erro ao gerar senha")
			writeServiceError(w, err, "Erro ao gerar senha")
			return
		}

		utils.WriteJSON(w, http.StatusOK, ResetPasswordResponse{Password: password})
	})
}
