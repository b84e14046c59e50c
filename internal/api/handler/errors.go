package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/agent-performance-api/internal/usecases/agent"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/internal/usecases/diagnosing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/importing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
)

// writeServiceError converte os erros tipados dos casos de uso na resposta padronizada.
// fallbackMessage é usado quando o erro não carrega código próprio.
func writeServiceError(w http.ResponseWriter, err error, fallbackMessage string) {
	var (
		authErr        *authenticating.AuthError
		agentErr       *agent.AgentError
		importErr      *importing.ImportError
		diagnosticsErr *diagnosing.DiagnosticsError
	)

	switch {
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Details, userDetails(authErr.UserID))
	case errors.As(err, &agentErr):
		apiErrors.WriteError(w, agentErr.Code, agentErr.Details, nil)
	case errors.As(err, &importErr):
		apiErrors.WriteError(w, importErr.Code, importErr.Details, nil)
	case errors.As(err, &diagnosticsErr):
		apiErrors.WriteError(w, diagnosticsErr.Code, diagnosticsErr.Details, nil)

	case errors.Is(err, performance.ErrMissingFilter):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros category e month são obrigatórios", nil)
	case errors.Is(err, performance.ErrInvalidCategory):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Categoria deve ser Yurtdışı ou Yurtiçi", nil)
	case errors.Is(err, performance.ErrAgentNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAgentNotFound, "Agente não encontrado", nil)
	case errors.Is(err, performance.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "Relatório não encontrado", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
	}
}

func userDetails(userID int) any {
	if userID == 0 {
		return nil
	}
	return map[string]any{"user_id": userID}
}
