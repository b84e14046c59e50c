package agent

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de agentes
var (
	// Erros de validação
	ErrAgentIDRequired = errors.New("agent ID is required")
	ErrNameRequired    = errors.New("agent name is required")
	ErrInvalidCategory = errors.New("invalid agent category")
	ErrInvalidEmail    = errors.New("invalid agent email")
	ErrAgentNotFound   = errors.New("agent not found")
	ErrAgentDuplicate  = errors.New("agent already exists")

	// Erros de banco de dados
	ErrFetchAgents = errors.New("error fetching agents from database")
	ErrCreateAgent = errors.New("error creating agent")
	ErrUpdateAgent = errors.New("error updating agent")
	ErrDeleteAgent = errors.New("error deleting agent")
	ErrGenerateID  = errors.New("error generating UUID")
)

// AgentError é um erro com contexto adicional para agentes
type AgentError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	AgentID string // ID do agente envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *AgentError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

func NewAgentError(err error, code string, details string) *AgentError {
	return &AgentError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewAgentErrorWithID(err error, code string, agentID string, details string) *AgentError {
	return &AgentError{
		Err:     err,
		Code:    code,
		AgentID: agentID,
		Details: details,
	}
}
