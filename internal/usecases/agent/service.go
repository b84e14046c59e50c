package agent

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/infrastructure/repository"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

type AgentService interface {
	ListAgents(ctx context.Context, filter domain.AgentFilter) ([]domain.Agent, error)
	GetAgent(ctx context.Context, agentID string) (*domain.Agent, error)
	CreateAgent(ctx context.Context, request *domain.UpsertAgentRequest) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, request *domain.UpsertAgentRequest) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, agentID string) error
}

type Service struct {
	agentRepository repository.AgentRepository
}

func NewService(agentRepository repository.AgentRepository) AgentService {
	return &Service{
		agentRepository: agentRepository,
	}
}

func (s *Service) ListAgents(ctx context.Context, filter domain.AgentFilter) ([]domain.Agent, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, NewAgentError(ErrInvalidCategory, apiErrors.ErrInvalidRequest, "Categoria deve ser Yurtdışı ou Yurtiçi")
	}

	agents, err := s.agentRepository.ListAgents(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar agentes no repositório")
		return nil, NewAgentError(ErrFetchAgents, apiErrors.ErrDatabaseOperation, "Falha ao listar agentes no banco de dados")
	}

	return agents, nil
}

func (s *Service) GetAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	if agentID == "" {
		return nil, NewAgentError(ErrAgentIDRequired, apiErrors.ErrMissingRequiredData, "ID do agente é obrigatório")
	}

	agent, err := s.agentRepository.GetAgentByID(ctx, agentID)
	if err != nil {
		logrus.WithError(err).WithField("agent_id", agentID).Error("Erro ao buscar agente no repositório")
		return nil, NewAgentErrorWithID(ErrFetchAgents, apiErrors.ErrDatabaseOperation, agentID, "Erro ao buscar agente no banco de dados")
	}

	if agent == nil {
		return nil, NewAgentErrorWithID(ErrAgentNotFound, apiErrors.ErrAgentNotFound, agentID, "Agente não encontrado")
	}

	return agent, nil
}

func (s *Service) CreateAgent(ctx context.Context, request *domain.UpsertAgentRequest) (*domain.Agent, error) {
	if err := validate(request); err != nil {
		return nil, err
	}

	active := true
	if request.Active != nil {
		active = *request.Active
	}

	agent := &domain.Agent{
		ID:       utils.NewUUID(),
		Name:     strings.TrimSpace(request.Name),
		Category: request.Category,
		Email:    normalizeEmail(request.Email),
		Notes:    strings.TrimSpace(request.Notes),
		Active:   active,
	}

	if err := s.agentRepository.CreateAgent(ctx, agent); err != nil {
		if errors.Is(err, repository.ErrDuplicateAgent) {
			return nil, NewAgentError(ErrAgentDuplicate, apiErrors.ErrAgentDuplicate, "Já existe um agente com este nome ou email")
		}
		logrus.WithError(err).Error("Erro ao criar agente no repositório")
		return nil, NewAgentError(ErrCreateAgent, apiErrors.ErrDatabaseOperation, "Falha ao criar agente no banco de dados")
	}

	logrus.WithFields(logrus.Fields{"agent_id": agent.ID, "name": agent.Name}).Info("Agente criado")

	return agent, nil
}

func (s *Service) UpdateAgent(ctx context.Context, request *domain.UpsertAgentRequest) (*domain.Agent, error) {
	if request.ID == "" {
		return nil, NewAgentError(ErrAgentIDRequired, apiErrors.ErrMissingRequiredData, "ID do agente é obrigatório")
	}

	if err := validate(request); err != nil {
		return nil, err
	}

	agent, err := s.GetAgent(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	agent.Name = strings.TrimSpace(request.Name)
	agent.Category = request.Category
	agent.Email = normalizeEmail(request.Email)
	agent.Notes = strings.TrimSpace(request.Notes)
	if request.Active != nil {
		agent.Active = *request.Active
	}

	if err := s.agentRepository.UpdateAgent(ctx, agent); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateAgent):
			return nil, NewAgentErrorWithID(ErrAgentDuplicate, apiErrors.ErrAgentDuplicate, request.ID, "Já existe um agente com este nome ou email")
		case errors.Is(err, sql.ErrNoRows):
			return nil, NewAgentErrorWithID(ErrAgentNotFound, apiErrors.ErrAgentNotFound, request.ID, "Agente não encontrado")
		}
		logrus.WithError(err).WithField("agent_id", request.ID).Error("Erro ao atualizar agente no repositório")
		return nil, NewAgentErrorWithID(ErrUpdateAgent, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar agente no banco de dados")
	}

	return agent, nil
}

// DeleteAgent remove o agente. Os relatórios dele permanecem e passam a ser órfãos.
func (s *Service) DeleteAgent(ctx context.Context, agentID string) error {
	if agentID == "" {
		return NewAgentError(ErrAgentIDRequired, apiErrors.ErrMissingRequiredData, "ID do agente é obrigatório")
	}

	if err := s.agentRepository.DeleteAgent(ctx, agentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewAgentErrorWithID(ErrAgentNotFound, apiErrors.ErrAgentNotFound, agentID, "Agente não encontrado")
		}
		logrus.WithError(err).WithField("agent_id", agentID).Error("Erro ao excluir agente no repositório")
		return NewAgentErrorWithID(ErrDeleteAgent, apiErrors.ErrDatabaseOperation, agentID, "Falha ao excluir agente no banco de dados")
	}

	logrus.WithField("agent_id", agentID).Info("Agente excluído")

	return nil
}

func validate(request *domain.UpsertAgentRequest) error {
	if strings.TrimSpace(request.Name) == "" {
		return NewAgentError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome do agente é obrigatório")
	}

	if !request.Category.IsValid() {
		return NewAgentError(ErrInvalidCategory, apiErrors.ErrInvalidRequest, "Categoria deve ser Yurtdışı ou Yurtiçi")
	}

	if email := normalizeEmail(request.Email); email != nil {
		if _, err := mail.ParseAddress(*email); err != nil {
			return NewAgentError(ErrInvalidEmail, apiErrors.ErrInvalidFormat, "Email do agente em formato inválido")
		}
	}

	return nil
}

// normalizeEmail trata email vazio como ausente
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
