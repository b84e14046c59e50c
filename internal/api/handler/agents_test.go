package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/agent"
	agentmocks "github.com/vfg2006/agent-performance-api/internal/usecases/agent/mocks"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	performancemocks "github.com/vfg2006/agent-performance-api/internal/usecases/performance/mocks"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestListAgents(t *testing.T) {
	international := domain.AgentCategoryInternational

	tests := []struct {
		name           string
		target         string
		session        *domain.Session
		setupMock      func(m *agentmocks.MockAgentService)
		expectedStatus int
		expectedCode   string
		expectedNames  []string
	}{
		{
			name:    "Lista todos os agentes",
			target:  "/v1/agents",
			session: viewerSession,
			setupMock: func(m *agentmocks.MockAgentService) {
				m.EXPECT().ListAgents(gomock.Any(), domain.AgentFilter{}).
					Return([]domain.Agent{{ID: "a1", Name: "Adviye"}, {ID: "a2", Name: "Hande"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Adviye", "Hande"},
		},
		{
			name:    "Filtra por categoria",
			target:  "/v1/agents?category=Yurtd%C4%B1%C5%9F%C4%B1",
			session: agentSession,
			setupMock: func(m *agentmocks.MockAgentService) {
				m.EXPECT().ListAgents(gomock.Any(), domain.AgentFilter{Category: &international}).
					Return([]domain.Agent{{ID: "a1", Name: "Adviye", Category: international}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Adviye"},
		},
		{
			name:    "Lista vazia vira array",
			target:  "/v1/agents",
			session: viewerSession,
			setupMock: func(m *agentmocks.MockAgentService) {
				m.EXPECT().ListAgents(gomock.Any(), domain.AgentFilter{}).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedNames:  []string{},
		},
		{
			name:    "Categoria inválida",
			target:  "/v1/agents?category=Mars",
			session: viewerSession,
			setupMock: func(m *agentmocks.MockAgentService) {
				m.EXPECT().ListAgents(gomock.Any(), gomock.Any()).
					Return(nil, agent.NewAgentError(agent.ErrInvalidCategory, apiErrors.ErrInvalidRequest, "Categoria deve ser Yurtdışı ou Yurtiçi"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:           "Sem sessão",
			target:         "/v1/agents",
			setupMock:      func(m *agentmocks.MockAgentService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAgents := agentmocks.NewMockAgentService(ctrl)
			tt.setupMock(mockAgents)

			rec := serve(Agents(mockAgents, performancemocks.NewMockPerformanceService(ctrl)), tt.session, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
				return
			}

			var agents []domain.Agent
			decodeBody(t, rec, &agents)
			names := make([]string, 0, len(agents))
			for _, a := range agents {
				names = append(names, a.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestGetAgent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAgents := agentmocks.NewMockAgentService(ctrl)
	routes := Agents(mockAgents, performancemocks.NewMockPerformanceService(ctrl))

	t.Run("Agente encontrado", func(t *testing.T) {
		mockAgents.EXPECT().GetAgent(gomock.Any(), "a1").Return(&domain.Agent{ID: "a1", Name: "Adviye"}, nil)

		rec := serve(routes, viewerSession, http.MethodGet, "/v1/agents/a1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var found domain.Agent
		decodeBody(t, rec, &found)
		assert.Equal(t, "Adviye", found.Name)
	})

	t.Run("Agente inexistente", func(t *testing.T) {
		mockAgents.EXPECT().GetAgent(gomock.Any(), "zz").
			Return(nil, agent.NewAgentErrorWithID(agent.ErrAgentNotFound, apiErrors.ErrAgentNotFound, "zz", "Agente não encontrado"))

		rec := serve(routes, viewerSession, http.MethodGet, "/v1/agents/zz", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrAgentNotFound, errorCode(t, rec))
	})
}

func TestCreateAgent(t *testing.T) {
	tests := []struct {
		name           string
		session        *domain.Session
		body           string
		setupMock      func(m *agentmocks.MockAgentService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:    "Administrador cria agente",
			session: adminSession,
			body:    `{"name":"Hande","category":"Yurtiçi"}`,
			setupMock: func(m *agentmocks.MockAgentService) {
				m.EXPECT().CreateAgent(gomock.Any(), &domain.UpsertAgentRequest{Name: "Hande", Category: domain.AgentCategoryDomestic}).
					Return(&domain.Agent{ID: "a9", Name: "Hande", Category: domain.AgentCategoryDomestic, Active: true}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Agente não pode criar",
			session:        agentSession,
			body:           `{"name":"Hande","category":"Yurtiçi"}`,
			setupMock:      func(m *agentmocks.MockAgentService) {},
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:           "Corpo inválido",
			session:        adminSession,
			body:           `{"name":`,
			setupMock:      func(m *agentmocks.MockAgentService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:    "Nome duplicado",
			session: adminSession,
			body:    `{"name":"Hande","category":"Yurtiçi"}`,
			setupMock: func(m *agentmocks.MockAgentService) {
				m.EXPECT().CreateAgent(gomock.Any(), gomock.Any()).
					Return(nil, agent.NewAgentError(agent.ErrAgentDuplicate, apiErrors.ErrAgentDuplicate, "Já existe um agente com este nome ou email"))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   apiErrors.ErrAgentDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAgents := agentmocks.NewMockAgentService(ctrl)
			tt.setupMock(mockAgents)

			rec := serve(Agents(mockAgents, performancemocks.NewMockPerformanceService(ctrl)), tt.session, http.MethodPost, "/v1/agents", strings.NewReader(tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
		})
	}
}

func TestUpdateAgent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAgents := agentmocks.NewMockAgentService(ctrl)
	active := false

	// O ID do corpo é ignorado em favor do ID da rota
	mockAgents.EXPECT().UpdateAgent(gomock.Any(), &domain.UpsertAgentRequest{
		ID:       "a1",
		Name:     "Adviye",
		Category: domain.AgentCategoryInternational,
		Active:   &active,
	}).Return(&domain.Agent{ID: "a1", Name: "Adviye", Category: domain.AgentCategoryInternational}, nil)

	rec := serve(Agents(mockAgents, performancemocks.NewMockPerformanceService(ctrl)), adminSession, http.MethodPut, "/v1/agents/a1",
		strings.NewReader(`{"id":"outro","name":"Adviye","category":"Yurtdışı","active":false}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteAgent(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "Excluído", expectedStatus: http.StatusNoContent},
		{
			name:           "Inexistente",
			serviceErr:     agent.NewAgentErrorWithID(agent.ErrAgentNotFound, apiErrors.ErrAgentNotFound, "a1", "Agente não encontrado"),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAgents := agentmocks.NewMockAgentService(ctrl)
			mockAgents.EXPECT().DeleteAgent(gomock.Any(), "a1").Return(tt.serviceErr)

			rec := serve(Agents(mockAgents, performancemocks.NewMockPerformanceService(ctrl)), adminSession, http.MethodDelete, "/v1/agents/a1", nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestGetAgentStats(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		month          string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Estatísticas de um mês",
			target:         "/v1/agents/a1/stats?month=May%C4%B1s",
			month:          "Mayıs",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Sem mês considera todos",
			target:         "/v1/agents/a1/stats",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Agente inexistente",
			target:         "/v1/agents/a1/stats",
			serviceErr:     performance.ErrAgentNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   apiErrors.ErrAgentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockPerformance := performancemocks.NewMockPerformanceService(ctrl)
			if tt.serviceErr != nil {
				mockPerformance.EXPECT().AgentStats(gomock.Any(), "a1", tt.month).Return(nil, tt.serviceErr)
			} else {
				mockPerformance.EXPECT().AgentStats(gomock.Any(), "a1", tt.month).
					Return(&domain.AgentStats{Agent: domain.Agent{ID: "a1"}, Month: tt.month, ReportCount: 3}, nil)
			}

			rec := serve(Agents(agentmocks.NewMockAgentService(ctrl), mockPerformance), agentSession, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
				return
			}

			var stats domain.AgentStats
			decodeBody(t, rec, &stats)
			assert.Equal(t, 3, stats.ReportCount)
		})
	}
}
