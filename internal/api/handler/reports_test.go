package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	performancemocks "github.com/vfg2006/agent-performance-api/internal/usecases/performance/mocks"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestGetDashboard(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(m *performancemocks.MockPerformanceService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "Painel do mês",
			target: "/v1/dashboard?category=Yurti%C3%A7i&month=May%C4%B1s",
			setupMock: func(m *performancemocks.MockPerformanceService) {
				filter := domain.PerformanceFilter{Category: domain.AgentCategoryDomestic, Month: "Mayıs"}
				m.EXPECT().Dashboard(gomock.Any(), filter).Return(&domain.Dashboard{
					Filter:      filter,
					Rows:        []domain.AggregatedAgentRow{{Agent: domain.Agent{Name: "Hande"}, SalesRate: 12.5}},
					Totals:      domain.TotalsRow{SalesRate: 12.5},
					ReportCount: 4,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Sem mês",
			target:         "/v1/dashboard?category=Yurti%C3%A7i",
			setupMock:      func(m *performancemocks.MockPerformanceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:           "Sem categoria",
			target:         "/v1/dashboard?month=May%C4%B1s",
			setupMock:      func(m *performancemocks.MockPerformanceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "Erro inesperado",
			target: "/v1/dashboard?category=Yurti%C3%A7i&month=T%C3%BCm%C3%BC",
			setupMock: func(m *performancemocks.MockPerformanceService) {
				m.EXPECT().Dashboard(gomock.Any(), gomock.Any()).Return(nil, errors.New("falhou"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockPerformance := performancemocks.NewMockPerformanceService(ctrl)
			tt.setupMock(mockPerformance)

			rec := serve(Reports(mockPerformance), viewerSession, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
				return
			}

			var dashboard domain.Dashboard
			decodeBody(t, rec, &dashboard)
			require.Len(t, dashboard.Rows, 1)
			assert.Equal(t, "Hande", dashboard.Rows[0].Agent.Name)
			assert.Equal(t, 4, dashboard.ReportCount)
		})
	}
}

func TestListReports(t *testing.T) {
	domestic := domain.AgentCategoryDomestic

	tests := []struct {
		name           string
		target         string
		setupMock      func(m *performancemocks.MockPerformanceService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "Sem filtros",
			target: "/v1/reports",
			setupMock: func(m *performancemocks.MockPerformanceService) {
				m.EXPECT().ListReports(gomock.Any(), domain.ReportFilter{}, (*domain.AgentCategory)(nil)).
					Return(&domain.ReportList{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Com todos os filtros",
			target: "/v1/reports?month=Haziran&category=Yurti%C3%A7i&agent_id=a1",
			setupMock: func(m *performancemocks.MockPerformanceService) {
				m.EXPECT().ListReports(gomock.Any(), domain.ReportFilter{Month: "Haziran", AgentID: "a1"}, &domestic).
					Return(&domain.ReportList{Reports: []domain.ReportView{{AgentName: "Hande"}}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Categoria inválida",
			target: "/v1/reports?category=Mars",
			setupMock: func(m *performancemocks.MockPerformanceService) {
				m.EXPECT().ListReports(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, performance.ErrInvalidCategory)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockPerformance := performancemocks.NewMockPerformanceService(ctrl)
			tt.setupMock(mockPerformance)

			rec := serve(Reports(mockPerformance), agentSession, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
		})
	}
}

func TestListMonths(t *testing.T) {
	tests := []struct {
		name     string
		months   []string
		expected []string
	}{
		{name: "Meses distintos", months: []string{"Mayıs", "Haziran"}, expected: []string{"Mayıs", "Haziran"}},
		{name: "Sem relatórios", months: nil, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockPerformance := performancemocks.NewMockPerformanceService(ctrl)
			mockPerformance.EXPECT().ListMonths(gomock.Any()).Return(tt.months, nil)

			rec := serve(Reports(mockPerformance), viewerSession, http.MethodGet, "/v1/reports/months", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			var months []string
			decodeBody(t, rec, &months)
			assert.Equal(t, tt.expected, months)
		})
	}
}

func TestDeleteReport(t *testing.T) {
	tests := []struct {
		name           string
		session        *domain.Session
		setupMock      func(m *performancemocks.MockPerformanceService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:    "Administrador exclui",
			session: adminSession,
			setupMock: func(m *performancemocks.MockPerformanceService) {
				m.EXPECT().DeleteReport(gomock.Any(), "r1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:    "Relatório inexistente",
			session: adminSession,
			setupMock: func(m *performancemocks.MockPerformanceService) {
				m.EXPECT().DeleteReport(gomock.Any(), "r1").Return(performance.ErrReportNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   apiErrors.ErrReportNotFound,
		},
		{
			name:           "Visualizador não pode excluir",
			session:        viewerSession,
			setupMock:      func(m *performancemocks.MockPerformanceService) {},
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrInsufficientPrivilege,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockPerformance := performancemocks.NewMockPerformanceService(ctrl)
			tt.setupMock(mockPerformance)

			rec := serve(Reports(mockPerformance), tt.session, http.MethodDelete, "/v1/reports/r1", nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
		})
	}
}
