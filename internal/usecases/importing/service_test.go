package importing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheetsmocks "github.com/vfg2006/agent-performance-api/infrastructure/integrator/sheets/mocks"
	amqpmocks "github.com/vfg2006/agent-performance-api/infrastructure/messaging/amqp/mocks"
	"github.com/vfg2006/agent-performance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const sampleCSV = `Agent,Tarih,Gelen Data,Görüşülen,Randevu,Satış Yüzdesi
Adviye,2024-05-07,100,50,10,10
Ghost,2024-05-07,10,5,1,10
Çiğdem Kaya,2024-06-03,40,20,2,5
`

type importMocks struct {
	agentRepo  *mocks.MockAgentRepository
	reportRepo *mocks.MockReportRepository
	reader     *sheetsmocks.MockReader
	publisher  *amqpmocks.MockPublisher
}

func testImportConfig() *config.Config {
	return &config.Config{
		Import:     config.Import{BatchSize: 50, MaxRows: 1000},
		SheetsSync: config.SheetsSync{Range: "Raporlar!A1:L"},
	}
}

func newTestImporter(t *testing.T, ctrl *gomock.Controller) (Importer, importMocks) {
	t.Helper()

	m := importMocks{
		agentRepo:  mocks.NewMockAgentRepository(ctrl),
		reportRepo: mocks.NewMockReportRepository(ctrl),
		reader:     sheetsmocks.NewMockReader(ctrl),
		publisher:  amqpmocks.NewMockPublisher(ctrl),
	}

	service := NewService(m.agentRepo, m.reportRepo, m.reader, m.publisher, testSchema(t), testImportConfig())
	return service, m
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestImporter(t, ctrl)

	m.agentRepo.EXPECT().ListAgents(gomock.Any(), domain.AgentFilter{}).Return(testAgents, nil)
	m.reportRepo.EXPECT().InsertReports(gomock.Any(), gomock.Any(), 50).DoAndReturn(
		func(_ context.Context, reports []domain.Report, _ int) (int, error) {
			require.Len(t, reports, 2)
			assert.Equal(t, "a1", reports[0].AgentID)
			assert.Equal(t, "Mayıs", reports[0].Month)
			assert.Equal(t, 1, reports[0].Week)
			assert.Equal(t, "a2", reports[1].AgentID)
			assert.Equal(t, "Haziran", reports[1].Month)
			assert.NotEqual(t, reports[0].ID, reports[1].ID)
			require.NotNil(t, reports[0].ImportBatchID)
			assert.Equal(t, *reports[0].ImportBatchID, *reports[1].ImportBatchID)
			return len(reports), nil
		})
	m.publisher.EXPECT().PublishReportsImported(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event domain.ReportsImportedEvent) error {
			assert.Equal(t, domain.ImportSourceUpload, event.Source)
			assert.Equal(t, 2, event.Inserted)
			assert.Equal(t, 1, event.Rejected)
			assert.Equal(t, []string{"Mayıs", "Haziran"}, event.Months)
			return nil
		})

	result, err := service.Import(context.Background(), domain.ImportSourceUpload, "mayis.csv", strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, []domain.RejectedRow{{Row: 3, Agent: "Ghost", Reasons: []string{"agente desconhecido: Ghost"}}}, result.Rejected)
	assert.Empty(t, result.MonthMismatches)
	assert.Equal(t, []string{"Mayıs", "Haziran"}, result.Months)
}

func TestService_Import_AllRowsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestImporter(t, ctrl)
	m.agentRepo.EXPECT().ListAgents(gomock.Any(), gomock.Any()).Return(nil, nil)

	result, err := service.Import(context.Background(), domain.ImportSourceUpload, "x.csv", strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Len(t, result.Rejected, 3)
	assert.Empty(t, result.Months)
}

func TestService_Import_Errors(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		setup       func(m importMocks)
		expectedErr error
	}{
		{
			name:        "Formato não suportado",
			filename:    "relatorio.txt",
			content:     sampleCSV,
			setup:       func(m importMocks) {},
			expectedErr: ErrUnsupportedFormat,
		},
		{
			name:     "Falha ao carregar agentes",
			filename: "relatorio.csv",
			content:  sampleCSV,
			setup: func(m importMocks) {
				m.agentRepo.EXPECT().ListAgents(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			expectedErr: ErrFetchAgents,
		},
		{
			name:     "Cabeçalho sem colunas obrigatórias",
			filename: "relatorio.csv",
			content:  "Gelen Data,Randevu\n10,1\n",
			setup: func(m importMocks) {
				m.agentRepo.EXPECT().ListAgents(gomock.Any(), gomock.Any()).Return(testAgents, nil)
			},
			expectedErr: ErrMissingColumns,
		},
		{
			name:     "Falha na transação não publica evento",
			filename: "relatorio.csv",
			content:  sampleCSV,
			setup: func(m importMocks) {
				m.agentRepo.EXPECT().ListAgents(gomock.Any(), gomock.Any()).Return(testAgents, nil)
				m.reportRepo.EXPECT().InsertReports(gomock.Any(), gomock.Any(), 50).Return(0, errors.New("deadlock"))
			},
			expectedErr: ErrInsertReports,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestImporter(t, ctrl)
			tt.setup(m)

			result, err := service.Import(context.Background(), domain.ImportSourceUpload, tt.filename, strings.NewReader(tt.content))

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)
		})
	}
}

func TestService_Import_PublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestImporter(t, ctrl)
	m.agentRepo.EXPECT().ListAgents(gomock.Any(), gomock.Any()).Return(testAgents, nil)
	m.reportRepo.EXPECT().InsertReports(gomock.Any(), gomock.Any(), gomock.Any()).Return(2, nil)
	m.publisher.EXPECT().PublishReportsImported(gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))

	result, err := service.Import(context.Background(), domain.ImportSourceInbox, "inbox.csv", strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, domain.ImportSourceInbox, result.Source)
	assert.Equal(t, 2, result.Inserted)
}

func TestService_ImportSheet(t *testing.T) {
	t.Run("Usa o intervalo padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestImporter(t, ctrl)
		m.reader.EXPECT().ReadRows(gomock.Any(), "sheet-1", "Raporlar!A1:L").Return([][]string{
			{"Agent", "Tarih", "Gelen Data", "Randevu"},
			{"Adviye", "2024-08-12", "30", "3"},
			{},
		}, nil)
		m.agentRepo.EXPECT().ListAgents(gomock.Any(), gomock.Any()).Return(testAgents, nil)
		m.reportRepo.EXPECT().InsertReports(gomock.Any(), gomock.Any(), 50).Return(1, nil)
		m.publisher.EXPECT().PublishReportsImported(gomock.Any(), gomock.Any()).Return(nil)

		result, err := service.ImportSheet(context.Background(), domain.SheetImportRequest{SpreadsheetID: "sheet-1"})

		require.NoError(t, err)
		assert.Equal(t, domain.ImportSourceSheets, result.Source)
		assert.Equal(t, []string{"Ağustos"}, result.Months)
	})

	t.Run("ID da planilha obrigatório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestImporter(t, ctrl)
		_, err := service.ImportSheet(context.Background(), domain.SheetImportRequest{})

		assert.ErrorIs(t, err, ErrSpreadsheetRequired)
	})

	t.Run("Falha na API do Google", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestImporter(t, ctrl)
		m.reader.EXPECT().ReadRows(gomock.Any(), "sheet-1", "A1:Z").Return(nil, errors.New("403"))

		_, err := service.ImportSheet(context.Background(), domain.SheetImportRequest{SpreadsheetID: "sheet-1", Range: "A1:Z"})

		assert.ErrorIs(t, err, ErrSheetsFetch)
	})

	t.Run("Integração não configurada", func(t *testing.T) {
		service := NewService(nil, nil, nil, nil, testSchema(t), testImportConfig())

		_, err := service.ImportSheet(context.Background(), domain.SheetImportRequest{SpreadsheetID: "sheet-1"})

		assert.ErrorIs(t, err, ErrSheetsUnavailable)
	})
}
