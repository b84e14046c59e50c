package diagnosing

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

const (
	seedYear         = 2024
	seedWeeksByMonth = 4
	// Acima desse volume o banco já tem dados reais e os relatórios de exemplo não são gerados
	seedReportsThreshold = 50
)

var seedMonths = []time.Month{time.May, time.June, time.July, time.August}

func sampleAgents() []domain.Agent {
	email := func(s string) *string { return &s }

	return []domain.Agent{
		{Name: "Adviye", Category: domain.AgentCategoryInternational, Email: email("adviye@test.com"), Notes: "Deneyimli yurtdışı agent - Almanya uzmanı", Active: true},
		{Name: "Jennifer", Category: domain.AgentCategoryInternational, Email: email("jennifer@test.com"), Notes: "İngilizce konuşan agent - ABD uzmanı", Active: true},
		{Name: "Çiğdem", Category: domain.AgentCategoryDomestic, Email: email("cigdem@test.com"), Notes: "Yurtiçi operasyon uzmanı - İstanbul", Active: true},
		{Name: "Hande", Category: domain.AgentCategoryDomestic, Email: email("hande@test.com"), Notes: "Müşteri ilişkileri uzmanı - Ankara", Active: true},
	}
}

type seeder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSeeder(seed uint64) *seeder {
	return &seeder{rng: rand.New(rand.NewPCG(seed, seed>>1))}
}

// reportsFor gera quatro semanas de relatórios por mês para o agente
func (sd *seeder) reportsFor(agent domain.Agent) []domain.Report {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	reports := make([]domain.Report, 0, len(seedMonths)*seedWeeksByMonth)
	for _, month := range seedMonths {
		for week := 1; week <= seedWeeksByMonth; week++ {
			date := time.Date(seedYear, month, week*7, 0, 0, 0, 0, time.UTC)
			reports = append(reports, domain.Report{
				ID:       utils.NewUUID(),
				AgentID:  agent.ID,
				Date:     date,
				Month:    domain.MonthLabel(date),
				Week:     week,
				Counters: sd.counters(agent.Category),
			})
		}
	}

	return reports
}

func (sd *seeder) counters(category domain.AgentCategory) domain.Counters {
	incoming := 50 + sd.rng.IntN(80)
	if category == domain.AgentCategoryInternational {
		incoming = 80 + sd.rng.IntN(120)
	}

	contacted := int(float64(incoming) * (0.5 + sd.rng.Float64()*0.3))
	appointments := int(float64(contacted) * (0.1 + sd.rng.Float64()*0.15))

	return domain.Counters{
		IncomingData: incoming,
		Contacted:    contacted,
		Unreachable:  sd.rng.IntN(20),
		NoAnswer:     sd.rng.IntN(25),
		Rejected:     sd.rng.IntN(15),
		Negative:     sd.rng.IntN(8),
		Appointments: appointments,
	}
}

// Seed cria os agentes de exemplo ausentes e relatórios de exemplo quando o banco está quase vazio.
// Relatórios existentes nunca são apagados.
func (s *Service) Seed(ctx context.Context) (*domain.SeedResult, error) {
	agents, err := s.agentRepo.ListAgents(ctx, domain.AgentFilter{})
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar agentes para popular o banco")
		return nil, NewDiagnosticsError(ErrSeedAgents, apiErrors.ErrDatabaseOperation, "Falha ao carregar agentes")
	}

	existing := make(map[string]struct{}, len(agents))
	for _, agent := range agents {
		existing[agent.Name] = struct{}{}
	}

	result := &domain.SeedResult{}
	for _, sample := range sampleAgents() {
		if _, ok := existing[sample.Name]; ok {
			continue
		}

		sample.ID = utils.NewUUID()
		if err := s.agentRepo.CreateAgent(ctx, &sample); err != nil {
			logrus.WithError(err).WithField("agent", sample.Name).Error("Erro ao criar agente de exemplo")
			return nil, NewDiagnosticsError(ErrSeedAgents, apiErrors.ErrDatabaseOperation, sample.Name)
		}

		agents = append(agents, sample)
		result.AgentsCreated++
	}

	reports, err := s.reportRepo.ListReports(ctx, domain.ReportFilter{})
	if err != nil {
		logrus.WithError(err).Error("Erro ao contar relatórios para popular o banco")
		return nil, NewDiagnosticsError(ErrSeedReports, apiErrors.ErrDatabaseOperation, "Falha ao carregar relatórios")
	}

	if len(reports) >= seedReportsThreshold {
		logrus.WithField("reports", len(reports)).Info("Banco já possui relatórios, exemplos não gerados")
		return result, nil
	}

	samples := make([]domain.Report, 0, len(agents)*len(seedMonths)*seedWeeksByMonth)
	for _, agent := range agents {
		samples = append(samples, s.seeder.reportsFor(agent)...)
	}

	inserted, err := s.reportRepo.InsertReports(ctx, samples, s.batchSize)
	if err != nil {
		logrus.WithError(err).Error("Erro ao inserir relatórios de exemplo")
		return nil, NewDiagnosticsError(ErrSeedReports, apiErrors.ErrDatabaseOperation, "Falha ao gravar relatórios de exemplo")
	}
	result.ReportsInserted = inserted

	logrus.WithFields(logrus.Fields{
		"agents_created":   result.AgentsCreated,
		"reports_inserted": result.ReportsInserted,
	}).Info("Banco populado com dados de exemplo")

	return result, nil
}
