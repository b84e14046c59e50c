package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/agent-performance-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/agent-performance-api/infrastructure/messaging/amqp"
	"github.com/vfg2006/agent-performance-api/infrastructure/migration"
	"github.com/vfg2006/agent-performance-api/infrastructure/repository"
	"github.com/vfg2006/agent-performance-api/internal/api"
	"github.com/vfg2006/agent-performance-api/internal/api/handler"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/scheduler"
	"github.com/vfg2006/agent-performance-api/internal/usecases/agent"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/internal/usecases/diagnosing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/importing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	"github.com/vfg2006/agent-performance-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	configureLogger(cfg.App)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg)

	if cfg.Database.AutoMigrate {
		if err := migration.Up(pgConn.DB); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	agentRepo := repository.NewAgentRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	schema, err := importing.LoadSchema(cfg.Import.SchemaFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o mapa de colunas da importação")
	}

	publisher := eventPublisher(cfg)
	sheetsReader := googleSheetsReader(ctx, cfg)

	authenticator := authenticating.NewService(userRepo, cfg)
	agentService := agent.NewService(agentRepo)
	performanceService := performance.NewService(agentRepo, reportRepo)
	importer := importing.NewService(agentRepo, reportRepo, sheetsReader, publisher, schema, cfg)
	diagnoser := diagnosing.NewService(pgConn, agentRepo, reportRepo, userRepo, cfg.Import.BatchSize)

	// Inicia as rotinas de importação em background
	sheetsImportSync := scheduler.NewSheetsImportSyncService(importer, cfg)
	if err := sheetsImportSync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importação do Google Sheets")
	}

	inboxWatcher := scheduler.NewInboxWatcher(importer, cfg)
	if err := inboxWatcher.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o observador do diretório de importação")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Agents:        agentService,
		Performance:   performanceService,
		Importer:      importer,
		Diagnoser:     diagnoser,
		Pinger:        pgConn,
		CronJobs: handler.CronJobServices{
			SheetsImportSync: sheetsImportSync,
			InboxWatcher:     inboxWatcher,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	server.OnShutdown(pgConn.Close)
	server.OnShutdown(publisher.Close)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger define nível e formato dos logs conforme o ambiente
func configureLogger(app config.App) {
	log.SetEnvironment(app.Env)

	if log.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	logLevel, err := logrus.ParseLevel(app.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", app.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s (ambiente %s)", logLevel, app.Env)
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, cfg *config.Config) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, cfg.Database, cfg.Retry.Policy())
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// eventPublisher cai para o publicador nulo quando o broker não responde
func eventPublisher(cfg *config.Config) amqp.Publisher {
	publisher, err := amqp.NewPublisher(cfg.Events)
	if err != nil {
		logrus.WithError(err).Warn("Broker AMQP indisponível, eventos de importação desativados")
		return amqp.NoopPublisher{}
	}
	return publisher
}

// googleSheetsReader retorna nil quando não há credenciais configuradas
func googleSheetsReader(ctx context.Context, cfg *config.Config) sheets.Reader {
	reader, err := sheets.NewGoogleReader(ctx, cfg.Sheets, cfg.Retry.Policy())
	if errors.Is(err, sheets.ErrMissingCredentials) {
		logrus.Info("Credenciais do Google Sheets ausentes, importação por planilha remota desativada")
		return nil
	}
	if err != nil {
		logrus.WithError(err).Warn("Erro ao configurar o cliente do Google Sheets")
		return nil
	}
	return reader
}
