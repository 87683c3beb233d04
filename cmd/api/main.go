package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/scorer"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/scorer/scorerclient"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/repository"
	"github.com/vfg2006/lead-intelligence-api/internal/api"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/scheduler"
	"github.com/vfg2006/lead-intelligence-api/internal/snapshot"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/aggregating"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/filtering"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/insighting"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/querying"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/reconciling"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/refreshing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	leadRepo := repository.NewLeadRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	scorerClient := scorerclient.NewClient(cfg)
	scorerIntegrator := scorer.New(cfg, scorerClient)

	// O cliente do Gemini só é instanciado com a chave configurada; sem ele
	// o gerador de narrativas usa apenas o template determinístico
	var narrativeClient gemini.NarrativeClient
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.New(ctx, cfg)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao inicializar o cliente do Gemini, usando template determinístico")
		} else {
			narrativeClient = client
		}
	} else {
		logrus.Info("GEMINI_API_KEY não configurada, narrativas usarão o template determinístico")
	}

	snapshotStore := snapshot.NewStore()

	filterService := filtering.NewService()
	aggregationService := aggregating.NewService(cfg.Scoring)
	narratorService := insighting.NewService(cfg, narrativeClient)
	reconcileService := reconciling.NewService(scorerIntegrator)

	queryService := querying.NewService(
		cfg,
		snapshotStore,
		filterService,
		aggregationService,
		narratorService,
	)

	refreshService := refreshing.NewService(
		cfg,
		leadRepo,
		scorerIntegrator,
		reconcileService,
		snapshotStore,
	)

	leadRefreshService := scheduler.NewLeadRefreshService(refreshService, cfg)

	// Primeira carga do snapshot na subida; o serviço continua subindo mesmo
	// em caso de falha e serve 503 até a primeira atualização concluída
	if _, err := refreshService.Refresh(ctx); err != nil {
		logrus.WithError(err).Error("Erro na carga inicial do snapshot de leads")
	}

	if err := leadRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do snapshot de leads")
	} else {
		logrus.Info("Agendador de atualização do snapshot de leads iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		queryService,
		authenticator,
		leadRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
