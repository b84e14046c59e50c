package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/importing"
)

const (
	processedDir       = "processed"
	failedDir          = "failed"
	defaultSettleDelay = time.Second
)

// InboxWatcher importa planilhas copiadas para o diretório de entrada.
// Cada arquivo é movido para processed/ ou failed/ depois da importação.
type InboxWatcher struct {
	dir         string
	enabled     bool
	importer    importing.Importer
	settleDelay time.Duration

	mu            sync.Mutex
	pending       map[string]*time.Timer
	lastFile      string
	lastResult    *domain.ImportResult
	lastError     string
	lastProcessed time.Time
	processed     int
	failed        int
}

func NewInboxWatcher(importer importing.Importer, appConfig *config.Config) *InboxWatcher {
	return &InboxWatcher{
		dir:         appConfig.InboxWatch.Dir,
		enabled:     appConfig.InboxWatch.Enabled,
		importer:    importer,
		settleDelay: defaultSettleDelay,
		pending:     make(map[string]*time.Timer),
	}
}

// Start cria os diretórios, importa os arquivos já existentes e passa a observar o diretório
func (w *InboxWatcher) Start(ctx context.Context) error {
	if !w.enabled {
		logrus.Info("Observador do diretório de importação desabilitado por configuração")
		return nil
	}

	for _, dir := range []string{w.dir, filepath.Join(w.dir, processedDir), filepath.Join(w.dir, failedDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("erro ao criar diretório %s: %w", dir, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("erro ao criar observador de arquivos: %w", err)
	}

	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("erro ao observar %s: %w", w.dir, err)
	}

	logrus.WithField("dir", w.dir).Info("Observando diretório de importação")

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				logrus.Info("Parando observador do diretório de importação")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					w.schedule(ctx, event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Error("Erro no observador do diretório de importação")
			}
		}
	}()

	return w.Backfill(ctx)
}

// Backfill importa os arquivos que já estavam no diretório
func (w *InboxWatcher) Backfill(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.schedule(ctx, filepath.Join(w.dir, entry.Name()))
	}

	return nil
}

// TriggerManualSync reprocessa em segundo plano os arquivos parados no diretório
func (w *InboxWatcher) TriggerManualSync() {
	if !w.enabled {
		logrus.Info("Observador do diretório de importação desabilitado, ignorando solicitação manual")
		return
	}

	logrus.WithField("dir", w.dir).Info("Reprocessando manualmente o diretório de importação")
	go func() {
		if err := w.Backfill(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro ao reprocessar diretório de importação")
		}
	}()
}

// schedule aguarda o arquivo parar de receber escritas antes de importar
func (w *InboxWatcher) schedule(ctx context.Context, path string) {
	if !w.accepts(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settleDelay)
		return
	}

	w.pending[path] = time.AfterFunc(w.settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.processFile(ctx, path)
	})
}

func (w *InboxWatcher) accepts(path string) bool {
	if filepath.Dir(path) != filepath.Clean(w.dir) {
		return false
	}

	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}

	return importing.IsSupported(name)
}

func (w *InboxWatcher) processFile(ctx context.Context, path string) {
	name := filepath.Base(path)
	logger := logrus.WithField("file", name)

	file, err := os.Open(path)
	if err != nil {
		// O arquivo pode ter sido movido ou removido antes da importação
		if !os.IsNotExist(err) {
			logger.WithError(err).Error("Erro ao abrir arquivo do diretório de importação")
		}
		return
	}

	result, importErr := w.importer.Import(ctx, domain.ImportSourceInbox, name, file)
	_ = file.Close()

	target := processedDir
	if importErr != nil {
		target = failedDir
	}

	destination := filepath.Join(w.dir, target, fmt.Sprintf("%s_%s", time.Now().Format("20060102T150405"), name))
	if err := os.Rename(path, destination); err != nil {
		logger.WithError(err).Error("Erro ao mover arquivo importado")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastFile = name
	w.lastProcessed = time.Now()

	if importErr != nil {
		logger.WithError(importErr).Warn("Arquivo do diretório de importação rejeitado")
		w.failed++
		w.lastError = importErr.Error()
		w.lastResult = nil
		return
	}

	logger.WithFields(logrus.Fields{
		"batch_id": result.BatchID,
		"inserted": result.Inserted,
		"rejected": len(result.Rejected),
	}).Info("Arquivo do diretório de importação processado")
	w.processed++
	w.lastError = ""
	w.lastResult = result
}

// GetStatus retorna o status atual do observador
func (w *InboxWatcher) GetStatus() map[string]any {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := map[string]any{
		"watch_enabled":     w.enabled,
		"dir":               w.dir,
		"pending":           len(w.pending),
		"processed_files":   w.processed,
		"failed_files":      w.failed,
		"last_file":         w.lastFile,
		"last_processed_at": w.lastProcessed,
		"last_error":        w.lastError,
	}

	if w.lastResult != nil {
		status["last_batch_id"] = w.lastResult.BatchID
		status["last_inserted"] = w.lastResult.Inserted
	}

	return status
}
