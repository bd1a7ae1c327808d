package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arbiterhq/arbiter/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Manager handles the creation and management of session log files.
// Each run writes into a timestamped directory under the service log dir,
// with separate files for application and database logs.
type Manager struct {
	logDir string
	cfg    *config.Debug
}

// NewManager creates a log manager rooted at the given directory.
func NewManager(logDir string, cfg *config.Debug) *Manager {
	return &Manager{
		logDir: logDir,
		cfg:    cfg,
	}
}

// GetLoggers builds the main and database loggers for this session.
func (m *Manager) GetLoggers() (*zap.Logger, *zap.Logger, error) {
	sessionDir := filepath.Join(m.logDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	m.pruneOldSessions()

	level := parseLevel(m.cfg.LogLevel)

	logger, err := newLogger(filepath.Join(sessionDir, "main.log"), level)
	if err != nil {
		return nil, nil, err
	}

	dbLogger, err := newLogger(filepath.Join(sessionDir, "database.log"), level)
	if err != nil {
		return nil, nil, err
	}

	return logger, dbLogger, nil
}

// newLogger builds a logger writing JSON to the given file and
// human-readable output to stderr.
func newLogger(path string, level zapcore.Level) (*zap.Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level),
	)

	return zap.New(core, zap.AddCaller()), nil
}

// pruneOldSessions removes the oldest session directories beyond the
// configured retention count.
func (m *Manager) pruneOldSessions() {
	if m.cfg.MaxLogsToKeep <= 0 {
		return
	}

	entries, err := os.ReadDir(m.logDir)
	if err != nil {
		return
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() {
			sessions = append(sessions, entry.Name())
		}
	}

	if len(sessions) <= m.cfg.MaxLogsToKeep {
		return
	}

	// Directory names are timestamps, so lexical order is chronological.
	sort.Strings(sessions)

	for _, name := range sessions[:len(sessions)-m.cfg.MaxLogsToKeep] {
		os.RemoveAll(filepath.Join(m.logDir, name))
	}
}

func parseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
