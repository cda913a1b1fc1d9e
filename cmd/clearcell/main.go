package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx as database/sql driver
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clearcell/clearcell/internal/engine"
	"github.com/clearcell/clearcell/internal/engine/recognizers"
	"github.com/clearcell/clearcell/internal/pipeline"
	"github.com/clearcell/clearcell/internal/sanitize"
	"github.com/clearcell/clearcell/internal/storage"
	"github.com/clearcell/clearcell/internal/store"
)

func main() {
	var (
		inPath     = flag.String("in", "", "input CSV file")
		outPath    = flag.String("out", "", "output CSV file for the sanitized dataset")
		reportPath = flag.String("report", "-", "report JSON destination (- for stdout)")
		actionTok  = flag.String("action", "", "sanitization action: redact, anonymize, remove, mask (empty = analyze only)")
		columnsArg = flag.String("columns", "", "comma-separated target columns for -action")
		history    = flag.Int("history", 0, "print the N most recent runs from the audit table and exit")
	)
	flag.Parse()

	// Logger
	logger := mustBuildLogger(envOrDefault("CLEARCELL_LOG_LEVEL", "info"))
	defer logger.Sync() //nolint:errcheck // best-effort flush

	// Config from env
	workers := envOrDefaultInt("CLEARCELL_WORKERS", 0)
	clickhouseDSN := os.Getenv("CLICKHOUSE_DSN")
	postgresDSN := os.Getenv("POSTGRES_DSN")
	policyName := os.Getenv("CLEARCELL_POLICY")
	pseudonymKey := envOrDefault("CLEARCELL_PSEUDONYM_KEY", "clearcell-dev-key")

	if *history > 0 {
		if clickhouseDSN == "" {
			logger.Fatal("CLICKHOUSE_DSN is required for -history")
		}
		printHistory(clickhouseDSN, *history, logger)
		return
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: clearcell -in data.csv [-action redact -columns email,ssn -out clean.csv] [-report report.json]")
		os.Exit(2)
	}

	// Audit — ClickHouse or LogWriter fallback
	var audit storage.AuditWriter
	if clickhouseDSN != "" {
		chWriter, err := storage.NewClickHouseWriter(clickhouseDSN, logger)
		if err != nil {
			logger.Warn("clickhouse connection failed, falling back to log writer",
				zap.Error(err),
			)
			audit = storage.NewLogWriter(logger)
		} else {
			audit = chWriter
			logger.Info("clickhouse audit writer connected")
		}
	} else {
		audit = storage.NewLogWriter(logger)
	}
	defer audit.Close()

	// Detection policy — optional, loaded from Postgres by name
	var policy *engine.DetectionPolicy
	if policyName != "" {
		if postgresDSN == "" {
			logger.Fatal("CLEARCELL_POLICY set but POSTGRES_DSN is not")
		}
		policy = mustLoadPolicy(postgresDSN, policyName, logger)
	}

	p, err := pipeline.New(pipeline.Config{
		Recognizers:  recognizers.All(),
		Entities:     recognizers.NewProse(logger),
		Policy:       policy,
		Workers:      workers,
		PseudonymKey: []byte(pseudonymKey),
		Audit:        audit,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("pipeline construction failed", zap.Error(err))
	}

	ds, err := readCSV(*inPath)
	if err != nil {
		logger.Fatal("failed to read input", zap.String("path", *inPath), zap.Error(err))
	}

	ctx := context.Background()

	if *actionTok == "" {
		report, err := p.Analyze(ctx, ds)
		if err != nil {
			fatal(logger, err)
		}
		if err := writeReport(*reportPath, report); err != nil {
			logger.Fatal("failed to write report", zap.Error(err))
		}
		return
	}

	action, err := sanitize.ParseAction(*actionTok)
	if err != nil {
		fatal(logger, err)
	}
	columns := splitColumns(*columnsArg)
	if len(columns) == 0 {
		logger.Fatal("-action requires -columns")
	}

	result, report, err := p.Sanitize(ctx, ds, action, columns)
	if err != nil {
		fatal(logger, err)
	}

	if err := writeReport(*reportPath, report); err != nil {
		logger.Fatal("failed to write report", zap.Error(err))
	}
	if *outPath != "" {
		if err := writeCSV(*outPath, result.Dataset); err != nil {
			logger.Fatal("failed to write output", zap.String("path", *outPath), zap.Error(err))
		}
	}

	logger.Info("sanitization complete",
		zap.String("action", action.String()),
		zap.Strings("columns", columns),
		zap.Int("mutated_cells", result.MutatedCells),
	)
}

// fatal logs the error with its taxonomy kind and exits non-zero.
// Caller errors exit 2, everything else 1, mirroring the status split
// an API layer would apply.
func fatal(logger *zap.Logger, err error) {
	kind := pipeline.Classify(err)
	logger.Error("run failed",
		zap.String("kind", kind.String()),
		zap.Error(err),
	)
	_ = logger.Sync()
	if kind == pipeline.KindCaller {
		os.Exit(2)
	}
	os.Exit(1)
}

func mustLoadPolicy(dsn, name string, logger *zap.Logger) *engine.DetectionPolicy {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal("failed to open postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping postgres", zap.Error(err))
	}

	policy, err := store.NewStore(db).LoadDetectionPolicy(ctx, name)
	if err != nil {
		logger.Fatal("failed to load detection policy",
			zap.String("policy", name),
			zap.Error(err),
		)
	}
	if policy == nil {
		logger.Fatal("detection policy not found", zap.String("policy", name))
	}
	logger.Info("detection policy loaded", zap.String("policy", name))
	return policy
}

func printHistory(dsn string, limit int, logger *zap.Logger) {
	reader, err := storage.NewReader(dsn, logger)
	if err != nil {
		logger.Fatal("clickhouse reader connection failed", zap.Error(err))
	}
	defer func() { _ = reader.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	runs, err := reader.RecentRuns(ctx, limit)
	if err != nil {
		logger.Fatal("failed to read run history", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, run := range runs {
		if err := enc.Encode(run); err != nil {
			logger.Fatal("failed to encode run", zap.Error(err))
		}
	}
}

func writeReport(path string, report *engine.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func splitColumns(arg string) []string {
	if arg == "" {
		return nil
	}
	parts := strings.Split(arg, ",")
	columns := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			columns = append(columns, trimmed)
		}
	}
	return columns
}

func mustBuildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
