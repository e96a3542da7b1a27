package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/club-manager/internal/config"
	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const maxTracedQueryLength = 512

func newArchive(cfg config.Config, logger *logging.Logger) (matchlog.Repository, *sqlx.DB, error) {
	if cfg.ArchiveDriver != config.ArchiveDriverPostgres {
		logger.Info("match archive in memory")
		return memory.NewMatchLogRepository(), nil, nil
	}

	dsn := archiveDSN(cfg.DBURL, cfg.ServiceName)
	dbName := dbNameFromURL(dsn)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		closeDB(db, logger)
		return nil, nil, fmt.Errorf("ping archive database: %w", err)
	}

	logger.Info("match archive in postgres", "db_name", dbName)
	return postgres.NewMatchLogRepository(db), db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close archive database failed", "error", err)
	}
}

// archiveDSN tags URL style DSNs with application_name so sessions are
// identifiable in pg_stat_activity. An explicit application_name is kept.
func archiveDSN(raw, serviceName string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || strings.TrimSpace(serviceName) == "" {
		return trimmed
	}

	query := parsed.Query()
	if query.Get("application_name") != "" {
		return trimmed
	}
	query.Set("application_name", strings.TrimSpace(serviceName))
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL accepts both URL and key=value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(name, `"'`); name != "" {
			return name
		}
	}
	return ""
}

// formatDBQueryForTrace collapses whitespace and caps the statement length
// recorded on spans.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
