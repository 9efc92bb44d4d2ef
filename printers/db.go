package printers

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/probekit/tcpping/statistics"
)

const (
	eventTypeProbe      = "probe"
	eventTypeStatistics = "statistics"
)

const tableTimeLayout = "2006-01-02 15:04:05"

const dataTableSchema = `CREATE TABLE %s (
    id INTEGER PRIMARY KEY,
    event_type TEXT NOT NULL, -- probe or statistics
    timestamp DATETIME,
    ip_address TEXT,
    port INTEGER,
    round INTEGER,

    success INTEGER, -- 1 for a connected probe, 0 for a failed one
    latency_ms REAL,
    failure_reason TEXT,

    sent INTEGER,
    successful INTEGER,
    failed INTEGER,
    loss_percent REAL,
    latency_min REAL,
    latency_avg REAL,
    latency_max REAL,
    latency_mdev REAL,
    latency_p50 REAL,
    latency_p90 REAL,
    latency_p99 REAL
	);`

const probeSaveSchema = `INSERT INTO %s (
	event_type,
	timestamp,
	ip_address,
	port,
	round,
	success,
	latency_ms,
	failure_reason) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

const statSaveSchema = `INSERT INTO %s (
	event_type,
	timestamp,
	ip_address,
	port,
	sent,
	successful,
	failed,
	loss_percent,
	latency_min,
	latency_avg,
	latency_max,
	latency_mdev,
	latency_p50,
	latency_p90,
	latency_p99) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

// DatabasePrinter writes probe rows and summary rows to a sqlite3 file.
type DatabasePrinter struct {
	Conn      *sqlite.Conn
	DbPath    string
	TableName string
}

// NewDatabasePrinter opens (or creates) the sqlite3 database and creates
// this run's data table.
func NewDatabasePrinter(dbPath, target string, port uint16) (*DatabasePrinter, error) {
	filename := addDbExtension(dbPath)

	conn, err := sqlite.OpenConn(filename, sqlite.OpenCreate, sqlite.OpenReadWrite)
	if err != nil {
		return nil, fmt.Errorf("create database %q: %w", filename, err)
	}

	tableName := sanitizeTableName(target, port)

	err = sqlitex.Execute(conn, fmt.Sprintf(dataTableSchema, tableName), &sqlitex.ExecOptions{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create data table: %w", err)
	}

	return &DatabasePrinter{conn, filename, tableName}, nil
}

func addDbExtension(filename string) string {
	if strings.HasSuffix(filename, ".db") {
		return filename
	}

	return filename + ".db"
}

// sanitizeTableName will return the sanitized and correctly formatted table name
// formatting the table name as "example_com_port__year_month_day_hour_minute_sec"
// table name can't have '.','-' and can't start with numbers
func sanitizeTableName(target string, port uint16) string {
	sanitizedHost := strings.ReplaceAll(target, ".", "_")
	sanitizedHost = strings.ReplaceAll(sanitizedHost, "-", "_")
	sanitizedHost = strings.ReplaceAll(sanitizedHost, ":", "_")

	sanitizedTime := strings.ReplaceAll(time.Now().Format(tableTimeLayout), "-", "_")
	sanitizedTime = strings.ReplaceAll(sanitizedTime, ":", "_")
	sanitizedTime = strings.ReplaceAll(sanitizedTime, " ", "_")

	tableName := fmt.Sprintf("%s_%d__%s", sanitizedHost, port, sanitizedTime)

	if unicode.IsNumber(rune(tableName[0])) {
		tableName = "_" + tableName
	}

	return tableName
}

func (db *DatabasePrinter) saveProbe(ev *statistics.ProbeEvent, success int, latency float64, reason string) {
	err := sqlitex.Execute(
		db.Conn,
		fmt.Sprintf(probeSaveSchema, db.TableName),
		&sqlitex.ExecOptions{Args: []any{
			eventTypeProbe,
			ev.Time.Format(tableTimeLayout),
			ev.IP.String(),
			int(ev.Port),
			ev.Round,
			success,
			latency,
			reason,
		}},
	)
	if err != nil {
		db.PrintError("Error writing probe to the database: %s", err)
	}
}

// PrintStart is a no-op; the table schema already names the target.
func (db *DatabasePrinter) PrintStart(_ *statistics.RunInfo) {}

// PrintProbeSuccess stores one successful probe row.
func (db *DatabasePrinter) PrintProbeSuccess(ev *statistics.ProbeEvent) {
	db.saveProbe(ev, 1, ev.RTT, "")
}

// PrintProbeFailure stores one failed probe row with its reason.
func (db *DatabasePrinter) PrintProbeFailure(ev *statistics.ProbeEvent) {
	db.saveProbe(ev, 0, 0, ev.Reason)
}

// PrintStatistics stores one summary row per address.
func (db *DatabasePrinter) PrintStatistics(r *statistics.Report) {
	now := time.Now().Format(tableTimeLayout)

	for _, s := range r.Summaries {
		err := sqlitex.Execute(
			db.Conn,
			fmt.Sprintf(statSaveSchema, db.TableName),
			&sqlitex.ExecOptions{Args: []any{
				eventTypeStatistics,
				now,
				s.IP.String(),
				int(r.Port),
				s.Sent,
				s.Successful,
				s.Failed,
				s.LossPct,
				s.Min,
				s.Avg,
				s.Max,
				s.Mdev,
				s.P50,
				s.P90,
				s.P99,
			}},
		)
		if err != nil {
			db.PrintError("Error writing statistics to the database: %s", err)
		}
	}
}

// PrintError reports errors on stderr; the database holds data only.
func (db *DatabasePrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Done closes the database connection.
func (db *DatabasePrinter) Done() {
	if db.Conn != nil {
		db.Conn.Close()
	}
}
