// Package metrics exposes Prometheus counters for domain events. HTTP-level
// metrics live in the router middleware; these cover what happens behind it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pennywise_transactions_total",
			Help: "Total transaction operations by action",
		},
		[]string{"action"},
	)

	budgetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pennywise_budgets_total",
			Help: "Total budget operations by action",
		},
		[]string{"action"},
	)

	goalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pennywise_goals_total",
			Help: "Total savings goal operations by action",
		},
		[]string{"action"},
	)

	accountsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pennywise_accounts_total",
			Help: "Total bank account operations by action",
		},
		[]string{"action"},
	)

	reportCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pennywise_report_cache_total",
			Help: "Report cache lookups by result",
		},
		[]string{"result"},
	)

	auditLogsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pennywise_audit_logs_total",
			Help: "Total audit logs recorded by action and status",
		},
		[]string{"action", "status"},
	)
)

// TransactionEvent records a transaction operation (create, update, delete).
func TransactionEvent(action string) {
	transactionsTotal.WithLabelValues(action).Inc()
}

// BudgetEvent records a budget operation.
func BudgetEvent(action string) {
	budgetsTotal.WithLabelValues(action).Inc()
}

// GoalEvent records a savings goal operation (create, update, delete, progress).
func GoalEvent(action string) {
	goalsTotal.WithLabelValues(action).Inc()
}

// AccountEvent records a bank account operation.
func AccountEvent(action string) {
	accountsTotal.WithLabelValues(action).Inc()
}

// ReportCacheHit records a served-from-cache report lookup.
func ReportCacheHit() {
	reportCacheTotal.WithLabelValues("hit").Inc()
}

// ReportCacheMiss records a report lookup that had to be computed.
func ReportCacheMiss() {
	reportCacheTotal.WithLabelValues("miss").Inc()
}

// AuditLogRecorded records a persisted audit log entry.
func AuditLogRecorded(action, status string) {
	auditLogsTotal.WithLabelValues(action, status).Inc()
}
