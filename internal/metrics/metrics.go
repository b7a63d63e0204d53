// Package metrics описывает Prometheus метрики портала.
// Метрики регистрируются в default registry при импорте пакета.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skill_connector_portal"

// BackendRequestsTotal считает запросы к бэкенду.
// Labels: method, endpoint (шаблон пути, без идентификаторов), status ("2xx", "4xx", "error").
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the marketplace backend.",
	},
	[]string{"method", "endpoint", "status"},
)

// BackendRequestDuration — длительность запроса к бэкенду.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the marketplace backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "endpoint"},
)

// FanoutFailuresTotal считает пользователей, чьи навыки не удалось загрузить при агрегации.
var FanoutFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fanout_failures_total",
		Help:      "Per-user skill fetches that failed during directory aggregation.",
	},
)

// CategoryCacheTotal — результат чтения кэша категорий ("hit", "miss", "error").
var CategoryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_cache_total",
		Help:      "Category cache lookups by result.",
	},
	[]string{"result"},
)

// HTTPRequestsTotal считает запросы браузера к порталу.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Requests served by the portal.",
	},
	[]string{"method", "route", "code"},
)

// ActiveSessions — сессии в хранилище, включая истёкшие до прохода очистки.
var ActiveSessions = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Sessions held in the session store, including expired ones awaiting the sweeper.",
	},
	[]string{"kind"},
)
