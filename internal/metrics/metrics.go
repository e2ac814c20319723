package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	ClaimsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsGranted,
			Help: HelpTextClaimsGranted,
		},
		[]string{LabelAction},
	)

	ClaimsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsRejected,
			Help: HelpTextClaimsRejected,
		},
		[]string{LabelAction},
	)

	CardsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsDropped,
			Help: HelpTextCardsDropped,
		},
		[]string{LabelRarity},
	)

	CoinsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsCredited,
			Help: HelpTextCoinsCredited,
		},
	)

	CoinsDebited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsDebited,
			Help: HelpTextCoinsDebited,
		},
	)

	ListingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
	)

	ListingsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsSold,
			Help: HelpTextListingsSold,
		},
	)

	HouseSales = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHouseSales,
			Help: HelpTextHouseSales,
		},
	)

	PacksSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePacksSold,
			Help: HelpTextPacksSold,
		},
		[]string{LabelPack},
	)

	TradesProposed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTradesProposed,
			Help: HelpTextTradesProposed,
		},
	)

	TradesSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTradesSettled,
			Help: HelpTextTradesSettled,
		},
	)

	TradesDeclined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTradesDeclined,
			Help: HelpTextTradesDeclined,
		},
	)
)
