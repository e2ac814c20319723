package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameClaimsGranted   = "claims_granted_total"
	MetricNameClaimsRejected  = "claims_rejected_total"
	MetricNameCardsDropped    = "cards_dropped_total"
	MetricNameCoinsCredited   = "coins_credited_total"
	MetricNameCoinsDebited    = "coins_debited_total"
	MetricNameListingsCreated = "listings_created_total"
	MetricNameListingsSold    = "listings_sold_total"
	MetricNameHouseSales      = "house_sales_total"
	MetricNamePacksSold       = "packs_sold_total"
	MetricNameTradesProposed  = "trades_proposed_total"
	MetricNameTradesSettled   = "trades_settled_total"
	MetricNameTradesDeclined  = "trades_declined_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextClaimsGranted   = "Total number of reward claims granted"
	HelpTextClaimsRejected  = "Total number of reward claims rejected by cooldown"
	HelpTextCardsDropped    = "Total number of cards awarded by drops and boosters"
	HelpTextCoinsCredited   = "Total coins credited to accounts"
	HelpTextCoinsDebited    = "Total coins debited from accounts"
	HelpTextListingsCreated = "Total number of marketplace listings created"
	HelpTextListingsSold    = "Total number of marketplace listings sold"
	HelpTextHouseSales      = "Total number of sales to the house"
	HelpTextPacksSold       = "Total number of shop packs sold"
	HelpTextTradesProposed  = "Total number of trade offers proposed"
	HelpTextTradesSettled   = "Total number of trade offers settled"
	HelpTextTradesDeclined  = "Total number of trade offers declined"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelAction = "action"
	LabelRarity = "rarity"
	LabelPack   = "pack"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
