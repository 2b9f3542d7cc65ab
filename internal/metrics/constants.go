package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "essence_http_requests_total"
	MetricNameHTTPRequestDuration  = "essence_http_request_duration_seconds"
	MetricNameLevelsSearched       = "essence_sim_levels_searched_total"
	MetricNameLevelSearchDuration  = "essence_sim_level_search_duration_seconds"
	MetricNameBestDPS              = "essence_sim_best_dps"
	MetricNameCacheLookups         = "essence_sim_cache_lookups_total"
	MetricNameConfigsFinished      = "essence_sim_configs_finished_total"
	MetricNameConfigSearchDuration = "essence_sim_config_duration_seconds"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextLevelsSearched       = "Levels searched by the simulator"
	HelpTextLevelSearchDuration  = "Time spent searching one level"
	HelpTextBestDPS              = "Best sustainable DPS of the most recently searched level"
	HelpTextCacheLookups         = "Simulation cache lookups by outcome"
	HelpTextConfigsFinished      = "Search configs finished by status"
	HelpTextConfigSearchDuration = "Time spent on one search config"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelConfig  = "config"
	LabelOutcome = "outcome"
	LabelReused  = "reused"
	LabelFound   = "found"
)

// Config statuses
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Buckets
var (
	HTTPLatencyBuckets   = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
	SearchLatencyBuckets = []float64{.001, .01, .05, .1, .5, 1, 5, 15, 60}
)
