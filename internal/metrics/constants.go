package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameActivitiesLogged  = "activities_logged_total"
	MetricNameXPGranted         = "xp_granted_total"
	MetricNameCharacterLevelUps = "character_level_ups_total"
	MetricNameStatLevelUps      = "stat_level_ups_total"
	MetricNameNodesAllocated    = "tree_nodes_allocated_total"
	MetricNameRespecsTotal      = "tree_respecs_total"
	MetricNameEventsPublished   = "events_published_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextActivitiesLogged  = "Total number of activities logged"
	HelpTextXPGranted         = "Total XP granted per attribute"
	HelpTextCharacterLevelUps = "Total number of character level-ups"
	HelpTextStatLevelUps      = "Total number of attribute level-ups"
	HelpTextNodesAllocated    = "Total number of skill-tree nodes allocated"
	HelpTextRespecsTotal      = "Total number of completed respecs"
	HelpTextEventsPublished   = "Total number of events published per type"
)

// Metric labels
const (
	LabelMethod       = "method"
	LabelPath         = "path"
	LabelStatus       = "status"
	LabelActivityType = "activity_type"
	LabelStat         = "stat"
	LabelEventType    = "event_type"
)

// Log messages
const (
	LogMsgEventPayloadDecode = "Failed to decode event payload for metrics"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request latency
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
