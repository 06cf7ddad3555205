package client

// Envelope is the response wrapper used by every dashboard endpoint.
//
// Result reports whether the server considered the call successful. The
// client does not enforce it; callers that care can check Succeeded.
type Envelope[T any] struct {
	Result bool   `json:"result"`
	Msg    string `json:"msg"`
	Data   T      `json:"data"`
}

// Succeeded returns true if the server flagged the call as successful.
func (e *Envelope[T]) Succeeded() bool {
	return e.Result
}

// Severity is the level attached to an event.
type Severity string

// Event severities, lowest to highest.
const (
	SeverityTrace   Severity = "TRACE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
)

// Severities lists every known severity, lowest to highest.
func Severities() []Severity {
	return []Severity{
		SeverityTrace,
		SeverityDebug,
		SeverityInfo,
		SeverityWarning,
		SeverityError,
		SeverityFatal,
	}
}

// Event is a single entry returned by the legacy events endpoint.
type Event struct {
	EventID      string                 `json:"eventId"`
	JobID        string                 `json:"jobId,omitempty"`
	SourceType   string                 `json:"sourceType"`
	HostName     string                 `json:"hostName"`
	PID          int64                  `json:"pid"`
	Label        string                 `json:"label"`
	Message      string                 `json:"message"`
	Timestamp    float64                `json:"timestamp"`
	Severity     Severity               `json:"severity"`
	CustomFields map[string]interface{} `json:"customFields,omitempty"`
}

// JobEventsData is the payload of a job-scoped events response.
type JobEventsData struct {
	JobID  string  `json:"jobId"`
	Events []Event `json:"events"`
}

// GlobalEventsData is the payload of the unscoped events response, keyed by job ID.
type GlobalEventsData struct {
	Events map[string][]Event `json:"events"`
}

// ClusterEvent is a single entry returned by the cluster events endpoint.
type ClusterEvent struct {
	EventID      string                 `json:"event_id"`
	Severity     Severity               `json:"severity"`
	Time         string                 `json:"time"`
	SourceType   string                 `json:"source_type"`
	Message      string                 `json:"message"`
	CustomFields map[string]interface{} `json:"custom_fields,omitempty"`
}

// ClusterEventsResult is the list result of the cluster events endpoint.
type ClusterEventsResult struct {
	Total                 int64          `json:"total"`
	NumAfterTruncation    int64          `json:"num_after_truncation"`
	NumFiltered           int64          `json:"num_filtered"`
	Result                []ClusterEvent `json:"result"`
	PartialFailureWarning string         `json:"partial_failure_warning,omitempty"`
	Warnings              []string       `json:"warnings,omitempty"`
}

// ClusterEventsData is the payload of a cluster events response.
type ClusterEventsData struct {
	Result ClusterEventsResult `json:"result"`
}

// Typed responses for each endpoint.
type (
	// JobEventsResponse is returned by GetEvents and GetPipelineEvents.
	JobEventsResponse = Envelope[JobEventsData]

	// GlobalEventsResponse is returned by GetGlobalEvents.
	GlobalEventsResponse = Envelope[GlobalEventsData]

	// ClusterEventsResponse is returned by GetNewEvents.
	ClusterEventsResponse = Envelope[ClusterEventsData]
)
