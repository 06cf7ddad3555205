package client

// API endpoint paths for the dashboard events service.
//
// The base URL (e.g. "http://127.0.0.1:8265") is joined with these paths
// as-is; a trailing slash on the base URL is trimmed.
//
// Example usage:
//   - Job events:      GET http://127.0.0.1:8265/events?job_id=02000000
//   - Pipeline view:   GET http://127.0.0.1:8265/events?job_id=02000000&view=pipeline
//   - All events:      GET http://127.0.0.1:8265/events
//   - Cluster events:  GET http://127.0.0.1:8265/api/v0/cluster_events?limit=100
const (
	// EndpointEvents is the legacy events endpoint.
	EndpointEvents = "/events"

	// EndpointClusterEvents is the state API endpoint for cluster events.
	EndpointClusterEvents = "/api/v0/cluster_events"
)

// Query parameter names and values understood by EndpointEvents.
const (
	paramJobID = "job_id"
	paramView  = "view"

	viewPipeline = "pipeline"
)
