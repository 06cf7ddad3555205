package client

import (
	"net/url"
	"strconv"
	"time"
)

// ClusterEventsQuery holds the query parameters for GetNewEvents.
//
// Keys and values are sent exactly as given. The With* helpers cover the
// list options the state API understands, but any other key may be set too.
type ClusterEventsQuery map[string][]string

// NewClusterEventsQuery returns an empty, writable query.
func NewClusterEventsQuery() ClusterEventsQuery {
	return ClusterEventsQuery{}
}

// Set replaces the values for key.
func (q ClusterEventsQuery) Set(key, value string) ClusterEventsQuery {
	q[key] = []string{value}
	return q
}

// Add appends value to the values for key.
func (q ClusterEventsQuery) Add(key, value string) ClusterEventsQuery {
	q[key] = append(q[key], value)
	return q
}

// WithLimit caps the number of events returned.
func (q ClusterEventsQuery) WithLimit(limit int) ClusterEventsQuery {
	return q.Set("limit", strconv.Itoa(limit))
}

// WithTimeout sets the server-side timeout, in whole seconds.
func (q ClusterEventsQuery) WithTimeout(timeout time.Duration) ClusterEventsQuery {
	return q.Set("timeout", strconv.Itoa(int(timeout/time.Second)))
}

// WithDetail requests the detailed form of each event.
func (q ClusterEventsQuery) WithDetail(detail bool) ClusterEventsQuery {
	return q.Set("detail", strconv.FormatBool(detail))
}

// WithFilter appends a filter. Filters are positional: the n-th key, predicate
// and value belong together.
func (q ClusterEventsQuery) WithFilter(key, predicate, value string) ClusterEventsQuery {
	q.Add("filter_keys", key)
	q.Add("filter_predicates", predicate)
	return q.Add("filter_values", value)
}

// Encode returns the URL-encoded query string, sorted by key.
func (q ClusterEventsQuery) Encode() string {
	return url.Values(q).Encode()
}
