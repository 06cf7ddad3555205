package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// GetEvents retrieves the events of a single job.
//
// Returns ErrJobIDRequired without sending a request if jobID is empty.
func (c *Client) GetEvents(ctx context.Context, jobID string) (*JobEventsResponse, error) {
	if jobID == "" {
		return nil, ErrJobIDRequired
	}

	query, err := jobQuery(jobID)
	if err != nil {
		return nil, err
	}

	var resp JobEventsResponse
	if err := c.get(ctx, EndpointEvents, query, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetPipelineEvents retrieves the pipeline view of a job's events.
//
// Returns ErrJobIDRequired without sending a request if jobID is empty.
func (c *Client) GetPipelineEvents(ctx context.Context, jobID string) (*JobEventsResponse, error) {
	if jobID == "" {
		return nil, ErrJobIDRequired
	}

	query, err := jobQuery(jobID)
	if err != nil {
		return nil, err
	}
	query.Set(paramView, viewPipeline)

	var resp JobEventsResponse
	if err := c.get(ctx, EndpointEvents, query, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetGlobalEvents retrieves the events of every job.
func (c *Client) GetGlobalEvents(ctx context.Context) (*GlobalEventsResponse, error) {
	var resp GlobalEventsResponse
	if err := c.get(ctx, EndpointEvents, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetNewEvents retrieves events from the cluster events endpoint.
//
// params is passed through without validation; a nil or empty query sends
// the request with no query string.
func (c *Client) GetNewEvents(ctx context.Context, params ClusterEventsQuery) (*ClusterEventsResponse, error) {
	var resp ClusterEventsResponse
	if err := c.get(ctx, EndpointClusterEvents, url.Values(params), &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// jobQuery builds the job_id query parameter using form style encoding.
func jobQuery(jobID string) (url.Values, error) {
	frag, err := runtime.StyleParamWithLocation("form", true, paramJobID, runtime.ParamLocationQuery, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", paramJobID, err)
	}

	query, err := url.ParseQuery(frag)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", paramJobID, err)
	}

	return query, nil
}
