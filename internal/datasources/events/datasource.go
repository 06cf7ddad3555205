package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/grepr-ai/terraform-provider-rayevents/internal/client"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// eventsDataSource holds the client shared by every events data source.
type eventsDataSource struct {
	client *client.Client
}

// Configure sets up the data source with the provider client.
func (d *eventsDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	c, ok := req.ProviderData.(*client.Client)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected *client.Client, got: %T", req.ProviderData),
		)
		return
	}

	d.client = c
}

// addReadError turns a client error into a diagnostic.
func addReadError(diags *diag.Diagnostics, summary string, err error) {
	if errors.Is(err, client.ErrJobIDRequired) {
		diags.AddAttributeError(path.Root("job_id"), summary, "A non-empty job_id is required.")
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsNotFound():
			diags.AddError(summary, "The events endpoint was not found on the configured host. Check that `host` points at the dashboard: "+err.Error())
			return
		case apiErr.IsUnauthorized(), apiErr.IsForbidden():
			diags.AddError(summary, "The dashboard rejected the credentials: "+err.Error())
			return
		}
	}

	diags.AddError(summary, err.Error())
}

// eventToModel converts an API event to its state model. jobID is used when
// the event itself does not carry one.
func eventToModel(jobID string, ev client.Event) EventModel {
	if ev.JobID != "" {
		jobID = ev.JobID
	}

	return EventModel{
		EventID:    types.StringValue(ev.EventID),
		JobID:      stringOrNull(jobID),
		SourceType: types.StringValue(ev.SourceType),
		Severity:   types.StringValue(string(ev.Severity)),
		Label:      types.StringValue(ev.Label),
		Message:    types.StringValue(ev.Message),
		HostName:   types.StringValue(ev.HostName),
		PID:        types.Int64Value(ev.PID),
		Timestamp:  formatTimestamp(ev.Timestamp),
	}
}

// eventsToModels converts a job's events, preserving their order.
func eventsToModels(jobID string, events []client.Event) []EventModel {
	models := make([]EventModel, 0, len(events))
	for _, ev := range events {
		models = append(models, eventToModel(jobID, ev))
	}
	return models
}

// globalEventsToModels flattens the per-job map into a list ordered by job ID
// and then by timestamp, so that repeated reads yield a stable plan.
func globalEventsToModels(byJob map[string][]client.Event) []EventModel {
	jobIDs := make([]string, 0, len(byJob))
	for jobID := range byJob {
		jobIDs = append(jobIDs, jobID)
	}
	sort.Strings(jobIDs)

	var models []EventModel
	for _, jobID := range jobIDs {
		events := append([]client.Event(nil), byJob[jobID]...)
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Timestamp < events[j].Timestamp
		})
		models = append(models, eventsToModels(jobID, events)...)
	}

	if models == nil {
		models = []EventModel{}
	}
	return models
}

// clusterEventsToModels converts cluster events, preserving their order.
func clusterEventsToModels(events []client.ClusterEvent) []ClusterEventModel {
	models := make([]ClusterEventModel, 0, len(events))
	for _, ev := range events {
		models = append(models, ClusterEventModel{
			EventID:    types.StringValue(ev.EventID),
			Severity:   types.StringValue(string(ev.Severity)),
			Time:       types.StringValue(ev.Time),
			SourceType: types.StringValue(ev.SourceType),
			Message:    types.StringValue(ev.Message),
		})
	}
	return models
}

// formatTimestamp converts fractional epoch seconds to RFC 3339. Zero means unset.
func formatTimestamp(seconds float64) types.String {
	if seconds <= 0 {
		return types.StringNull()
	}

	whole, frac := math.Modf(seconds)
	t := time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
	return types.StringValue(t.Format(time.RFC3339Nano))
}

func stringOrNull(s string) types.String {
	if s == "" {
		return types.StringNull()
	}
	return types.StringValue(s)
}
