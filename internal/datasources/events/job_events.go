package events

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Compile-time checks that JobEventsDataSource implements required interfaces
var (
	_ datasource.DataSource              = &JobEventsDataSource{}
	_ datasource.DataSourceWithConfigure = &JobEventsDataSource{}
)

// JobEventsDataSource reads the events of a single job.
type JobEventsDataSource struct {
	eventsDataSource
}

// NewJobEventsDataSource creates a new job events data source.
func NewJobEventsDataSource() datasource.DataSource {
	return &JobEventsDataSource{}
}

// Metadata returns the data source type name.
func (d *JobEventsDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_job_events"
}

// Schema returns the data source schema.
func (d *JobEventsDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = JobEventsSchema()
}

// Read fetches the job's events, or their pipeline view when pipeline_view is set.
func (d *JobEventsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var config JobEventsDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	jobID := config.JobID.ValueString()
	pipeline := config.PipelineView.ValueBool()
	tflog.Debug(ctx, "Reading job events", map[string]interface{}{
		"job_id":        jobID,
		"pipeline_view": pipeline,
	})

	fetch := d.client.GetEvents
	if pipeline {
		fetch = d.client.GetPipelineEvents
	}

	result, err := fetch(ctx, jobID)
	if err != nil {
		addReadError(&resp.Diagnostics, "Failed to read job events", err)
		return
	}

	config.ID = types.StringValue(jobID)
	config.Events = eventsToModels(jobID, result.Data.Events)

	tflog.Debug(ctx, "Read job events", map[string]interface{}{
		"job_id": jobID,
		"count":  len(config.Events),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &config)...)
}
