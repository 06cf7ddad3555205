// Package events provides the Terraform data sources for dashboard events.
// It defines the schemas, data models and conversions for the
// rayevents_job_events, rayevents_global_events and rayevents_cluster_events
// data sources.
package events

import (
	"github.com/grepr-ai/terraform-provider-rayevents/internal/client"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// maxClusterEventsLimit is the largest limit the state API accepts.
const maxClusterEventsLimit = 10000

// EventModel is a single legacy event in Terraform state.
type EventModel struct {
	EventID    types.String `tfsdk:"event_id"`
	JobID      types.String `tfsdk:"job_id"`
	SourceType types.String `tfsdk:"source_type"`
	Severity   types.String `tfsdk:"severity"`
	Label      types.String `tfsdk:"label"`
	Message    types.String `tfsdk:"message"`
	HostName   types.String `tfsdk:"host_name"`
	PID        types.Int64  `tfsdk:"pid"`
	Timestamp  types.String `tfsdk:"timestamp"`
}

// ClusterEventModel is a single cluster event in Terraform state.
type ClusterEventModel struct {
	EventID    types.String `tfsdk:"event_id"`
	Severity   types.String `tfsdk:"severity"`
	Time       types.String `tfsdk:"time"`
	SourceType types.String `tfsdk:"source_type"`
	Message    types.String `tfsdk:"message"`
}

// JobEventsDataSourceModel describes the rayevents_job_events data source.
type JobEventsDataSourceModel struct {
	JobID        types.String `tfsdk:"job_id"`
	PipelineView types.Bool   `tfsdk:"pipeline_view"`

	ID     types.String `tfsdk:"id"`
	Events []EventModel `tfsdk:"events"`
}

// GlobalEventsDataSourceModel describes the rayevents_global_events data source.
type GlobalEventsDataSourceModel struct {
	ID     types.String `tfsdk:"id"`
	Events []EventModel `tfsdk:"events"`
}

// ClusterEventsDataSourceModel describes the rayevents_cluster_events data source.
type ClusterEventsDataSourceModel struct {
	Params   types.Map    `tfsdk:"params"`
	Limit    types.Int64  `tfsdk:"limit"`
	Detail   types.Bool   `tfsdk:"detail"`
	Severity types.String `tfsdk:"severity"`

	ID                 types.String        `tfsdk:"id"`
	Total              types.Int64         `tfsdk:"total"`
	NumAfterTruncation types.Int64         `tfsdk:"num_after_truncation"`
	Events             []ClusterEventModel `tfsdk:"events"`
}

// eventAttributes is shared by the job and global event lists.
func eventAttributes() map[string]schema.Attribute {
	return map[string]schema.Attribute{
		"event_id": schema.StringAttribute{
			MarkdownDescription: "The unique identifier of the event.",
			Computed:            true,
		},
		"job_id": schema.StringAttribute{
			MarkdownDescription: "The job the event belongs to.",
			Computed:            true,
		},
		"source_type": schema.StringAttribute{
			MarkdownDescription: "The component that emitted the event (e.g. `JOBS`, `AUTOSCALER`).",
			Computed:            true,
		},
		"severity": schema.StringAttribute{
			MarkdownDescription: "The event severity.",
			Computed:            true,
		},
		"label": schema.StringAttribute{
			MarkdownDescription: "The event label.",
			Computed:            true,
		},
		"message": schema.StringAttribute{
			MarkdownDescription: "The human-readable event message.",
			Computed:            true,
		},
		"host_name": schema.StringAttribute{
			MarkdownDescription: "The host that emitted the event.",
			Computed:            true,
		},
		"pid": schema.Int64Attribute{
			MarkdownDescription: "The process ID that emitted the event.",
			Computed:            true,
		},
		"timestamp": schema.StringAttribute{
			MarkdownDescription: "When the event was emitted, in RFC 3339 format.",
			Computed:            true,
		},
	}
}

// JobEventsSchema returns the schema for the rayevents_job_events data source.
func JobEventsSchema() schema.Schema {
	return schema.Schema{
		MarkdownDescription: "Reads the events of a single job.",

		Attributes: map[string]schema.Attribute{
			"job_id": schema.StringAttribute{
				MarkdownDescription: "The job to read events for.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"pipeline_view": schema.BoolAttribute{
				MarkdownDescription: "Read the pipeline view of the job's events. Defaults to `false`.",
				Optional:            true,
			},
			"id": schema.StringAttribute{
				MarkdownDescription: "The job ID.",
				Computed:            true,
			},
			"events": schema.ListNestedAttribute{
				MarkdownDescription: "The job's events.",
				Computed:            true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: eventAttributes(),
				},
			},
		},
	}
}

// GlobalEventsSchema returns the schema for the rayevents_global_events data source.
func GlobalEventsSchema() schema.Schema {
	return schema.Schema{
		MarkdownDescription: "Reads the events of every job.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				MarkdownDescription: "A fixed identifier for the data source.",
				Computed:            true,
			},
			"events": schema.ListNestedAttribute{
				MarkdownDescription: "Every job's events, ordered by job ID and then by timestamp.",
				Computed:            true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: eventAttributes(),
				},
			},
		},
	}
}

// ClusterEventsSchema returns the schema for the rayevents_cluster_events data source.
func ClusterEventsSchema() schema.Schema {
	severities := make([]string, 0, len(client.Severities()))
	for _, s := range client.Severities() {
		severities = append(severities, string(s))
	}

	return schema.Schema{
		MarkdownDescription: "Reads events from the cluster events API.",

		Attributes: map[string]schema.Attribute{
			"params": schema.MapAttribute{
				MarkdownDescription: "Extra query parameters, sent as-is.",
				Optional:            true,
				ElementType:         types.StringType,
			},
			"limit": schema.Int64Attribute{
				MarkdownDescription: "The maximum number of events to return.",
				Optional:            true,
				Validators: []validator.Int64{
					int64validator.Between(1, maxClusterEventsLimit),
				},
			},
			"detail": schema.BoolAttribute{
				MarkdownDescription: "Request the detailed form of each event.",
				Optional:            true,
			},
			"severity": schema.StringAttribute{
				MarkdownDescription: "Only return events with this severity.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(severities...),
				},
			},
			"id": schema.StringAttribute{
				MarkdownDescription: "The encoded query used for the read.",
				Computed:            true,
			},
			"total": schema.Int64Attribute{
				MarkdownDescription: "The total number of events before truncation.",
				Computed:            true,
			},
			"num_after_truncation": schema.Int64Attribute{
				MarkdownDescription: "The number of events left after truncation.",
				Computed:            true,
			},
			"events": schema.ListNestedAttribute{
				MarkdownDescription: "The cluster events.",
				Computed:            true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: map[string]schema.Attribute{
						"event_id": schema.StringAttribute{
							Computed: true,
						},
						"severity": schema.StringAttribute{
							Computed: true,
						},
						"time": schema.StringAttribute{
							Computed: true,
						},
						"source_type": schema.StringAttribute{
							Computed: true,
						},
						"message": schema.StringAttribute{
							Computed: true,
						},
					},
				},
			},
		},
	}
}
