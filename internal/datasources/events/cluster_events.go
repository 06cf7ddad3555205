package events

import (
	"context"

	"github.com/grepr-ai/terraform-provider-rayevents/internal/client"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

var (
	_ datasource.DataSource              = &ClusterEventsDataSource{}
	_ datasource.DataSourceWithConfigure = &ClusterEventsDataSource{}
)

// ClusterEventsDataSource reads events from the cluster events API.
type ClusterEventsDataSource struct {
	eventsDataSource
}

// NewClusterEventsDataSource creates a new cluster events data source.
func NewClusterEventsDataSource() datasource.DataSource {
	return &ClusterEventsDataSource{}
}

func (d *ClusterEventsDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_cluster_events"
}

func (d *ClusterEventsDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = ClusterEventsSchema()
}

// Read fetches cluster events using the configured query.
func (d *ClusterEventsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var config ClusterEventsDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	query, diags := buildClusterEventsQuery(ctx, config)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	encoded := query.Encode()
	tflog.Debug(ctx, "Reading cluster events", map[string]interface{}{"query": encoded})

	result, err := d.client.GetNewEvents(ctx, query)
	if err != nil {
		addReadError(&resp.Diagnostics, "Failed to read cluster events", err)
		return
	}

	list := result.Data.Result
	if list.PartialFailureWarning != "" {
		tflog.Warn(ctx, "Cluster events read partially failed", map[string]interface{}{
			"warning": list.PartialFailureWarning,
		})
	}

	config.ID = types.StringValue(encoded)
	if encoded == "" {
		config.ID = types.StringValue("all")
	}
	config.Total = types.Int64Value(list.Total)
	config.NumAfterTruncation = types.Int64Value(list.NumAfterTruncation)
	config.Events = clusterEventsToModels(list.Result)

	resp.Diagnostics.Append(resp.State.Set(ctx, &config)...)
}

// buildClusterEventsQuery merges the free-form params with the typed options.
// Typed options win over a param with the same key.
func buildClusterEventsQuery(ctx context.Context, config ClusterEventsDataSourceModel) (client.ClusterEventsQuery, diag.Diagnostics) {
	var diags diag.Diagnostics
	query := client.NewClusterEventsQuery()

	if !config.Params.IsNull() && !config.Params.IsUnknown() {
		params := make(map[string]string, len(config.Params.Elements()))
		diags.Append(config.Params.ElementsAs(ctx, &params, false)...)
		if diags.HasError() {
			return nil, diags
		}
		for k, v := range params {
			query.Set(k, v)
		}
	}

	if !config.Limit.IsNull() && !config.Limit.IsUnknown() {
		query.WithLimit(int(config.Limit.ValueInt64()))
	}
	if !config.Detail.IsNull() && !config.Detail.IsUnknown() {
		query.WithDetail(config.Detail.ValueBool())
	}
	if s := config.Severity.ValueString(); s != "" {
		query.WithFilter("severity", "=", s)
	}

	return query, diags
}
