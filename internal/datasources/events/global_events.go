package events

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

var (
	_ datasource.DataSource              = &GlobalEventsDataSource{}
	_ datasource.DataSourceWithConfigure = &GlobalEventsDataSource{}
)

// globalEventsID is the fixed ID of the global events data source.
const globalEventsID = "global"

// GlobalEventsDataSource reads the events of every job.
type GlobalEventsDataSource struct {
	eventsDataSource
}

// NewGlobalEventsDataSource creates a new global events data source.
func NewGlobalEventsDataSource() datasource.DataSource {
	return &GlobalEventsDataSource{}
}

func (d *GlobalEventsDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_global_events"
}

func (d *GlobalEventsDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = GlobalEventsSchema()
}

// Read fetches every job's events and flattens them into a single list.
func (d *GlobalEventsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	tflog.Debug(ctx, "Reading global events")

	result, err := d.client.GetGlobalEvents(ctx)
	if err != nil {
		addReadError(&resp.Diagnostics, "Failed to read global events", err)
		return
	}

	state := GlobalEventsDataSourceModel{
		ID:     types.StringValue(globalEventsID),
		Events: globalEventsToModels(result.Data.Events),
	}

	tflog.Debug(ctx, "Read global events", map[string]interface{}{
		"jobs":  len(result.Data.Events),
		"count": len(state.Events),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}
