package events

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grepr-ai/terraform-provider-rayevents/internal/client"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/tfsdk"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-go/tftypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchemas verifies that every data source schema is a valid implementation.
func TestSchemas(t *testing.T) {
	schemas := map[string]schema.Schema{
		"job_events":     JobEventsSchema(),
		"global_events":  GlobalEventsSchema(),
		"cluster_events": ClusterEventsSchema(),
	}

	for name, s := range schemas {
		t.Run(name, func(t *testing.T) {
			diags := s.ValidateImplementation(context.Background())
			assert.False(t, diags.HasError(), "%v", diags)
		})
	}
}

// TestMetadata verifies the data source type names.
func TestMetadata(t *testing.T) {
	tests := map[string]datasource.DataSource{
		"rayevents_job_events":     NewJobEventsDataSource(),
		"rayevents_global_events":  NewGlobalEventsDataSource(),
		"rayevents_cluster_events": NewClusterEventsDataSource(),
	}

	for expected, ds := range tests {
		resp := &datasource.MetadataResponse{}
		ds.Metadata(context.Background(), datasource.MetadataRequest{ProviderTypeName: "rayevents"}, resp)
		assert.Equal(t, expected, resp.TypeName)
	}
}

// TestConfigure_WrongType verifies that unexpected provider data is reported.
func TestConfigure_WrongType(t *testing.T) {
	ds := &JobEventsDataSource{}
	resp := &datasource.ConfigureResponse{}

	ds.Configure(context.Background(), datasource.ConfigureRequest{ProviderData: "nope"}, resp)

	assert.True(t, resp.Diagnostics.HasError())
	assert.Nil(t, ds.client)
}

func TestFormatTimestamp(t *testing.T) {
	assert.True(t, formatTimestamp(0).IsNull())
	assert.Equal(t, "2023-11-14T22:13:20Z", formatTimestamp(1700000000).ValueString())
	assert.Equal(t, "2023-11-14T22:13:20.5Z", formatTimestamp(1700000000.5).ValueString())
}

func TestEventToModel(t *testing.T) {
	m := eventToModel("J1", client.Event{
		EventID:    "e1",
		SourceType: "JOBS",
		Severity:   client.SeverityError,
		Message:    "boom",
		PID:        7,
	})

	assert.Equal(t, "e1", m.EventID.ValueString())
	assert.Equal(t, "J1", m.JobID.ValueString())
	assert.Equal(t, "ERROR", m.Severity.ValueString())
	assert.Equal(t, int64(7), m.PID.ValueInt64())
	assert.True(t, m.Timestamp.IsNull())

	own := eventToModel("J1", client.Event{EventID: "e2", JobID: "J9"})
	assert.Equal(t, "J9", own.JobID.ValueString())
}

// TestGlobalEventsToModels verifies the flattened order: by job ID, then by timestamp.
func TestGlobalEventsToModels(t *testing.T) {
	models := globalEventsToModels(map[string][]client.Event{
		"02": {{EventID: "c", Timestamp: 30}, {EventID: "b", Timestamp: 20}},
		"01": {{EventID: "a", Timestamp: 40}},
	})

	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.JobID.ValueString()+"/"+m.EventID.ValueString())
	}
	assert.Equal(t, []string{"01/a", "02/b", "02/c"}, ids)

	assert.NotNil(t, globalEventsToModels(nil))
	assert.Empty(t, globalEventsToModels(nil))
}

func TestBuildClusterEventsQuery(t *testing.T) {
	ctx := context.Background()
	params, diags := types.MapValueFrom(ctx, types.StringType, map[string]string{
		"limit":        "5",
		"exclude_host": "x",
	})
	require.False(t, diags.HasError())

	query, diags := buildClusterEventsQuery(ctx, ClusterEventsDataSourceModel{
		Params:   params,
		Limit:    types.Int64Value(100),
		Detail:   types.BoolNull(),
		Severity: types.StringValue("ERROR"),
	})
	require.False(t, diags.HasError())

	assert.Equal(t, []string{"100"}, query["limit"])
	assert.Equal(t, []string{"x"}, query["exclude_host"])
	assert.Equal(t, []string{"severity"}, query["filter_keys"])
	assert.Equal(t, []string{"="}, query["filter_predicates"])
	assert.Equal(t, []string{"ERROR"}, query["filter_values"])
	assert.NotContains(t, query, "detail")
}

func TestBuildClusterEventsQuery_Empty(t *testing.T) {
	query, diags := buildClusterEventsQuery(context.Background(), ClusterEventsDataSourceModel{
		Params:   types.MapNull(types.StringType),
		Limit:    types.Int64Null(),
		Detail:   types.BoolNull(),
		Severity: types.StringNull(),
	})
	require.False(t, diags.HasError())
	assert.Empty(t, query.Encode())
}

func TestAddReadError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"job id", client.ErrJobIDRequired, "non-empty job_id"},
		{"not found", &client.APIError{StatusCode: http.StatusNotFound}, "was not found"},
		{"unauthorized", &client.APIError{StatusCode: http.StatusUnauthorized}, "rejected the credentials"},
		{"other", errors.New("connection refused"), "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags diag.Diagnostics
			addReadError(&diags, "Failed", tt.err)
			require.Len(t, diags, 1)
			assert.Contains(t, diags[0].Detail(), tt.contains)
		})
	}
}

// newConfig builds a data source config from the given attribute values.
// Attributes not present in values are null.
func newConfig(t *testing.T, s schema.Schema, values map[string]tftypes.Value) tfsdk.Config {
	t.Helper()

	objType, ok := s.Type().TerraformType(context.Background()).(tftypes.Object)
	require.True(t, ok)

	attrs := make(map[string]tftypes.Value, len(objType.AttributeTypes))
	for name, typ := range objType.AttributeTypes {
		if v, ok := values[name]; ok {
			attrs[name] = v
			continue
		}
		attrs[name] = tftypes.NewValue(typ, nil)
	}

	return tfsdk.Config{
		Raw:    tftypes.NewValue(objType, attrs),
		Schema: s,
	}
}

// setupDataSource configures ds with a client pointed at a test server.
func setupDataSource(t *testing.T, ds datasource.DataSourceWithConfigure, handler http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	resp := &datasource.ConfigureResponse{}
	ds.Configure(context.Background(), datasource.ConfigureRequest{
		ProviderData: client.NewClient(client.Config{Host: server.URL}),
	}, resp)
	require.False(t, resp.Diagnostics.HasError())
}

// TestJobEventsDataSource_Read verifies a pipeline view read end to end.
func TestJobEventsDataSource_Read(t *testing.T) {
	ctx := context.Background()
	ds := &JobEventsDataSource{}
	setupDataSource(t, ds, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "job_id=J1&view=pipeline", r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"result": true, "data": {"jobId": "J1", "events": [
			{"eventId": "e1", "severity": "INFO", "message": "started", "timestamp": 1700000000}
		]}}`))
	})

	s := JobEventsSchema()
	req := datasource.ReadRequest{Config: newConfig(t, s, map[string]tftypes.Value{
		"job_id":        tftypes.NewValue(tftypes.String, "J1"),
		"pipeline_view": tftypes.NewValue(tftypes.Bool, true),
	})}
	resp := &datasource.ReadResponse{State: tfsdk.State{Schema: s}}

	ds.Read(ctx, req, resp)
	require.False(t, resp.Diagnostics.HasError(), "%v", resp.Diagnostics)

	var state JobEventsDataSourceModel
	require.False(t, resp.State.Get(ctx, &state).HasError())
	assert.Equal(t, "J1", state.ID.ValueString())
	require.Len(t, state.Events, 1)
	assert.Equal(t, "e1", state.Events[0].EventID.ValueString())
	assert.Equal(t, "J1", state.Events[0].JobID.ValueString())
	assert.Equal(t, "2023-11-14T22:13:20Z", state.Events[0].Timestamp.ValueString())
}

// TestGlobalEventsDataSource_Read_Error verifies that API errors become diagnostics.
func TestGlobalEventsDataSource_Read_Error(t *testing.T) {
	ds := &GlobalEventsDataSource{}
	setupDataSource(t, ds, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	s := GlobalEventsSchema()
	resp := &datasource.ReadResponse{State: tfsdk.State{Schema: s}}

	ds.Read(context.Background(), datasource.ReadRequest{Config: newConfig(t, s, nil)}, resp)

	require.True(t, resp.Diagnostics.HasError())
	assert.Equal(t, "Failed to read global events", resp.Diagnostics[0].Summary())
}

// TestClusterEventsDataSource_Read verifies a filtered cluster events read end to end.
func TestClusterEventsDataSource_Read(t *testing.T) {
	ctx := context.Background()
	ds := &ClusterEventsDataSource{}
	setupDataSource(t, ds, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/cluster_events", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "WARNING", r.URL.Query().Get("filter_values"))
		_, _ = w.Write([]byte(`{"result": true, "data": {"result": {
			"total": 4,
			"num_after_truncation": 1,
			"result": [{"event_id": "c1", "severity": "WARNING", "time": "t0", "source_type": "GCS", "message": "slow"}]
		}}}`))
	})

	s := ClusterEventsSchema()
	req := datasource.ReadRequest{Config: newConfig(t, s, map[string]tftypes.Value{
		"limit":    tftypes.NewValue(tftypes.Number, 10),
		"severity": tftypes.NewValue(tftypes.String, "WARNING"),
	})}
	resp := &datasource.ReadResponse{State: tfsdk.State{Schema: s}}

	ds.Read(ctx, req, resp)
	require.False(t, resp.Diagnostics.HasError(), "%v", resp.Diagnostics)

	var state ClusterEventsDataSourceModel
	require.False(t, resp.State.Get(ctx, &state).HasError())
	assert.Equal(t, int64(4), state.Total.ValueInt64())
	assert.Equal(t, int64(1), state.NumAfterTruncation.ValueInt64())
	require.Len(t, state.Events, 1)
	assert.Equal(t, "GCS", state.Events[0].SourceType.ValueString())
	assert.Equal(t, "filter_keys=severity&filter_predicates=%3D&filter_values=WARNING&limit=10", state.ID.ValueString())
}
