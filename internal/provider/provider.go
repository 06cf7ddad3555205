// Package provider implements the rayevents Terraform provider.
//
// The provider handles configuration and data source registration. It reads
// events from a Ray dashboard, optionally authenticating with the OAuth2
// client-credentials flow when the dashboard sits behind an identity proxy.
//
// Configuration can be provided via:
//   - Provider block attributes (host, client_id, client_secret, token_url, audience, timeout)
//   - Environment variables (RAYEVENTS_HOST, RAYEVENTS_CLIENT_ID, RAYEVENTS_CLIENT_SECRET,
//     RAYEVENTS_TOKEN_URL, RAYEVENTS_AUDIENCE)
//
// Provider block attributes take precedence over environment variables.
package provider

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/grepr-ai/terraform-provider-rayevents/internal/client"
	"github.com/grepr-ai/terraform-provider-rayevents/internal/datasources/events"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Compile-time check that RayEventsProvider implements the provider.Provider interface.
var _ provider.Provider = &RayEventsProvider{}

// RayEventsProvider defines the provider implementation.
type RayEventsProvider struct {
	version string
}

// RayEventsProviderModel describes the provider data model.
type RayEventsProviderModel struct {
	Host         types.String `tfsdk:"host"`
	ClientID     types.String `tfsdk:"client_id"`
	ClientSecret types.String `tfsdk:"client_secret"`
	TokenURL     types.String `tfsdk:"token_url"`
	Audience     types.String `tfsdk:"audience"`
	Timeout      types.Int64  `tfsdk:"timeout"`
}

// New creates a new provider instance.
func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &RayEventsProvider{
			version: version,
		}
	}
}

// Metadata returns the provider type name.
func (p *RayEventsProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "rayevents"
	resp.Version = p.version
}

// Schema defines the provider-level schema for configuration.
func (p *RayEventsProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "The rayevents provider reads job and cluster events from a Ray dashboard.",
		Attributes: map[string]schema.Attribute{
			"host": schema.StringAttribute{
				MarkdownDescription: "The dashboard URL (e.g., `http://127.0.0.1:8265`). Can also be set via the `RAYEVENTS_HOST` environment variable.",
				Optional:            true,
			},
			"client_id": schema.StringAttribute{
				MarkdownDescription: "The OAuth client ID, when the dashboard requires authentication. Can also be set via the `RAYEVENTS_CLIENT_ID` environment variable.",
				Optional:            true,
			},
			"client_secret": schema.StringAttribute{
				MarkdownDescription: "The OAuth client secret. Can also be set via the `RAYEVENTS_CLIENT_SECRET` environment variable.",
				Optional:            true,
				Sensitive:           true,
			},
			"token_url": schema.StringAttribute{
				MarkdownDescription: "The OAuth token endpoint. Required with `client_id`. Can also be set via the `RAYEVENTS_TOKEN_URL` environment variable.",
				Optional:            true,
			},
			"audience": schema.StringAttribute{
				MarkdownDescription: "The OAuth audience to request. Can also be set via the `RAYEVENTS_AUDIENCE` environment variable.",
				Optional:            true,
			},
			"timeout": schema.Int64Attribute{
				MarkdownDescription: "Timeout in seconds for each request. Defaults to `30`.",
				Optional:            true,
				Validators: []validator.Int64{
					int64validator.AtLeast(1),
				},
			},
		},
	}
}

// Configure prepares the events client for data sources.
func (p *RayEventsProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var config RayEventsProviderModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	cfg, diags := clientConfig(config)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Configuring rayevents client", map[string]interface{}{
		"host":          cfg.Host,
		"authenticated": cfg.ClientID != "",
	})

	c := client.NewClient(cfg)

	resp.DataSourceData = c
	resp.ResourceData = c
}

// Resources defines the resources implemented by the provider.
func (p *RayEventsProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{}
}

// DataSources defines the data sources implemented by the provider.
func (p *RayEventsProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		events.NewJobEventsDataSource,
		events.NewGlobalEventsDataSource,
		events.NewClusterEventsDataSource,
	}
}

// clientConfig resolves the provider model and environment into a client
// configuration, reporting every problem it finds.
func clientConfig(config RayEventsProviderModel) (client.Config, diag.Diagnostics) {
	var diags diag.Diagnostics

	host := getConfigValue(config.Host, "RAYEVENTS_HOST")
	clientID := getConfigValue(config.ClientID, "RAYEVENTS_CLIENT_ID")
	clientSecret := getConfigValue(config.ClientSecret, "RAYEVENTS_CLIENT_SECRET")
	tokenURL := getConfigValue(config.TokenURL, "RAYEVENTS_TOKEN_URL")
	audience := getConfigValue(config.Audience, "RAYEVENTS_AUDIENCE")

	if host == "" {
		diags.AddError(
			"Missing Host Configuration",
			"The provider requires a host to be configured. Set the `host` attribute or the `RAYEVENTS_HOST` environment variable.",
		)
	} else if err := validateHTTPURL(host); err != nil {
		diags.AddAttributeError(path.Root("host"), "Invalid Host URL", err.Error())
	}

	if clientID != "" && clientSecret == "" {
		diags.AddError(
			"Missing Client Secret Configuration",
			"A client_secret is required when client_id is set. Set the `client_secret` attribute or the `RAYEVENTS_CLIENT_SECRET` environment variable.",
		)
	}
	if clientID == "" && clientSecret != "" {
		diags.AddError(
			"Missing Client ID Configuration",
			"A client_id is required when client_secret is set. Set the `client_id` attribute or the `RAYEVENTS_CLIENT_ID` environment variable.",
		)
	}

	if clientID != "" {
		if tokenURL == "" {
			diags.AddError(
				"Missing Token URL Configuration",
				"A token_url is required when client_id is set. Set the `token_url` attribute or the `RAYEVENTS_TOKEN_URL` environment variable.",
			)
		} else if err := validateHTTPURL(tokenURL); err != nil {
			diags.AddAttributeError(path.Root("token_url"), "Invalid Token URL", err.Error())
		}
	}

	var timeout time.Duration
	if !config.Timeout.IsNull() && !config.Timeout.IsUnknown() {
		timeout = time.Duration(config.Timeout.ValueInt64()) * time.Second
	}

	return client.Config{
		Host:         host,
		Timeout:      timeout,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Audience:     audience,
	}, diags
}

// validateHTTPURL checks that raw parses as an http or https URL.
func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://, got: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", raw)
	}
	return nil
}

// getConfigValue returns the config value if set, otherwise falls back to the environment variable.
func getConfigValue(configValue types.String, envVar string) string {
	if !configValue.IsNull() && !configValue.IsUnknown() {
		return configValue.ValueString()
	}
	return os.Getenv(envVar)
}
