// Package main is the entry point for the rayevents Terraform provider.
//
// This provider exposes the events recorded by a Ray dashboard as Terraform
// data sources: the events of one job, the pipeline view of a job, the events
// of every job, and the cluster events API.
//
// Usage:
//
//	provider "rayevents" {
//	  host = "http://127.0.0.1:8265"
//	}
//
//	data "rayevents_job_events" "training" {
//	  job_id = "02000000"
//	}
//
//	data "rayevents_cluster_events" "errors" {
//	  severity = "ERROR"
//	  limit    = 100
//	}
package main

import (
	"context"
	"flag"
	"log"

	"github.com/grepr-ai/terraform-provider-rayevents/internal/provider"
	"github.com/hashicorp/terraform-plugin-framework/providerserver"
)

// version is set at build time via -ldflags "-X main.version=X.Y.Z"
var (
	version string = "dev"
)

func main() {
	var debug bool

	flag.BoolVar(&debug, "debug", false, "set to true to run the provider with support for debuggers like delve")
	flag.Parse()

	opts := providerserver.ServeOpts{
		Address: "registry.terraform.io/grepr-ai/rayevents",
		Debug:   debug,
	}

	err := providerserver.Serve(context.Background(), provider.New(version), opts)
	if err != nil {
		log.Fatal(err.Error())
	}
}
