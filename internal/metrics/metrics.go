// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics exports a run's measurements in the Prometheus text format.
//
// The output is meant for the node_exporter textfile collector or for CI
// systems that scrape artifacts, so contract growth can be tracked across
// builds. A private registry is used; nothing is served over HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kraklabs/sizegate/internal/report"
)

// Collector holds the gauges for one run.
type Collector struct {
	registry *prometheus.Registry

	runtimeBytes  *prometheus.GaugeVec
	initcodeBytes *prometheus.GaugeVec
	overLimit     *prometheus.GaugeVec
	limitBytes    *prometheus.GaugeVec
	checked       prometheus.Gauge
	offenders     prometheus.Gauge
}

// New creates a Collector with its own registry.
func New() *Collector {
	contractLabels := []string{"contract", "source", "path"}
	c := &Collector{
		registry:      prometheus.NewRegistry(),
		runtimeBytes:  prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "sizegate_contract_runtime_bytes", Help: "Runtime bytecode size of a contract"}, contractLabels),
		initcodeBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "sizegate_contract_initcode_bytes", Help: "Initcode size of a contract"}, contractLabels),
		overLimit:     prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "sizegate_contract_over_limit", Help: "1 if the contract exceeds a configured limit"}, contractLabels),
		limitBytes:    prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "sizegate_limit_bytes", Help: "Configured size limit"}, []string{"kind", "preset"}),
		checked:       prometheus.NewGauge(prometheus.GaugeOpts{Name: "sizegate_artifacts_checked", Help: "Artifacts with bytecode that were checked"}),
		offenders:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "sizegate_offenders", Help: "Contracts exceeding a limit"}),
	}
	c.registry.MustRegister(c.runtimeBytes, c.initcodeBytes, c.overLimit, c.limitBytes, c.checked, c.offenders)
	return c
}

// Observe records every row and the limits of rep.
func (c *Collector) Observe(rep *report.Report) {
	over := make(map[string]bool, len(rep.Offenders))
	for _, o := range rep.Offenders {
		over[o.ArtifactPath] = true
	}

	// Contract and source names repeat across nested buckets; the artifact
	// path keeps each series unique.
	for _, r := range rep.Rows {
		c.runtimeBytes.WithLabelValues(r.Contract, r.Source, r.ArtifactPath).Set(float64(r.RuntimeBytes))
		c.initcodeBytes.WithLabelValues(r.Contract, r.Source, r.ArtifactPath).Set(float64(r.InitcodeBytes))
		flag := 0.0
		if over[r.ArtifactPath] {
			flag = 1
		}
		c.overLimit.WithLabelValues(r.Contract, r.Source, r.ArtifactPath).Set(flag)
	}

	c.limitBytes.WithLabelValues(report.KindRuntime, rep.Limits.Preset).Set(float64(rep.Limits.MaxRuntimeBytes))
	c.limitBytes.WithLabelValues(report.KindInitcode, rep.Limits.Preset).Set(float64(rep.Limits.MaxInitcodeBytes))
	c.checked.Set(float64(len(rep.Rows)))
	c.offenders.Set(float64(len(rep.Offenders)))
}

// Gatherer exposes the registry, mainly for tests.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteFile atomically writes the collected metrics to path.
func (c *Collector) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
