// SPDX-License-Identifier: MPL-2.0

// Package metrics exposes inventory statistics as Prometheus gauges and
// writes them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/invowk/inventory/pkg/inventory"
)

// Namespace prefixes every metric name.
const Namespace = "inventory"

// Collector holds the gauges of the most recent parse. Gauges are reset on
// each Record so removed groups and resolved diagnostics disappear.
type Collector struct {
	registry *prometheus.Registry

	sourceUp      prometheus.Gauge
	hosts         prometheus.Gauge
	groups        prometheus.Gauge
	hostVars      prometheus.Gauge
	groupHosts    *prometheus.GaugeVec
	diagnostics   *prometheus.GaugeVec
	parseDuration prometheus.Gauge
	lastParse     prometheus.Gauge
}

// NewCollector registers the inventory gauges. A nil registry gets a fresh
// one so collectors never touch the global default registry.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		sourceUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "source_up",
			Help:      "1 if the inventory source was read completely, 0 otherwise.",
		}),
		hosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "hosts",
			Help:      "Number of distinct hosts.",
		}),
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "groups",
			Help:      "Number of groups, excluding the implicit all group.",
		}),
		hostVars: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "hosts_with_vars",
			Help:      "Number of hosts carrying inline variables.",
		}),
		groupHosts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "group_hosts",
			Help:      "Hosts resolved through a group and its descendants.",
		}, []string{"group"}),
		diagnostics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "diagnostics",
			Help:      "Diagnostics reported by the last parse.",
		}, []string{"severity", "code"}),
		parseDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "parse_duration_seconds",
			Help:      "Wall time of the last parse.",
		}),
		lastParse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_parse_timestamp_seconds",
			Help:      "Unix time of the last parse.",
		}),
	}

	registry.MustRegister(
		c.sourceUp,
		c.hosts,
		c.groups,
		c.hostVars,
		c.groupHosts,
		c.diagnostics,
		c.parseDuration,
		c.lastParse,
	)
	return c
}

// Registry returns the registry the gauges live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Record replaces the gauges with the figures of res.
func (c *Collector) Record(res *inventory.Result, took time.Duration, at time.Time) {
	c.groupHosts.Reset()
	c.diagnostics.Reset()

	up := 1.0
	for _, d := range res.Diagnostics {
		if d.Code == inventory.CodeSourceUnavailable {
			up = 0
		}
	}
	c.sourceUp.Set(up)

	tree := res.Tree
	c.hosts.Set(float64(len(tree.Hosts())))
	c.hostVars.Set(float64(len(tree.HostVarsHosts())))

	groups := append([]string{inventory.AllGroup}, tree.Groups()...)
	c.groups.Set(float64(len(groups) - 1))
	for _, name := range groups {
		hosts, _ := tree.ResolveHosts(name)
		c.groupHosts.WithLabelValues(name).Set(float64(len(hosts)))
	}

	for _, d := range res.Diagnostics {
		c.diagnostics.WithLabelValues(d.Severity.String(), d.Code).Inc()
	}

	c.parseDuration.Set(took.Seconds())
	c.lastParse.Set(float64(at.UnixNano()) / float64(time.Second))
}

// WriteTextfile atomically writes the registry to path for node_exporter's
// textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
