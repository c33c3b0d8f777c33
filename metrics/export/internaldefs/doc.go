// Package internaldefs exposes stable metric name definitions shared by
// exporter implementations.
//
// Counter and histogram definitions live here so that the Prometheus and OTel
// exporters emit identical metric names and bucket boundaries. Changes here
// affect all exporters simultaneously.
package internaldefs
