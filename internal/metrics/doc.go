// Package metrics provides conservation and stability measures that plug
// into a system as orrery.Metric values.
package metrics
