// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Interactive explorer, surface tangent plotting
// 0.2.0 - Metric tensors, volume element, consistency sweep
// 0.1.0 - Initial release: coordinate conversion, basis vectors, Gnuplot output
