// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Moon rise/set scan, parallactic angle, observer height correction
// 0.2.0 - Sky view, custom day phases, YAML site configuration
// 0.1.0 - Initial release: sun/moon positions, day-phase table, headless modes
