// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services depend only on ports. The one exception is IngestService.Watch,
// which uses fsnotify directly to follow an inbox directory.
package services
