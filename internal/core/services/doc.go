// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search orchestrator and hydration service each keep at most one
// task in flight. Results are delivered on a single event channel.
package services
