// Package service runs long-lived host subsystems in dependency order
package service

// Service is a host subsystem driven by a Hub: Init once, Start, then Stop on shutdown
type Service interface {
	// Name keys the service in the hub and in Dependencies lists
	Name() string

	// Dependencies names services that must init and start first
	Dependencies() []string

	Init() error
	Start() error

	// Stop may be called on a service that never started and must tolerate repeats
	Stop() error
}
