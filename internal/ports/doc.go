// Package ports defines interfaces between layers in the hexagonal
// architecture. Service ports are implemented by the application layer and
// called by inbound adapters (HTTP handlers, the UI shell, tool adapters).
// Repository ports are implemented by storage adapters and called by the
// application layer. The UIContext port is implemented by the UI toolkit
// adapter and consumed by the signal bridge.
package ports
