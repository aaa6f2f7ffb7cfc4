// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and the Google connectors
// implement them.
//
// # Required Interfaces
//
//   - FileManager: Drive file metadata, copying, folders and permissions
//   - DocumentEditor: answer stripping via the Docs API
//   - RosterSource: remote roster retrieval (Sheets export, CSV download)
//   - ConfigStore: persisted user configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
