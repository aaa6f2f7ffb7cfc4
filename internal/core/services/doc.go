// Package services implements the driving port interfaces.
// Services contain the core business logic (roster parsing, the
// duplicate-and-share workflow, recursive folder copying) and orchestrate
// calls to driven ports (the Google connectors).
//
// Services are pure Go with no API client dependencies.
package services
