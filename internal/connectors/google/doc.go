// Package google provides shared infrastructure for the Google API
// connectors.
//
// This package contains common utilities used by the drive, docs, and
// sheets connectors including:
//   - Service factories for creating authenticated Google API clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
// Each connector uses this package to create authenticated API clients:
//
//	svc, err := google.NewDriveService(ctx, tokenSource)
//
// # OAuth2 Scopes
//
// Handout uses these scopes:
//   - https://www.googleapis.com/auth/drive (restricted)
//   - https://www.googleapis.com/auth/documents (sensitive)
//   - https://www.googleapis.com/auth/spreadsheets.readonly (sensitive)
//
// The full drive scope is needed because duplicates are created, moved
// and shared on the user's behalf.
package google
