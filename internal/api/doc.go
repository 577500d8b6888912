// Package api handles incoming HTTP requests for employee records and token
// issuance. Handlers decode and shape request bodies, call the application
// services, and render responses; every failure is rendered through
// shared.HandleAPIError.
package api
