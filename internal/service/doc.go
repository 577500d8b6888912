// Package service contains the employee use cases. It runs each request
// through the domain pipeline (validation, merge, normalization) and persists
// the result through a store.EmployeeStore.
//
// The service depends on domain types and the store interface only, never on a
// concrete store. Store sentinels are translated into classified domain errors
// here so the API layer can render them without knowing about storage.
//
// The auth subpackage signs and verifies bearer tokens.
package service
