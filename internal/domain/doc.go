// Package domain contains the employee record, the request projections that
// create and modify it, and the rules that govern them: field normalization,
// partial-update merging, validation, name search and the error kinds every
// layer above uses to report failures.
package domain
