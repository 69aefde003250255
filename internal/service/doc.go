// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features.
//
// The item service here owns learning item content operations. The review and
// study subpackages own the scheduling-facing use cases: submitting reviews,
// fetching the next due item, postponing a review, and assembling study
// sessions. Services receive dependencies through constructor injection and
// apply transactional boundaries when an operation spans multiple writes.
//
// Services translate store-level errors to application-level sentinel errors
// and wrap unexpected failures in service-specific error types, so the API
// layer can map conditions to HTTP status codes with errors.Is/errors.As.
package service
