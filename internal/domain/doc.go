// Package domain contains the core business entities of the review
// scheduler: learning items, quality grades, review events, and study
// sessions. It is independent of any specific infrastructure or delivery
// mechanism.
package domain
