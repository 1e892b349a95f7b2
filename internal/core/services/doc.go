// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The page collection is owned by CollectionService. PreviewService and
// ExportService read it and never mutate it. No service locks: shells
// serialize every call that mutates the collection.
package services
