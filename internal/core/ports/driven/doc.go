// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Renderer: decodes source documents, reports page counts and sizes,
//     and rasterises preview surfaces.
//   - Authoring: builds the output document from pages of the sources.
//   - ConfigStore: application configuration.
//
// Every call that may block or do real work takes a context.Context.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
