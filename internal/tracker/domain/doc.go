// Package domain defines the work-tracking entities, their enumerated
// states, partial-update patch types, and the error taxonomy shared by the
// application services and the storage layer.
//
// Entities reference each other by id only; the ownership hierarchy
// (Organization → Project → Board → Sprint/Issue → TimeLog/Note) is
// expressed in the store, never as embedded object graphs.
package domain
