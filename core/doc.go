// Package core contains canonical awards domain contracts, entities, and
// orchestration logic. Lower-level storage and transport adapters must
// depend on this package; core must not depend on them.
package core
