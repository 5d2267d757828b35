// Package filesystem abstracts file access behind the Provider interface
// so dataset loading and output writing can be tested without touching
// the real disk.
//
// Two implementations are provided:
//   - OSFileSystem: passes through to the operating system
//   - MemoryFileSystem: an in-memory store for tests, with declared-size
//     overrides and read counters for asserting quota behavior
package filesystem
