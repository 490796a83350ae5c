/*
Package ports defines the driven ports (interfaces) of the arbor editor.

These interfaces decouple the editing commands from where workspace documents
live, so the same command runs against local files, memory or Redis.

# Key Interfaces

  - DocumentStore: loads and saves workspace documents by key.
  - DistributedLocker: serializes edits of one document across processes.
*/
package ports
