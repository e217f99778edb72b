// Package workspace prepares the GOPATH overlay the external toolchain
// resolves imports against: a hidden .gopath directory in the project root
// with src/, pkg/ and bin/ beneath it, a symbolic link exposing the project
// at its logical import path under src/, and the vendored dependency tree.
//
// Every ensure-operation is idempotent within a process run: creations are
// existence-checked and memoized, so repeated calls return the same paths
// without duplicating filesystem writes or subprocess invocations. The
// overlay itself is durable but re-derivable; deleting it entirely and
// re-running is always safe.
package workspace
