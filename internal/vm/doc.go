// Package vm executes a parsed program directly. It follows the storage
// model of the generated Rust runtime exactly, so its output is the
// expected output of the translated program. The `run` command and the
// translator tests use it.
package vm
