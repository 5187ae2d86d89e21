// Package glcore describes the graphics context the memory engine runs
// against: the API family and version used for capability probing, the
// table of GL entry points the engine is allowed to touch, and the
// context-thread dispatcher that marshals work onto the single OS thread
// owning the GL state.
//
// glcore deliberately knows nothing about video geometry or the memory
// objects built on top of it. Production code fills the function table
// from a real GL binding (see funcs_gl.go, build tag "gl"); tests fill it
// from the in-memory fake in glcore/gltest.
package glcore
