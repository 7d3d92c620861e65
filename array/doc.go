// Package array is a small N-dimensional array runtime for elementwise
// dispatch.
//
// It provides exactly what geovec's ufuncs need from a host array library:
//
//   - strided storage with views (Array, Layout), including zero-stride
//     broadcast views
//   - broadcasting of shapes with the usual trailing-dimension rules
//     (BroadcastShapes)
//   - generalized signatures such as "(i,d)->()" whose trailing core
//     dimensions are consumed per element instead of being broadcast
//     (Signature, Plan)
//   - an odometer iterator that yields per-operand storage offsets for every
//     loop position (Iter)
//
// Arrays are not safe for concurrent mutation.
package array
