// Package rtconfig holds the runtime constants that code generators pair
// with a preprocessed definition: the object header bit fields and the
// layout ids reserved for hooked collection and value categories.
//
// Constants are described by an embedded CUE schema carrying defaults.
// A user file may override any field; the result is unified with the
// schema, validated as concrete and decoded into Config.
package rtconfig
