// Package app contains the core application logic. It defines the App
// struct, its configuration and the commands it runs, decoupled from any
// specific entrypoint like a CLI.
//
// An App loads parameter declarations once, resolves them into a registry
// and then runs a single command against that registry, the path codec and
// the result store.
package app
