// Package app wires the catalog client, the fetcher and the mirror service
// together and runs a single mirror pass for the root command.
package app
