// Package mirror copies a user's albums from the catalog service onto local storage.
// A run first harvests the whole catalog into memory, then materializes it
// one album directory at a time, skipping files that already exist and
// publishing new ones atomically from a shared temporary file.
package mirror
