// Package processor contains the command line workflows of easynmt. It
// waits for the server, translates arguments and batch files through a
// shared translation client and preloads models. This package serves as
// the coordinator between the cli, batch and translation packages.
package processor
