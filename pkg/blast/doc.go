/*
Package blast contains the DNS load generation engine. A load generation run
is described by the Blast struct and executed with Blast.Run. Run fans out the
configured number of workers, each driving its own UDP endpoint through a fixed
number of query/response cycles, and folds the status events reported by the
workers into aggregate Progress counters on the calling goroutine. Each
execution of Blast.Run additionally returns a slice of ResultStats, where each
element holds latency measurements of a single worker.
*/
package blast
