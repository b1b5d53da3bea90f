// Package treehash walks filesystem roots and reports a content digest for
// every regular file it reaches.
//
// The work is split into a pipeline:
//
//	roots -> Producer -> Queue -> Pool -> Sink
//
// A single Producer walks the roots with an explicit stack and puts the path
// of each regular file on a bounded Queue. A Pool of workers takes paths off
// the queue, streams each file through an incremental digest in fixed-size
// chunks and passes the Result to a Sink, which serialises output so lines
// from different workers never interleave.
//
// The queue provides backpressure: when it is full the producer blocks until
// a worker frees a slot, so memory stays bounded however fast traversal runs
// relative to hashing. When the walk is over the producer closes the queue;
// workers drain what is left and exit once they observe the queue closed and
// empty.
//
// Failures on individual entries (a stat or readdir error during the walk,
// an open or read error in a worker) are skipped and counted in Stats. Only a
// missing root list (ErrUsage) and invalid options (ErrConfig) abort a run.
// Result order across files is not defined. Text and cas lines quote a path
// that contains a line break, so every result stays on one line.
package treehash
