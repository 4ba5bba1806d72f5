// Package processor applies the G-code ejection pipeline to files on disk.
//
// A Processor turns one input file into one output file next to nothing it
// read from: the input is never modified, and the output is only written
// after every step of the pipeline has succeeded. Batches are processed
// strictly one file at a time; a failing file is reported and the batch
// moves on.
package processor
