// Package etl loads catalog and activity files into the star schema.
//
// Each file is processed inside its own transaction by a FileProcessor
// chosen by file category. Every statement runs under a savepoint: a
// failing statement is rolled back on its own, logged and counted, and the
// rest of the file still commits. A file that cannot be parsed is rolled
// back as a whole and reported as failed. The Driver runs phases in the
// order given; services.LoadService always passes catalog before activity
// so that plays can be resolved against songs loaded in the same run.
package etl
