/*
Package unarc provides types and functions to identify the format of an archive
file and stream its content into a normalized output file.

Gzip, bzip2 and xz streams are decompressed, zip archives are converted into tar
archives and tar archives are copied as is. The archive type is either given
explicitly (see ParseTypes) or detected by a Classifier, combining the output of
a content sniffer, file(1) by default, with filename heuristics.

Convert performs a single conversion. MainCLI wraps it into a command-line
interface, which is what the unarc command (cmd/unarc) runs.
*/
package unarc
