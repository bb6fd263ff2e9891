// Package fileutil provides the directory traversal used by the shifter.
//
// # Traversal order
//
// ScanFiles visits a directory tree depth-first. Within each directory the
// regular files are reported first, in lexical order, and only then are the
// subdirectories descended into, also in lexical order:
//
//	root/b.txt
//	root/c.txt
//	root/a/x.txt
//	root/a/deep/y.txt
//	root/z/w.txt
//
// # Symbolic links
//
// Symbolic links are never followed and never reported, whether they point
// to a file or to a directory. Devices, sockets and named pipes are skipped.
//
// # Errors
//
// Scanning is error tolerant: a directory that cannot be read is recorded in
// ScanResult.Errors and traversal continues with its siblings. Only a root
// that is missing or not a directory makes ScanFiles return an error.
package fileutil
