// Package files groups input discovery for the loader.
//
//   - filesystem: OS and in-memory file trees behind one interface
//   - scanner: recursive discovery of *.json data files in lexical order
package files
