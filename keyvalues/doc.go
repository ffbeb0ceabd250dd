// Package keyvalues reads and writes Valve's KeyValues text format, the
// format of Steam's libraryfolders.vdf and appmanifest_*.acf files.
//
// A document is a sequence of "key" "value" pairs and "key" { ... } blocks.
// Keys keep their case and their order, and fields the caller does not know
// about are kept in the tree untouched.
package keyvalues
