// Package stations defines the station roster types shared by the parsers,
// the reconciler and the roster writer.
//
// A Record is one row of the authoritative NCEI station list. An Entry is one
// row of the generated location table, either read from the previous table or
// produced by a merge. Region header rows exist only in the text format: the
// parser resolves them into Entry.Region and the writer regenerates them.
package stations
