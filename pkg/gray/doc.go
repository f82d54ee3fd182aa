// Package gray generates reflected binary (Gray) code tables.
//
// # Overview
//
// A Gray code orders the 2^n binary words of width n so that neighbouring
// words differ in exactly one bit. The sequence is cyclic: the last word
// also differs from the first in a single bit. On an encoder disk this
// means a sensor straddling two adjacent angular positions can only ever
// misread one bit.
//
// [Generate] builds the table with the reflect-and-prefix construction:
//
//	n=1   0 1
//	n=2   00 01 | 11 10
//	n=3   000 001 011 010 | 110 111 101 100
//
// Each step appends the current rows in reverse order, then prefixes the
// original half with 0 and the mirrored half with 1. Column 0 of the result
// is the most significant (slowest changing) bit.
//
// # Decoding
//
// [Encode] and [Decode] convert between an angular position index and its
// code word without materializing a table; [Table.Position] does the same
// lookup against a generated table and is what a sensor reader uses.
package gray
