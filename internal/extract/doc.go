// SPDX-License-Identifier: MPL-2.0

// Package extract implements random-access tail extraction over seekable
// inputs: byte seeking from either end of a stream, and a two-pass line
// seeker that counts the lines of a stream, rewinds it, and re-reads it
// skipping the leading lines.
//
// Both extractors decode leniently. Malformed UTF-8 in byte mode is replaced
// with U+FFFD; a malformed line in line mode is emitted as an empty line
// (InvalidLineBlank) or with U+FFFD substitutions (InvalidLineReplace).
// Neither mode fails on bad encoding.
package extract
