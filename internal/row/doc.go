// Package row defines the fixed-width binary shape of a single rowdb record.
//
// A row has three fields laid out back to back:
//
//	offset  size  field
//	0       4     id (int32, little-endian)
//	4       33    username (max 32 bytes, zero padded)
//	37      256   email (max 255 bytes, zero padded)
//
// Every encoded row occupies exactly RowSize bytes. Each text slot reserves one
// byte more than the longest accepted value; that last byte holds the length of
// the value, which is left-aligned and zero padded in front of it.
//
// Decoding reads the recorded length, never a terminator, so values containing
// zero bytes (trailing ones included) round-trip unchanged. Text is stored and
// measured as raw bytes with no escaping.
package row
