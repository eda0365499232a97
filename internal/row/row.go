package row

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
)

// Field sizes and offsets of the encoded row.
const (
	MaxUsernameLength = 32
	MaxEmailLength    = 255

	IDSize           = 4
	UsernameCapacity = MaxUsernameLength + 1
	EmailCapacity    = MaxEmailLength + 1

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameCapacity

	RowSize = IDSize + UsernameCapacity + EmailCapacity
)

var (
	// ErrStringTooLong is returned when username or email exceeds its maximum length.
	ErrStringTooLong = errors.New("string is too long")

	// ErrShortBuffer is returned when a buffer cannot hold RowSize bytes.
	ErrShortBuffer = errors.New("buffer shorter than row size")

	// ErrCorruptRow is returned when a text slot records a length beyond its maximum.
	ErrCorruptRow = errors.New("corrupt row")
)

// Row is one logical record.
type Row struct {
	ID       int32
	Username string
	Email    string
}

// New builds a validated Row.
func New(id int32, username, email string) (Row, error) {
	r := Row{ID: id, Username: username, Email: email}
	if err := Validate(r); err != nil {
		return Row{}, err
	}
	return r, nil
}

// Validate checks the text fields against their maximum lengths.
// Lengths are raw byte counts.
func Validate(r Row) error {
	if len(r.Username) > MaxUsernameLength {
		return fmt.Errorf("username is %d bytes, max %d: %w", len(r.Username), MaxUsernameLength, ErrStringTooLong)
	}
	if len(r.Email) > MaxEmailLength {
		return fmt.Errorf("email is %d bytes, max %d: %w", len(r.Email), MaxEmailLength, ErrStringTooLong)
	}
	return nil
}

// Encode writes r into the first RowSize bytes of dst.
// Unused bytes of each text slot are zeroed so the block is deterministic, and
// the last byte of the slot holds the value's length.
func Encode(r Row, dst []byte) error {
	if err := Validate(r); err != nil {
		return err
	}
	if len(dst) < RowSize {
		return fmt.Errorf("encode: %d bytes: %w", len(dst), ErrShortBuffer)
	}

	binary.LittleEndian.PutUint32(dst[IDOffset:UsernameOffset], uint32(r.ID))
	putText(dst[UsernameOffset:EmailOffset], r.Username, MaxUsernameLength)
	putText(dst[EmailOffset:RowSize], r.Email, MaxEmailLength)
	return nil
}

// Marshal returns a freshly allocated RowSize block holding r.
func Marshal(r Row) ([]byte, error) {
	buf := make([]byte, RowSize)
	if err := Encode(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Decode reads a row from the first RowSize bytes of src.
func Decode(src []byte) (Row, error) {
	if len(src) < RowSize {
		return Row{}, fmt.Errorf("decode: %d bytes: %w", len(src), ErrShortBuffer)
	}

	username, err := getText(src[UsernameOffset:EmailOffset], MaxUsernameLength)
	if err != nil {
		return Row{}, fmt.Errorf("decode username: %w", err)
	}
	email, err := getText(src[EmailOffset:RowSize], MaxEmailLength)
	if err != nil {
		return Row{}, fmt.Errorf("decode email: %w", err)
	}

	return Row{
		ID:       int32(binary.LittleEndian.Uint32(src[IDOffset:UsernameOffset])),
		Username: username,
		Email:    email,
	}, nil
}

// String renders the row the way select prints it.
func (r Row) String() string {
	return strconv.FormatInt(int64(r.ID), 10) + ", " + r.Username + ", " + r.Email
}

// putText writes s zero padded and records len(s) in slot[limit].
// limit is at most 255, so the length always fits in that byte.
func putText(slot []byte, s string, limit int) {
	n := copy(slot[:limit], s)
	clear(slot[n:])
	slot[limit] = byte(n)
}

// getText returns the slot[limit]-byte prefix of slot. Zero bytes, trailing ones
// included, are part of the value.
func getText(slot []byte, limit int) (string, error) {
	n := int(slot[limit])
	if n > limit {
		return "", fmt.Errorf("length %d, max %d: %w", n, limit, ErrCorruptRow)
	}
	return string(slot[:n]), nil
}
