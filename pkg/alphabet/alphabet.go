// 17 Oct 2026

// Package alphabet maps alignment characters onto the 27 slots used by
// all the probability tables. Slot 0 is the gap. Slots 1 to 26 are the
// letters A to Z, so that 'A' is 1 and 'Z' is 26. Anything that is not a
// letter, in either case, is a gap.
package alphabet

// NumChars is the number of slots, a gap and 26 letters.
const NumChars = 27

// Indices of the symbols which get special treatment. The ambiguity codes
// are B, J, X and Z. Their targets are the residues they might stand for.
const (
	Gap uint8 = 0
	A   uint8 = 1
	B   uint8 = 2 // D or N
	D   uint8 = 4
	E   uint8 = 5
	I   uint8 = 9
	J   uint8 = 10 // I or L
	L   uint8 = 12
	N   uint8 = 14
	O   uint8 = 15
	Q   uint8 = 17
	U   uint8 = 21
	X   uint8 = 24 // anything
	Z   uint8 = 26 // E or Q
)

// Twenty holds the slots of the twenty standard amino acids,
// A C D E F G H I K L M N P Q R S T V W Y.
var Twenty = [20]uint8{1, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13,
	14, 16, 17, 18, 19, 20, 22, 23, 25}

// Unambiguous is the gap, the standard twenty and O and U. These are the
// slots that are never redistributed.
var Unambiguous = [23]uint8{0, 1, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13, 14,
	15, 16, 17, 18, 19, 20, 21, 22, 23, 25}

// Ambiguous lists the ambiguity codes.
var Ambiguous = [4]uint8{B, J, X, Z}

var table [256]uint8

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		table[c] = uint8(c-'A') + 1
		table[c+'a'-'A'] = uint8(c-'A') + 1
	}
}

// Index returns the slot for byte c. It never fails. Bytes that are not
// letters go to the gap slot.
func Index(c byte) uint8 { return table[c] }

// IsLetter says whether c is an upper or lower case letter, which is what
// counts as an occupied position.
func IsLetter(c byte) bool { return table[c] != Gap }

// IsAmbiguous is true for B, J, X and Z.
func IsAmbiguous(i uint8) bool {
	return i == B || i == J || i == X || i == Z
}

// Letter is the reverse of Index, used for printing tables. The gap comes
// back as '-'.
func Letter(i uint8) byte {
	if i == Gap || i >= NumChars {
		return '-'
	}
	return 'A' + i - 1
}
