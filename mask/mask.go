package mask

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Errors returned by Parse, wrapped together with the offending
// input. Test with errors.Is.
var (
	// ErrFormat means the input does not match any recognized
	// notation, or violates the syntactic shape of the one it
	// matched (wrong group count, non-numeric token, wrong binary
	// length or character).
	ErrFormat = errors.New("unrecognized subnet mask format")

	// ErrRange means the input was syntactically valid but carried
	// an out-of-bounds number (prefix length outside 0-32, octet
	// outside 0-255).
	ErrRange = errors.New("value out of range")
)

const (
	maskBits     = 32
	bitsPerOctet = 8
	maxOctet     = 255
)

// Format identifies the notation a mask expression was detected as.
type Format int

const (
	CIDR   Format = iota // "/24"
	Octet                // "255.255.255.0"
	Binary               // "11111111.11111111.11111111.00000000"
)

func (f Format) String() string {
	switch f {
	case CIDR:
		return "cidr"
	case Octet:
		return "octet"
	case Binary:
		return "binary"
	}
	return "unknown"
}

// A Mask is a single IPv4 subnet mask parsed from any of the three
// supported notations, with all three renderings precomputed. Values
// are immutable after Parse and safe for concurrent reads.
//
// The dotted-decimal and CIDR renderings are always canonical
// (contiguous, left-aligned), computed from the number of one bits.
// Only the notation the input itself arrived in keeps its literal
// content: octet input round-trips its exact text, binary input keeps
// its bit pattern (re-dot-grouped) even when not left-aligned.
type Mask struct {
	format Format
	ones   int
	zeros  int
	cidr   string
	octet  string
	binary string
}

// Parse converts a subnet mask expression. The notation is detected
// with cheap positional heuristics: a leading '/' (or '\') marks a
// CIDR prefix, a leading '2' with a dot marks dotted-decimal, and a
// 32-character 0/1 string (dots ignored) marks binary.
func Parse(input string) (*Mask, error) {
	m := new(Mask)
	if err := m.parse(input); err != nil {
		return nil, fmt.Errorf("invalid subnet mask %q: %w", input, err)
	}
	return m, nil
}

// Reparse replaces the receiver with the parse of a new expression,
// allowing value reuse across conversions. On failure the receiver is
// left unchanged.
func (m *Mask) Reparse(input string) error {
	nm, err := Parse(input)
	if err != nil {
		return err
	}
	*m = *nm
	return nil
}

func (m *Mask) parse(input string) error {
	format, err := classify(input)
	if err != nil {
		return err
	}
	m.format = format

	switch format {
	case CIDR:
		return m.parseCIDR(input)
	case Octet:
		return m.parseOctet(input)
	default:
		return m.parseBinary(input)
	}
}

// classify decides which notation the input is in. First match wins;
// full validation is left to the per-format parser.
func classify(s string) (Format, error) {
	switch {
	case s != "" && (s[0] == '/' || s[0] == '\\') && len(s) <= 3:
		return CIDR, nil
	case s != "" && s[0] == '2' && strings.Contains(s, "."):
		// Valid dotted-decimal masks start with 255, 254, ... so
		// a leading '2' is enough to tell them apart from binary.
		return Octet, nil
	case isBinary(s):
		return Binary, nil
	}
	return 0, ErrFormat
}

func isBinary(s string) bool {
	s = strings.ReplaceAll(s, ".", "")
	if len(s) != maskBits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}

func (m *Mask) parseCIDR(s string) error {
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return fmt.Errorf("%w: prefix length is not a number", ErrFormat)
	}
	if n < 0 || n > maskBits {
		return fmt.Errorf("%w: prefix length must be 0-32", ErrRange)
	}

	m.ones = n
	m.zeros = maskBits - n
	m.cidr = "/" + strconv.Itoa(n)
	m.octet = buildOctet(m.ones)
	m.binary = dotGroup(buildBinary(m.ones))
	return nil
}

func (m *Mask) parseOctet(s string) error {
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return fmt.Errorf("%w: expected 4 octet groups, got %d", ErrFormat, len(groups))
	}

	// Count the one bits of each octet. There is deliberately no
	// contiguity check: 128.64.0.0-style masks are accepted and
	// bit-counted as-is.
	for _, g := range groups {
		v, err := strconv.Atoi(g)
		if err != nil {
			return fmt.Errorf("%w: octet %q is not a number", ErrFormat, g)
		}
		if v < 0 || v > maxOctet {
			return fmt.Errorf("%w: octet %d must be 0-255", ErrRange, v)
		}
		m.ones += bits.OnesCount8(uint8(v))
	}

	m.zeros = maskBits - m.ones
	m.cidr = "/" + strconv.Itoa(m.ones)
	m.binary = dotGroup(buildBinary(m.ones))
	// The input was already in octet notation, keep it verbatim.
	m.octet = s
	return nil
}

func (m *Mask) parseBinary(s string) error {
	s = strings.ReplaceAll(s, ".", "")
	if len(s) != maskBits {
		return fmt.Errorf("%w: binary mask must be 32 bits, got %d", ErrFormat, len(s))
	}

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			m.ones++
		case '0':
			m.zeros++
		default:
			return fmt.Errorf("%w: binary mask must contain only 0s and 1s", ErrFormat)
		}
	}

	m.cidr = "/" + strconv.Itoa(m.ones)
	m.octet = buildOctet(m.ones)
	// Keep the supplied bit pattern, canonicalize the dot grouping.
	m.binary = dotGroup(s)
	return nil
}

// Format returns the notation the input was detected as.
func (m *Mask) Format() Format { return m.format }

// Ones returns the number of set bits in the mask.
func (m *Mask) Ones() int { return m.ones }

// Zeros returns the number of clear bits in the mask.
func (m *Mask) Zeros() int { return m.zeros }

// CIDR returns the mask in CIDR prefix notation, e.g. "/24".
func (m *Mask) CIDR() string { return m.cidr }

// Octet returns the mask in dotted-decimal notation, e.g. "255.255.255.0".
func (m *Mask) Octet() string { return m.octet }

// Binary returns the mask in dotted binary notation,
// e.g. "11111111.11111111.11111111.00000000".
func (m *Mask) Binary() string { return m.binary }

func (m *Mask) String() string {
	return fmt.Sprintf("CIDR: %s | Octet: %s | Binary: %s", m.cidr, m.octet, m.binary)
}
