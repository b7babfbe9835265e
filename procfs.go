package region

import (
	"strconv"
	"strings"
)

// procfsSource walks a snapshot of /proc/self/maps, one line per region:
//
//	559576822000-559576827000 r-xp 00002000 00:1a 4586   /usr/bin/cat
type procfsSource struct {
	maps string
}

func (s *procfsSource) next() (Region, bool, error) {
	for s.maps != "" {
		var line string
		line, s.maps, _ = strings.Cut(s.maps, "\n")
		if line == "" {
			continue
		}

		r, err := parseProcfsLine(line)
		if err != nil {
			s.maps = ""
			return Region{}, false, err
		}
		return r, true, nil
	}
	return Region{}, false, nil
}

// parseProcfsLine parses the address range and permissions of one line of
// /proc/[pid]/maps. The remaining columns are ignored.
func parseProcfsLine(line string) (Region, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Region{}, &ProcfsInputError{Input: line, Reason: "missing fields"}
	}

	lowerHex, upperHex, ok := strings.Cut(fields[0], "-")
	if !ok {
		return Region{}, &ProcfsInputError{Input: line, Reason: "malformed address range"}
	}

	lower, err := strconv.ParseUint(lowerHex, 16, strconv.IntSize)
	if err != nil {
		return Region{}, &ProcfsInputError{Input: line, Reason: "malformed start address"}
	}
	upper, err := strconv.ParseUint(upperHex, 16, strconv.IntSize)
	if err != nil {
		return Region{}, &ProcfsInputError{Input: line, Reason: "malformed end address"}
	}
	if upper < lower {
		return Region{}, &ProcfsInputError{Input: line, Reason: "end address precedes start address"}
	}

	protection, shared, ok := parseProcfsFlags(fields[1])
	if !ok {
		return Region{}, &ProcfsInputError{Input: line, Reason: "malformed permissions"}
	}

	return Region{
		base:       uintptr(lower),
		size:       uintptr(upper - lower),
		protection: protection,
		shared:     shared,
	}, nil
}

// parseProcfsFlags parses a permission column such as "r-xp". The fourth
// character is 's' for shared mappings and 'p' for private ones.
func parseProcfsFlags(perms string) (Protection, bool, bool) {
	if len(perms) != 4 {
		return None, false, false
	}

	columns := [3]struct {
		set  byte
		prot Protection
	}{
		{'r', Read},
		{'w', Write},
		{'x', Execute},
	}

	p := None
	for i, c := range columns {
		switch perms[i] {
		case c.set:
			p |= c.prot
		case '-':
		default:
			return None, false, false
		}
	}

	switch perms[3] {
	case 's':
		return p, true, true
	case 'p':
		return p, false, true
	default:
		return None, false, false
	}
}
