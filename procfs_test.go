package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProcfsLine(t *testing.T) {
	tests := []struct {
		line       string
		base, size uint64
		protection Protection
		shared     bool
	}{
		{"00400000-00409000 r-xs 00000000 08:00 16088 /usr/bin/head", 0x400000, 0x9000, ReadExecute, true},
		{"00400000-00409000 ---p 00000000 08:00 16088", 0x400000, 0x9000, None, false},
		{"7ffd5ff2e000-7ffd5ff4f000 rw-p 00000000 00:00 0                          [stack]", 0x7ffd5ff2e000, 0x21000, ReadWrite, false},
		{"ffffffffff600000-ffffffffff601000 --xp 00000000 00:00 0   [vsyscall]", 0xffffffffff600000, 0x1000, Execute, false},
		{"00001000-00001000 rwxs 00000000 00:00 0", 0x1000, 0, ReadWriteExecute, true},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			if tc.base > uint64(^uintptr(0)) {
				t.Skip("address does not fit in 32 bits")
			}

			assert := assert.New(t)

			r, err := parseProcfsLine(tc.line)
			require.NoError(t, err)
			assert.Equal(tc.base, uint64(r.Base()))
			assert.Equal(tc.size, uint64(r.Len()))
			assert.Equal(tc.protection, r.Protection())
			assert.Equal(tc.shared, r.IsShared())
			assert.False(r.IsGuarded())
			assert.True(r.IsCommitted())
		})
	}
}

func TestParseProcfsLine_Malformed(t *testing.T) {
	tests := map[string]string{
		"":                             "missing fields",
		"00400000-00409000":            "missing fields",
		"00400000+00409000 r-xp":       "malformed address range",
		"zz400000-00409000 r-xp":       "malformed start address",
		"00400000-0040900g r-xp":       "malformed end address",
		"00409000-00400000 r-xp":       "end address precedes start address",
		"00400000-00409000 r-x":        "malformed permissions",
		"00400000-00409000 rxwp":       "malformed permissions",
		"00400000-00409000 r-xq":       "malformed permissions",
		"00400000-00409000 R-xp 0 0 0": "malformed permissions",
	}

	for line, reason := range tests {
		t.Run(reason, func(t *testing.T) {
			_, err := parseProcfsLine(line)

			var pie *ProcfsInputError
			require.ErrorAs(t, err, &pie)
			assert.Equal(t, reason, pie.Reason)
			assert.Equal(t, line, pie.Input)
		})
	}
}

func TestProcfsSource(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s := &procfsSource{maps: "00400000-00409000 r-xp 0 0 0 /bin/a\n\n00409000-0040a000 rw-p 0 0 0 /bin/a\n"}

	r, ok, err := s.next()
	require.NoError(err)
	require.True(ok)
	assert.Equal(uintptr(0x400000), r.Base())

	r, ok, err = s.next()
	require.NoError(err)
	require.True(ok)
	assert.Equal(uintptr(0x409000), r.Base())
	assert.Equal(ReadWrite, r.Protection())

	_, ok, err = s.next()
	assert.NoError(err)
	assert.False(ok)
}

func TestProcfsSource_StopsAtError(t *testing.T) {
	s := &procfsSource{maps: "garbage\n00400000-00409000 r-xp 0 0 0\n"}

	_, _, err := s.next()
	assert.Error(t, err)

	_, ok, err := s.next()
	assert.NoError(t, err)
	assert.False(t, ok)
}
