package parser

// registerAliases maps the conventional MIPS register names to their
// numeric index. Resolution is exact case-sensitive match.
var registerAliases = map[string]int{
	"zero": 0,
	"at":   1,
	"v0":   2,
	"v1":   3,
	"a0":   4,
	"a1":   5,
	"a2":   6,
	"a3":   7,
	"t0":   8,
	"t1":   9,
	"t2":   10,
	"t3":   11,
	"t4":   12,
	"t5":   13,
	"t6":   14,
	"t7":   15,
	"s0":   16,
	"s1":   17,
	"s2":   18,
	"s3":   19,
	"s4":   20,
	"s5":   21,
	"s6":   22,
	"s7":   23,
	"t8":   24,
	"t9":   25,
	"k0":   26,
	"k1":   27,
	"gp":   28,
	"sp":   29,
	"fp":   30,
	"ra":   31,
}

// ResolveGPR resolves a general-purpose register name (alias or decimal
// index "0".."31") to its numeric index. ok is false for "pc"/"hi"/"lo" or
// an unrecognized name.
func ResolveGPR(name string) (int, bool) {
	if idx, ok := registerAliases[name]; ok {
		return idx, true
	}
	if idx, ok := parseDecimalIndex(name); ok && idx >= 0 && idx <= 31 {
		return idx, true
	}
	return 0, false
}

// IsSpecialRegister reports whether name refers to pc, hi, or lo rather
// than one of the 32 general-purpose registers.
func IsSpecialRegister(name string) bool {
	return name == "pc" || name == "hi" || name == "lo"
}

func parseDecimalIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
