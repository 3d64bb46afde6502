package symbol

// names maps symbol names to device escapes. Function names are set in
// roman, as is the convention for mathematical text.
var names = map[string]string{
	">=": `\(>=`,
	"<=": `\(<=`,
	"==": `\(==`,
	"!=": `\(!=`,
	"+-": `\(+-`,
	"->": `\(->`,
	"<-": `\(<-`,

	"inf":      `\(if`,
	"infinity": `\(if`,
	"partial":  `\(pd`,
	"half":     `\fR\(12\fP`,
	"prime":    `\(fm`,
	"approx":   `~\b\d~\u`,
	"nothing":  ``,
	"cdot":     `\v'-.5'.\v'.5'`,
	"times":    `\|\(mu\|`,
	"del":      `\(gr`,
	"grad":     `\(gr`,

	"...":   `\v'-.3m'\|\|.\|\|.\|\|.\|\|\v'.3m'`,
	",...,": `,\|\|.\|\|.\|\|.\|\|,\|`,

	"alpha":   `\(*a`,
	"beta":    `\(*b`,
	"gamma":   `\(*g`,
	"delta":   `\(*d`,
	"epsilon": `\(*e`,
	"zeta":    `\(*z`,
	"eta":     `\(*y`,
	"theta":   `\(*h`,
	"iota":    `\(*i`,
	"kappa":   `\(*k`,
	"lambda":  `\(*l`,
	"mu":      `\(*m`,
	"nu":      `\(*n`,
	"xi":      `\(*c`,
	"omicron": `\(*o`,
	"pi":      `\(*p`,
	"rho":     `\(*r`,
	"sigma":   `\(*s`,
	"tau":     `\(*t`,
	"upsilon": `\(*u`,
	"phi":     `\(*f`,
	"chi":     `\(*x`,
	"psi":     `\(*q`,
	"omega":   `\(*w`,

	"GAMMA":   `\(*G`,
	"DELTA":   `\(*D`,
	"THETA":   `\(*H`,
	"LAMBDA":  `\(*L`,
	"XI":      `\(*C`,
	"PI":      `\(*P`,
	"SIGMA":   `\(*S`,
	"UPSILON": `\(*U`,
	"PHI":     `\(*F`,
	"PSI":     `\(*Q`,
	"OMEGA":   `\(*W`,

	"and": `\fRand\fP`,
	"for": `\fRfor\fP`,
	"if":  `\fRif\fP`,
	"Re":  `\fRRe\fP`,
	"Im":  `\fRIm\fP`,

	"sin": `\fRsin\fP`,
	"cos": `\fRcos\fP`,
	"tan": `\fRtan\fP`,
	"arc": `\fRarc\fP`,

	"sinh": `\fRsinh\fP`,
	"cosh": `\fRcosh\fP`,
	"tanh": `\fRtanh\fP`,
	"coth": `\fRcoth\fP`,

	"log": `\fRlog\fP`,
	"ln":  `\fRln\fP`,
	"exp": `\fRexp\fP`,

	"lim": `\fRlim\fP`,
	"max": `\fRmax\fP`,
	"min": `\fRmin\fP`,
	"det": `\fRdet\fP`,
}

// Lookup resolves a symbol name into its device escape.
func Lookup(name string) (string, bool) {
	s, ok := names[name]
	return s, ok
}

// Names returns all known symbol names, for diagnostics display.
func Names() map[string]string {
	m := make(map[string]string, len(names))
	for k, v := range names {
		m[k] = v
	}
	return m
}
