package tagger

// POS is a coarse part-of-speech category.
type POS string

// Coarse tag inventory (Universal Dependencies categories).
const (
	ADJ   POS = "ADJ"   // adjective
	ADP   POS = "ADP"   // adposition
	ADV   POS = "ADV"   // adverb
	AUX   POS = "AUX"   // auxiliary
	CCONJ POS = "CCONJ" // coordinating conjunction
	DET   POS = "DET"   // determiner
	INTJ  POS = "INTJ"  // interjection
	NOUN  POS = "NOUN"  // noun
	NUM   POS = "NUM"   // numeral
	PART  POS = "PART"  // particle
	PRON  POS = "PRON"  // pronoun
	PROPN POS = "PROPN" // proper noun
	PUNCT POS = "PUNCT" // punctuation
	SCONJ POS = "SCONJ" // subordinating conjunction
	SYM   POS = "SYM"   // symbol
	VERB  POS = "VERB"  // verb
	X     POS = "X"     // other
)

// Inventory lists every coarse tag in a fixed order.
var Inventory = []POS{ADJ, ADP, ADV, AUX, CCONJ, DET, INTJ, NOUN, NUM, PART, PRON, PROPN, PUNCT, SCONJ, SYM, VERB, X}

// Valid reports whether p belongs to the inventory.
func (p POS) Valid() bool {
	for _, known := range Inventory {
		if p == known {
			return true
		}
	}
	return false
}

// penn maps Penn Treebank tags onto the coarse inventory.
var penn = map[string]POS{
	// punctuation
	".": PUNCT, ",": PUNCT, ":": PUNCT, "``": PUNCT, "''": PUNCT, `""`: PUNCT,
	"(": PUNCT, ")": PUNCT, "-LRB-": PUNCT, "-RRB-": PUNCT, "HYPH": PUNCT, "NFP": PUNCT,
	"$": SYM, "#": SYM, "SYM": SYM,

	"JJ": ADJ, "JJR": ADJ, "JJS": ADJ, "AFX": ADJ,
	"RB": ADV, "RBR": ADV, "RBS": ADV, "WRB": ADV,

	"NN": NOUN, "NNS": NOUN,
	"NNP": PROPN, "NNPS": PROPN,

	"VB": VERB, "VBD": VERB, "VBG": VERB, "VBN": VERB, "VBP": VERB, "VBZ": VERB,
	"MD": AUX,

	"PRP": PRON, "WP": PRON, "EX": PRON,
	"DT": DET, "PDT": DET, "WDT": DET, "PRP$": DET, "WP$": DET,

	"IN": ADP, "RP": ADP,
	"CC": CCONJ,
	"CD": NUM,
	"POS": PART, "TO": PART,
	"UH": INTJ,

	"FW": X, "LS": X, "ADD": X, "GW": X, "XX": X, "NIL": X,
}

// FromPenn converts a Penn Treebank tag to its coarse category. Unknown tags
// map to X.
func FromPenn(tag string) POS {
	if p, ok := penn[tag]; ok {
		return p
	}
	return X
}
