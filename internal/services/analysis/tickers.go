package analysis

import "strings"

// Exchange suffixes recognized on a base symbol, in resolution preference
// order: primary market (bare symbol) first, then Canadian, Australian,
// London, then the NEO exchange for the configured exception set.
var exchangeSuffixes = []string{".TO", ".TSE", ".AX", ".L", ".NE"}

// hasExchangeSuffix reports whether the symbol already carries one of the
// recognized exchange suffixes.
func hasExchangeSuffix(symbol string) bool {
	upper := strings.ToUpper(symbol)
	for _, suffix := range exchangeSuffixes {
		if strings.HasSuffix(upper, suffix) {
			return true
		}
	}
	return false
}

// ExpandVariants produces the ordered, deduplicated list of ticker variants
// to attempt for a base symbol. The unmodified base symbol always comes
// first. Suffixes are only appended when the base symbol does not already
// end in a recognized suffix; the .NE variant is added only for symbols in
// the NEO-exchange exception set.
func ExpandVariants(symbol string, neoException bool) []string {
	variants := []string{symbol}
	if hasExchangeSuffix(symbol) {
		return variants
	}

	variants = append(variants,
		symbol+".TO",
		symbol+".TSE",
		symbol+".AX",
		symbol+".L",
	)
	if neoException {
		variants = append(variants, symbol+".NE")
	}
	return dedupe(variants)
}

// verificationVariants is the narrower variant list used by the
// cross-validation verifier: primary market, Canadian suffixes, and the
// NEO exception.
func verificationVariants(symbol string, neoException bool) []string {
	variants := []string{symbol}
	if hasExchangeSuffix(symbol) {
		return variants
	}

	variants = append(variants, symbol+".TO", symbol+".TSE")
	if neoException {
		variants = append(variants, symbol+".NE")
	}
	return dedupe(variants)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
