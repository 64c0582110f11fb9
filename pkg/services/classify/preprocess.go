package classify

import "strings"

// typoFixes corrects merchant-name misspellings that show up constantly in
// quickly typed expense descriptions. Applied per token after cleaning.
var typoFixes = map[string]string{
	"strbucks":   "starbucks",
	"sttarbucks": "starbucks",
	"cofee":      "coffee",
	"amzn":       "amazon",
	"amzon":      "amazon",
	"electcity":  "electricity",
	"walmrt":     "walmart",
	"grocceries": "grocery",
}

// CleanText normalizes a description for training and prediction: lowercase,
// strip everything except letters, digits and spaces, collapse whitespace,
// then fix known typos token by token.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if fixed, ok := typoFixes[w]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// Tokenize produces unigram and bigram terms from cleaned text. Bigrams are
// joined with an underscore so they live in the same term space as unigrams.
func Tokenize(cleaned string) []string {
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(words)-1)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+"_"+words[i+1])
	}
	return terms
}
