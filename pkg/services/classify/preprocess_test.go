package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Run("lowercases and strips punctuation", func(t *testing.T) {
		assert.Equal(t, "amazoncom 123", CleanText("Amazon.com*  123!"))
	})

	t.Run("fixes known typos per token", func(t *testing.T) {
		assert.Equal(t, "starbucks coffee", CleanText("Strbucks   COFEE"))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", CleanText("  ¡™£  "))
	})
}

func TestTokenize(t *testing.T) {
	t.Run("emits unigrams and bigrams", func(t *testing.T) {
		terms := Tokenize("uber ride downtown")
		assert.Equal(t, []string{"uber", "ride", "downtown", "uber_ride", "ride_downtown"}, terms)
	})

	t.Run("single word has no bigrams", func(t *testing.T) {
		assert.Equal(t, []string{"netflix"}, Tokenize("netflix"))
	})

	t.Run("empty text yields nil", func(t *testing.T) {
		assert.Nil(t, Tokenize(""))
	})
}
