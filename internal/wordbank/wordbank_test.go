package wordbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickWordFromCategory(t *testing.T) {
	bank := NewBank()

	words, err := bank.Words("food")
	require.NoError(t, err)
	require.NotEmpty(t, words)

	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}

	for i := 0; i < 50; i++ {
		assert.True(t, set[bank.PickWord("food")], "選出的單字必須屬於指定分類")
	}
}

func TestPickWordAnyCategory(t *testing.T) {
	bank := NewBank()
	for i := 0; i < 50; i++ {
		assert.NotEmpty(t, bank.PickWord(""))
	}
}

func TestPickWordUnknownCategoryFallsBack(t *testing.T) {
	bank := NewBank()
	assert.NotEmpty(t, bank.PickWord("no-such-category"))
}

func TestCategories(t *testing.T) {
	bank := NewBank()
	categories := bank.Categories()
	assert.GreaterOrEqual(t, len(categories), 4)
	assert.Contains(t, categories, "animals")
	assert.Contains(t, categories, "food")
}

func TestAddCategoryAndWord(t *testing.T) {
	bank := NewBank()

	require.NoError(t, bank.AddCategory("sports"))
	assert.ErrorIs(t, bank.AddCategory("sports"), ErrCategoryExists)

	require.NoError(t, bank.AddWord("sports", "  Tennis "))
	words, err := bank.Words("sports")
	require.NoError(t, err)
	assert.Equal(t, []string{"tennis"}, words)

	// 重複加入同一個單字視為成功，不會產生重複
	require.NoError(t, bank.AddWord("sports", "tennis"))
	words, _ = bank.Words("sports")
	assert.Len(t, words, 1)
}

func TestAddWordValidation(t *testing.T) {
	bank := NewBank()
	assert.ErrorIs(t, bank.AddWord("food", "x"), ErrInvalidWord)
	assert.ErrorIs(t, bank.AddWord("missing", "pizza"), ErrCategoryNotFound)
}

func TestPromptVariations(t *testing.T) {
	variations := PromptVariations("pizza")
	require.Len(t, variations, 3)
	for _, v := range variations {
		assert.Contains(t, v, "pizza")
	}
}
