// Package wordbank 提供猜畫遊戲的分類題庫。
//
// 題庫常駐記憶體，選詞為均勻隨機；管理員可在執行期間新增分類與單字，
// 因此讀寫都以鎖保護。選詞本身沒有失敗模式：題庫保證永不為空。
package wordbank

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

var (
	ErrCategoryNotFound = errors.New("找不到該分類")
	ErrCategoryExists   = errors.New("分類已存在")
	ErrInvalidWord      = errors.New("單字至少需要 2 個字元")
)

// Bank 是一組分類題庫
type Bank struct {
	mu         sync.RWMutex
	categories map[string][]string
	order      []string // 分類的固定順序，讓列表輸出穩定
}

// NewBank 以預設題庫建立 Bank
func NewBank() *Bank {
	b := &Bank{categories: make(map[string][]string)}
	for _, c := range defaultCategories {
		b.categories[c.name] = append([]string(nil), c.words...)
		b.order = append(b.order, c.name)
	}
	return b
}

// PickWord 從指定分類均勻隨機選出一個單字；category 為空時從全部單字中選
func (b *Bank) PickWord(category string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if category != "" {
		if words, ok := b.categories[category]; ok && len(words) > 0 {
			return words[rand.Intn(len(words))]
		}
	}

	total := 0
	for _, words := range b.categories {
		total += len(words)
	}
	n := rand.Intn(total)
	for _, name := range b.order {
		words := b.categories[name]
		if n < len(words) {
			return words[n]
		}
		n -= len(words)
	}
	// 不可能走到這裡：題庫永不為空
	return ""
}

// Categories 回傳所有分類名稱
func (b *Bank) Categories() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.order...)
}

// Words 回傳指定分類的所有單字
func (b *Bank) Words(category string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	words, ok := b.categories[category]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return append([]string(nil), words...), nil
}

// AddCategory 新增一個空白分類
func (b *Bank) AddCategory(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ErrCategoryNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.categories[name]; ok {
		return ErrCategoryExists
	}
	b.categories[name] = []string{}
	b.order = append(b.order, name)
	return nil
}

// AddWord 將單字加入指定分類
func (b *Bank) AddWord(category, word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) < 2 {
		return ErrInvalidWord
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	words, ok := b.categories[category]
	if !ok {
		return ErrCategoryNotFound
	}
	for _, w := range words {
		if w == word {
			return nil // 已存在視為成功
		}
	}
	b.categories[category] = append(words, word)
	return nil
}

// PromptVariations 回傳同一個單字的三種提示語變化，
// 單人模式每次嘗試輪流使用一種，讓同一謎底產出不同風格的圖
func PromptVariations(word string) []string {
	return []string{
		fmt.Sprintf("A simple, clear illustration of %s in a minimalist style.", word),
		fmt.Sprintf("A cartoon-style drawing of %s with bold outlines.", word),
		fmt.Sprintf("A basic, easy-to-recognize %s in digital art style.", word),
	}
}

type category struct {
	name  string
	words []string
}

var defaultCategories = []category{
	{"animals", []string{
		"dog", "cat", "elephant", "giraffe", "lion", "tiger", "penguin", "kangaroo", "dolphin", "octopus",
		"butterfly", "spider", "monkey", "zebra", "panda", "koala", "rhinoceros", "owl", "eagle", "snake",
	}},
	{"objects", []string{
		"chair", "table", "lamp", "computer", "phone", "book", "pencil", "clock", "umbrella", "glasses",
		"camera", "television", "bicycle", "car", "airplane", "train", "boat", "key", "door", "window",
	}},
	{"nature", []string{
		"tree", "flower", "mountain", "sun", "moon", "star", "cloud", "river", "ocean", "beach",
		"volcano", "island", "forest", "rainbow", "waterfall", "desert", "cave", "garden", "lake", "storm",
	}},
	{"food", []string{
		"pizza", "hamburger", "sandwich", "apple", "banana", "orange", "carrot", "cake", "ice cream", "cookie",
		"sushi", "pasta", "bread", "egg", "cheese", "coffee", "milk", "chocolate", "popcorn", "candy",
	}},
	{"activities", []string{
		"running", "swimming", "dancing", "singing", "reading", "writing", "painting", "cooking", "sleeping", "jumping",
		"skiing", "surfing", "fishing", "camping", "hiking", "skating", "playing", "climbing", "driving", "flying",
	}},
}
