package ml

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	clsToken = "[CLS]"
	sepToken = "[SEP]"
	unkToken = "[UNK]"
	padToken = "[PAD]"

	maxCharsPerWord = 100

	inputIDsName      = "input_ids"
	attentionMaskName = "attention_mask"
	tokenTypeIDsName  = "token_type_ids"
)

// Tokenizer is an uncased BERT WordPiece tokenizer.
type Tokenizer struct {
	vocab map[string]int64
	cls   int64
	sep   int64
	unk   int64
	pad   int64
}

// Encoding holds the model inputs produced for one sequence.
type Encoding struct {
	InputIDs      []int64
	AttentionMask []int64
	TokenTypeIDs  []int64
}

// Features exposes the encoding under the tensor names BERT exports use.
func (e Encoding) Features() map[string][]int64 {
	return map[string][]int64{
		inputIDsName:      e.InputIDs,
		attentionMaskName: e.AttentionMask,
		tokenTypeIDsName:  e.TokenTypeIDs,
	}
}

// LoadTokenizer reads a vocab.txt file (one token per line, id = line number).
func LoadTokenizer(path string) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	sc := bufio.NewScanner(f)
	var id int64
	for sc.Scan() {
		token := strings.TrimRight(sc.Text(), "\r")
		if _, dup := vocab[token]; !dup {
			vocab[token] = id
		}
		id++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}
	return NewTokenizer(vocab)
}

// NewTokenizer builds a tokenizer from an in-memory vocabulary.
func NewTokenizer(vocab map[string]int64) (*Tokenizer, error) {
	t := &Tokenizer{vocab: vocab}
	for _, special := range []struct {
		token string
		dst   *int64
	}{
		{clsToken, &t.cls},
		{sepToken, &t.sep},
		{unkToken, &t.unk},
		{padToken, &t.pad},
	} {
		id, ok := vocab[special.token]
		if !ok {
			return nil, fmt.Errorf("vocab is missing %s", special.token)
		}
		*special.dst = id
	}
	return t, nil
}

// Encode tokenizes text as a single sequence, truncated and padded to maxLen
// including the [CLS] and [SEP] markers.
func (t *Tokenizer) Encode(text string, maxLen int) Encoding {
	if maxLen < 2 {
		maxLen = 2
	}

	pieces := t.wordPieces(text)
	if len(pieces) > maxLen-2 {
		pieces = pieces[:maxLen-2]
	}

	ids := make([]int64, 0, maxLen)
	ids = append(ids, t.cls)
	ids = append(ids, pieces...)
	ids = append(ids, t.sep)

	enc := Encoding{
		InputIDs:      make([]int64, maxLen),
		AttentionMask: make([]int64, maxLen),
		TokenTypeIDs:  make([]int64, maxLen),
	}
	for i := range enc.InputIDs {
		if i < len(ids) {
			enc.InputIDs[i] = ids[i]
			enc.AttentionMask[i] = 1
			continue
		}
		enc.InputIDs[i] = t.pad
	}
	return enc
}

func (t *Tokenizer) wordPieces(text string) []int64 {
	var ids []int64
	for _, word := range basicTokenize(text) {
		ids = append(ids, t.wordPiece(word)...)
	}
	return ids
}

// wordPiece applies greedy longest-match-first segmentation to one word.
func (t *Tokenizer) wordPiece(word string) []int64 {
	chars := []rune(word)
	if len(chars) > maxCharsPerWord {
		return []int64{t.unk}
	}

	var ids []int64
	for start := 0; start < len(chars); {
		end := len(chars)
		found := int64(-1)
		for ; end > start; end-- {
			piece := string(chars[start:end])
			if start > 0 {
				piece = "##" + piece
			}
			if id, ok := t.vocab[piece]; ok {
				found = id
				break
			}
		}
		if found < 0 {
			return []int64{t.unk}
		}
		ids = append(ids, found)
		start = end
	}
	return ids
}

// basicTokenize cleans, lower-cases, strips accents and splits on whitespace
// and punctuation. CJK ideographs become single-character words.
func basicTokenize(text string) []string {
	var cleaned strings.Builder
	for _, r := range text {
		switch {
		case r == 0 || r == unicode.ReplacementChar || isControl(r):
			continue
		case isWhitespace(r):
			cleaned.WriteRune(' ')
		case isCJK(r):
			cleaned.WriteRune(' ')
			cleaned.WriteRune(r)
			cleaned.WriteRune(' ')
		default:
			cleaned.WriteRune(r)
		}
	}

	lowered := strings.ToLower(cleaned.String())
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if stripped, _, err := transform.String(stripAccents, lowered); err == nil {
		lowered = stripped
	}

	var words []string
	for _, field := range strings.Fields(lowered) {
		words = append(words, splitPunctuation(field)...)
	}
	return words
}

func splitPunctuation(word string) []string {
	var (
		out     []string
		current []rune
	)
	for _, r := range word {
		if isPunctuation(r) {
			if len(current) > 0 {
				out = append(out, string(current))
				current = current[:0]
			}
			out = append(out, string(r))
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.In(r, unicode.Cc, unicode.Cf)
}

func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}
