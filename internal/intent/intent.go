// Package intent turns a free-text chat message into a session request:
// which kind of session the user wants and on which topic.
package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the session type a message asks for.
type Kind string

const (
	KindQuiz      Kind = "quiz"
	KindInterview Kind = "interview"
	KindUnknown   Kind = "unknown"
)

// DefaultTopic is used when no topic word survives stopword removal.
const DefaultTopic = "General tech"

// Intent is the parsed form of a message.
type Intent struct {
	Kind  Kind
	Topic string
}

// stopwords are dropped before picking the topic. Portuguese and English
// phrasings are both accepted.
var stopwords = map[string]struct{}{
	"quero": {}, "um": {}, "uma": {}, "quiz": {}, "sobre": {}, "de": {}, "do": {}, "da": {},
	"em": {}, "para": {}, "plano": {}, "entrevista": {}, "teste": {}, "gerar": {},
	"criar": {}, "fazer": {}, "agora": {}, "rápido": {},
	"i": {}, "want": {}, "a": {}, "an": {}, "about": {}, "on": {}, "for": {},
	"interview": {}, "test": {}, "give": {}, "me": {}, "please": {}, "make": {}, "start": {},
}

var punctuation = strings.NewReplacer("?", "", "!", "", ".", "")

// Parse extracts the kind and topic from text. The topic is the last
// non-stopword; words longer than three letters are capitalized and
// shorter ones are treated as acronyms and upper-cased.
func Parse(text string) Intent {
	clean := punctuation.Replace(strings.ToLower(text))

	topic := DefaultTopic
	words := strings.Fields(clean)
	for i := len(words) - 1; i >= 0; i-- {
		if _, stop := stopwords[words[i]]; !stop {
			topic = formatTopic(words[i])
			break
		}
	}

	return Intent{Kind: kindOf(clean), Topic: topic}
}

func kindOf(clean string) Kind {
	switch {
	case strings.Contains(clean, "quiz") || strings.Contains(clean, "plano"):
		return KindQuiz
	case strings.Contains(clean, "entrevista") || strings.Contains(clean, "interview"):
		return KindInterview
	}
	return KindUnknown
}

func formatTopic(word string) string {
	if utf8.RuneCountInString(word) <= 3 {
		return strings.ToUpper(word)
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + word[size:]
}
