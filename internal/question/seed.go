package question

// SeedEntry pairs a seed item with its card.
type SeedEntry struct {
	Item Item
	Card Card
}

// Seed returns the built-in starter bank. It is used when the database is
// empty and as the fallback pool when no generator is configured.
func Seed() []SeedEntry {
	return []SeedEntry{
		{
			Item: Item{ID: 101, Topic: "python", Difficulty: DifficultyEasy, Format: FormatMultipleChoice, Category: CategoryVocab},
			Card: Card{Prompt: "Which keyword defines a function in Python?", Answer: "def", CorrectFeedback: "Correct!", IncorrectFeedback: "Wrong. It is 'def'."},
		},
		{
			Item: Item{ID: 102, Topic: "python", Difficulty: DifficultyMedium, Format: FormatMultipleChoice, Category: CategoryVocab},
			Card: Card{Prompt: "Are Python lists mutable or immutable?", Answer: "mutable", CorrectFeedback: "Right!", IncorrectFeedback: "Wrong."},
		},
		{
			Item: Item{ID: 103, Topic: "python", Difficulty: DifficultyHard, Format: FormatMultipleChoice, Category: CategoryVocab},
			Card: Card{Prompt: "What is the GIL?", Answer: "global interpreter lock", CorrectFeedback: "Exactly!", IncorrectFeedback: "Global Interpreter Lock."},
		},
		{
			Item: Item{ID: 104, Topic: "python", Difficulty: DifficultyMedium, Format: FormatTrueFalse, Category: CategoryVocab},
			Card: Card{Prompt: "Is Python statically compiled? (yes/no)", Answer: "no", CorrectFeedback: "Right.", IncorrectFeedback: "Wrong."},
		},
		{
			Item: Item{ID: 105, Topic: "python", Difficulty: DifficultyHard, Format: FormatCodeCompletion, Category: CategoryGrammar},
			Card: Card{Prompt: "Complete: `___: <code>` ... `except:`", Answer: "try", CorrectFeedback: "Perfect.", IncorrectFeedback: "It is 'try'."},
		},
		{
			Item: Item{ID: 201, Topic: "AWS", Difficulty: DifficultyHard, Format: FormatMultipleChoice, Category: CategoryVocab},
			Card: Card{Prompt: "Which AWS service runs code serverless?", Answer: "lambda", CorrectFeedback: "Correct.", IncorrectFeedback: "It is Lambda."},
		},
		{
			Item: Item{ID: 202, Topic: "AWS", Difficulty: DifficultyHard, Format: FormatMultipleChoice, Category: CategoryVocab},
			Card: Card{Prompt: "Which AWS service provides object storage?", Answer: "s3", CorrectFeedback: "Correct.", IncorrectFeedback: "It is S3."},
		},
		{
			Item: Item{ID: 301, Topic: "docker", Difficulty: DifficultyEasy, Format: FormatMultipleChoice, Category: CategoryVocab},
			Card: Card{Prompt: "Which file describes how to build a Docker image?", Answer: "dockerfile", CorrectFeedback: "Correct.", IncorrectFeedback: "It is the Dockerfile."},
		},
	}
}

// SeedCatalog returns a catalog pre-filled with Seed.
func SeedCatalog() *Catalog {
	c := NewCatalog()
	for _, e := range Seed() {
		c.Add(e.Item, e.Card)
	}
	return c
}
