package llm

const systemPrompt = "You are an English assistant."

// wordCardPrompt asks for one complete learning card for an English word.
const wordCardPrompt = `Provide a definition, French translation, and two English example sentences for the word "%s". Format as JSON with keys: word, definition, translation, example1, example2.`
