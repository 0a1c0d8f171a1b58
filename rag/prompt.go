package rag

import (
	"fmt"

	"github.com/dahyuniiiiii/Aigent/retrieval"
)

const promptTemplate = `You are a meeting analysis expert. Below are per-attendee
meeting summaries. Each line has the form: 'role summary'.

Meeting summaries:
%s

User question:
%s

Extract the information relevant to the question from the context above and
answer in clear, natural language. If the context does not contain the
answer, say so instead of guessing.`

// BuildPrompt assembles the generation prompt from retrieved document texts
// and the user question. Context documents appear one per line, in the
// relevance order the retriever produced.
func BuildPrompt(contextTexts []string, question string) string {
	return fmt.Sprintf(promptTemplate, retrieval.BuildContext(contextTexts), question)
}
