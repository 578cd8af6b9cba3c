package llm

import "fmt"

// DefaultTopic — тема вопросов по умолчанию.
const DefaultTopic = "Cucumber and Capybara testing"

const promptTemplate = `Generate a multiple-choice question about %s for freshers.
The question should have four options and include a short explanation (one or two sentences) for the correct answer.
Each option should be one word or a maximum of three words.
Format the response as follows:
Question: [question text]
Options:
A) [option 1]
B) [option 2]
C) [option 3]
D) [option 4]
Correct Answer: [letter]
Explanation: [explanation]`

// BuildPrompt подставляет тему в шаблон запроса.
func BuildPrompt(topic string) string {
	if topic == "" {
		topic = DefaultTopic
	}
	return fmt.Sprintf(promptTemplate, topic)
}
