package challenge

import "math/rand"

func init() {
	Register("code", codeGenerator{})
}

var codeSnippets = []struct {
	question string
	answer   string
}{
	{
		question: "What is the output of this Python code: result = [x**2 for x in range(5)]; print(sum(result))",
		answer:   "30",
	},
	{
		question: "Evaluate this expression in any programming language: fibonacci(6), where fibonacci(n) is the nth Fibonacci number (starting with fibonacci(0)=0, fibonacci(1)=1)",
		answer:   "8",
	},
	{
		question: "What does this evaluate to: len(set([1,2,2,3,3,3,4,4,4,4]))?",
		answer:   "4",
	},
}

type codeGenerator struct{}

func (codeGenerator) Generate(rng *rand.Rand) (string, string) {
	snippet := codeSnippets[rng.Intn(len(codeSnippets))]
	return snippet.question, snippet.answer
}
