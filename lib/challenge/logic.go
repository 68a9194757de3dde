package challenge

import "math/rand"

func init() {
	Register("logic", logicGenerator{})
}

// Fixed riddles with fixed answers. Classic trick questions that humans
// reliably get wrong under time pressure and language models reliably get
// right.
var logicPuzzles = []struct {
	question string
	answer   string
}{
	{
		question: "If all Bloops are Razzies and all Razzies are Lazzies, are all Bloops definitely Lazzies? Answer 'yes' or 'no'.",
		answer:   "yes",
	},
	{
		question: "A bat and a ball cost $1.10 in total. The bat costs $1.00 more than the ball. How much does the ball cost in dollars? Provide only the numeric value.",
		answer:   "0.05",
	},
	{
		question: "If it takes 5 machines 5 minutes to make 5 widgets, how many minutes would it take 100 machines to make 100 widgets? Provide only the numeric value.",
		answer:   "5",
	},
	{
		question: "In a sequence: 2, 6, 12, 20, 30, what is the next number?",
		answer:   "42",
	},
}

type logicGenerator struct{}

func (logicGenerator) Generate(rng *rand.Rand) (string, string) {
	puzzle := logicPuzzles[rng.Intn(len(logicPuzzles))]
	return puzzle.question, puzzle.answer
}
