package challenge

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
)

func init() {
	Register("json", jsonGenerator{})
}

type scoreRecord struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type scoreDataset struct {
	Users []scoreRecord `json:"users"`
}

// jsonGenerator synthesizes a tiny dataset and asks for a value extracted
// or computed from it.
type jsonGenerator struct{}

func (jsonGenerator) Generate(rng *rand.Rand) (string, string) {
	var data scoreDataset
	for i := 1; i <= 5; i++ {
		data.Users = append(data.Users, scoreRecord{
			ID:    i,
			Name:  fmt.Sprintf("user%d", i),
			Score: randRange(rng, 0, 100),
		})
	}

	// The dataset is built from plain struct literals; marshalling it
	// cannot fail.
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	switch rng.Intn(3) {
	case 0: // extract one user's score
		targetID := randRange(rng, 1, 5)
		question := fmt.Sprintf("Extract the 'score' value for the user with id=%d from this JSON: %s", targetID, raw)
		return question, strconv.Itoa(data.Users[targetID-1].Score)

	case 1: // sum all scores
		var sum int
		for _, u := range data.Users {
			sum += u.Score
		}
		question := fmt.Sprintf("Sum all 'score' values in this JSON: %s", raw)
		return question, strconv.Itoa(sum)

	default: // count scores strictly above the threshold
		const threshold = 50
		var count int
		for _, u := range data.Users {
			if u.Score > threshold {
				count++
			}
		}
		question := fmt.Sprintf("How many users have a score greater than %d in this JSON: %s", threshold, raw)
		return question, strconv.Itoa(count)
	}
}
