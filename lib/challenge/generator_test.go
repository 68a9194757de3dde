package challenge

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func TestMintCoversAllFamilies(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	seen := map[string]int{}
	for range 400 {
		family, question, answer := Mint(rng)
		seen[family]++

		if question == "" {
			t.Fatalf("family %q minted an empty question", family)
		}
		if answer == "" {
			t.Fatalf("family %q minted an empty answer", family)
		}
	}

	for _, family := range []string{"code", "json", "logic", "math"} {
		if seen[family] == 0 {
			t.Errorf("family %q never minted in 400 draws", family)
		}
	}
}

func TestMathAlgebra(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var checked int
	for checked < 50 {
		question, answer := (mathGenerator{}).Generate(rng)
		if !strings.HasPrefix(question, "Solve for x:") {
			continue
		}
		checked++

		var a, b, c int
		if _, err := fmt.Sscanf(question, "Solve for x: %dx + (%d) = %d.", &a, &b, &c); err != nil {
			t.Fatalf("can't parse question %q: %v", question, err)
		}

		if a < 2 || a > 20 {
			t.Errorf("coefficient a=%d out of range [2,20]", a)
		}
		if b < -50 || b > 50 {
			t.Errorf("coefficient b=%d out of range [-50,50]", b)
		}
		if c < -100 || c > 100 {
			t.Errorf("coefficient c=%d out of range [-100,100]", c)
		}

		got, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			t.Fatalf("answer %q is not numeric: %v", answer, err)
		}

		want := math.Round(float64(c-b)/float64(a)*100) / 100
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("question %q: got answer %v, want %v", question, got, want)
		}
	}
}

func TestMathArithmetic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	var checked int
	for checked < 50 {
		question, answer := (mathGenerator{}).Generate(rng)
		if !strings.HasPrefix(question, "Calculate:") {
			continue
		}
		checked++

		var a, b, c, d int
		if _, err := fmt.Sscanf(question, "Calculate: ((%d + %d) * %d) / %d.", &a, &b, &c, &d); err != nil {
			t.Fatalf("can't parse question %q: %v", question, err)
		}

		got, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			t.Fatalf("answer %q is not numeric: %v", answer, err)
		}

		want := math.Round(float64((a+b)*c)/float64(d)*100) / 100
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("question %q: got answer %v, want %v", question, got, want)
		}
	}
}

func TestMathCalculus(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	var checked int
	for checked < 50 {
		question, answer := (mathGenerator{}).Generate(rng)
		if !strings.HasPrefix(question, "What is the derivative") {
			continue
		}
		checked++

		var a, b int
		if _, err := fmt.Sscanf(question, "What is the derivative of f(x) = %dx^2 + %dx with", &a, &b); err != nil {
			t.Fatalf("can't parse question %q: %v", question, err)
		}

		if want := fmt.Sprintf("%dx + %d", 2*a, b); answer != want {
			t.Errorf("question %q: got answer %q, want %q", question, answer, want)
		}
	}
}

func TestJSONAnswers(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for range 150 {
		question, answer := (jsonGenerator{}).Generate(rng)

		idx := strings.Index(question, "JSON: ")
		if idx == -1 {
			t.Fatalf("question %q does not embed a dataset", question)
		}

		var data scoreDataset
		if err := json.Unmarshal([]byte(question[idx+len("JSON: "):]), &data); err != nil {
			t.Fatalf("can't decode dataset from %q: %v", question, err)
		}

		if len(data.Users) != 5 {
			t.Fatalf("dataset has %d records, want 5", len(data.Users))
		}
		for _, u := range data.Users {
			if u.Score < 0 || u.Score > 100 {
				t.Errorf("score %d out of range [0,100]", u.Score)
			}
		}

		var want int
		switch {
		case strings.HasPrefix(question, "Extract"):
			var targetID int
			if _, err := fmt.Sscanf(question, "Extract the 'score' value for the user with id=%d", &targetID); err != nil {
				t.Fatalf("can't parse question %q: %v", question, err)
			}
			want = data.Users[targetID-1].Score

		case strings.HasPrefix(question, "Sum"):
			for _, u := range data.Users {
				want += u.Score
			}

		case strings.HasPrefix(question, "How many"):
			for _, u := range data.Users {
				if u.Score > 50 {
					want++
				}
			}

		default:
			t.Fatalf("unrecognized json question %q", question)
		}

		if answer != strconv.Itoa(want) {
			t.Errorf("question %q: got answer %q, want %q", question, answer, strconv.Itoa(want))
		}
	}
}

func TestLogicAnswers(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	want := map[string]string{
		"Bloops":         "yes",
		"bat and a ball": "0.05",
		"5 machines":     "5",
		"sequence":       "42",
	}

	seen := map[string]bool{}
	for range 100 {
		question, answer := (logicGenerator{}).Generate(rng)

		var matched bool
		for fragment, expected := range want {
			if strings.Contains(question, fragment) {
				matched = true
				seen[fragment] = true
				if answer != expected {
					t.Errorf("riddle %q: got answer %q, want %q", fragment, answer, expected)
				}
			}
		}
		if !matched {
			t.Errorf("unrecognized riddle %q", question)
		}
	}

	if len(seen) != len(want) {
		t.Errorf("only saw %d of %d riddles in 100 draws", len(seen), len(want))
	}
}

func TestCodeAnswers(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	valid := map[string]bool{"30": true, "8": true, "4": true}
	seen := map[string]bool{}

	for range 100 {
		_, answer := (codeGenerator{}).Generate(rng)
		if !valid[answer] {
			t.Errorf("unexpected code answer %q", answer)
		}
		seen[answer] = true
	}

	if len(seen) != len(valid) {
		t.Errorf("only saw %d of %d snippets in 100 draws", len(seen), len(valid))
	}
}
