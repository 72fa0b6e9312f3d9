package orchestrate

import (
	"fmt"
	"math/rand"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var adjectives = []string{
	"bold", "brave", "bright", "calm", "clever", "curious", "eager", "gentle",
	"golden", "happy", "keen", "lively", "lucky", "mighty", "nimble", "patient",
	"quick", "quiet", "steady", "swift", "tidy", "vivid", "warm", "wise",
}

var animals = []string{
	"badger", "beaver", "crane", "falcon", "ferret", "finch", "fox", "heron",
	"lynx", "marmot", "marten", "otter", "owl", "pika", "raven", "seal",
	"shrew", "sparrow", "stoat", "swift", "tern", "vole", "wren", "yak",
}

var rng *rand.Rand

func init() {
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// newRunID generates a human-friendly run id like "steady_otter_V1StGXR8",
// easy to pick out of a directory of reports.
func newRunID() (string, error) {
	adjective := adjectives[rng.Intn(len(adjectives))]
	animal := animals[rng.Intn(len(animals))]

	nanoID, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}

	return fmt.Sprintf("%s_%s_%s", adjective, animal, nanoID), nil
}
