package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"

	"github.com/domino14/aucteraden/decktet"
)

// GameSeeds are the two random streams a game consumes: one shuffles the
// deck, the other drives the policy's choices.
type GameSeeds struct {
	Deck   [32]byte
	Policy [32]byte
}

func (s GameSeeds) String() string {
	return base64.RawURLEncoding.EncodeToString(s.Deck[:])
}

// DeriveSeeds makes n seed pairs from an integer base. With single set,
// game i deals from seed base+i; otherwise every game deals the same deck
// from base and only the policy stream varies.
func DeriveSeeds(base int64, n int, single bool) []GameSeeds {
	seeds := make([]GameSeeds, n)
	for i := range seeds {
		if single {
			seeds[i].Deck = decktet.SeedFromInt(base + int64(i))
		} else {
			seeds[i].Deck = decktet.SeedFromInt(base)
		}
		seeds[i].Policy = decktet.SeedFromInt(int64(i))
	}
	return seeds
}

// SeedsFromList pairs each seed from a seed file with itself, so a loaded
// seed fully determines its game.
func SeedsFromList(list [][32]byte) []GameSeeds {
	seeds := make([]GameSeeds, len(list))
	for i, s := range list {
		seeds[i] = GameSeeds{Deck: s, Policy: s}
	}
	return seeds
}

// GenerateSeeds draws n fresh seeds from the system entropy source.
func GenerateSeeds(n int) ([][32]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("need a positive number of seeds, got %d", n)
	}
	seeds := make([][32]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds, nil
}

// SaveSeeds writes seeds to a file, base64 URL-safe, one per line.
func SaveSeeds(seeds [][32]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	_, err = writer.WriteString("# aucteraden game seeds (base64 URL-safe encoded, 32 bytes each)\n")
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, seed := range seeds {
		encoded := base64.RawURLEncoding.EncodeToString(seed[:])
		_, err = writer.WriteString(encoded + "\n")
		if err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return nil
}

// LoadSeeds reads a seed file written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := ParseSeed(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}

// ParseSeed decodes one base64 seed, URL-safe or standard alphabet.
func ParseSeed(s string) ([32]byte, error) {
	var seed [32]byte
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return seed, fmt.Errorf("failed to decode seed: %w", err)
		}
	}
	if len(decoded) != 32 {
		return seed, fmt.Errorf("invalid seed length: got %d bytes, expected 32", len(decoded))
	}
	copy(seed[:], decoded)
	return seed, nil
}
