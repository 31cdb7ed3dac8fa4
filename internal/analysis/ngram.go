package analysis

import (
	"sort"

	"github.com/SeamusWaldron/cubestate"
)

// maxOccurrences caps the sample positions kept per n-gram.
const maxOccurrences = 10

// NGram is a move sequence that repeats.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence is where an n-gram was found.
type NGramOccurrence struct {
	Source     string `json:"source,omitempty"`
	StartIndex int    `json:"start_index"`
}

// NGramReport holds the most frequent n-grams, keyed by n.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

// RollingHash is a Rabin-Karp hash over a fixed window of move tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
		pow:    1,
	}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// Key returns the window as a comparable string.
func (rh *RollingHash) Key() string {
	b := make([]byte, len(rh.window))
	for i, t := range rh.window {
		b[i] = t + 'A'
	}
	return string(b)
}

type ngramEntry struct {
	key         string
	sequence    []string
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the topK most frequent n-grams of moves for each n in
// [minN, maxN]. Only sequences seen at least twice are reported.
func MineNGrams(moves []cubestate.Move, minN, maxN, topK int) *NGramReport {
	return MineNGramsAcross(map[string][]cubestate.Move{"": moves}, minN, maxN, topK)
}

// MineNGramsAcross counts n-grams over several sequences, keyed by a
// source name such as a solve ID. An n-gram never spans two sources.
func MineNGramsAcross(sources map[string][]cubestate.Move, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}
	if minN < 1 {
		minN = 1
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for n := minN; n <= maxN; n++ {
		counts := make(map[string]*ngramEntry)
		for _, name := range names {
			countNGrams(counts, name, sources[name], n)
		}
		if ngrams := topNGrams(counts, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func countNGrams(counts map[string]*ngramEntry, source string, moves []cubestate.Move, n int) {
	// Hash collisions are resolved by the window key.
	byHash := make(map[uint64][]*ngramEntry)
	for _, e := range counts {
		h := hashKey(e.key)
		byHash[h] = append(byHash[h], e)
	}

	rh := NewRollingHash(n)
	for i, m := range moves {
		rh.Roll(token(m))
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		occ := NGramOccurrence{Source: source, StartIndex: start}
		key := rh.Key()

		var entry *ngramEntry
		for _, e := range byHash[rh.Hash()] {
			if e.key == key {
				entry = e
				break
			}
		}

		if entry == nil {
			seq := make([]string, n)
			for j := range seq {
				seq[j] = moves[start+j].Notation()
			}
			entry = &ngramEntry{key: key, sequence: seq}
			counts[key] = entry
			byHash[rh.Hash()] = append(byHash[rh.Hash()], entry)
		}

		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}
}

func topNGrams(counts map[string]*ngramEntry, n, topK int) []NGram {
	entries := make([]*ngramEntry, 0, len(counts))
	for _, e := range counts {
		if e.count >= 2 {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	if topK > 0 && len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, e := range entries {
		result[i] = NGram{
			N:           n,
			Sequence:    e.sequence,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return result
}

// token packs a move into 0..17.
func token(m cubestate.Move) uint8 {
	return uint8(m.Face)*3 + uint8(quarters(m.Turn)-1)
}

func hashKey(key string) uint64 {
	rh := NewRollingHash(len(key))
	for i := 0; i < len(key); i++ {
		rh.Roll(key[i] - 'A')
	}
	return rh.Hash()
}
