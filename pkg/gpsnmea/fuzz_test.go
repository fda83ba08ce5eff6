// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// buildRandomFixSentence renders a syntactically valid fix-data sentence
// with random position, satellite count and quality fields
func buildRandomFixSentence(rng *rand.Rand) Sentence {
	lat := fmt.Sprintf("%02d%02d.%03d", rng.Intn(90), rng.Intn(60), rng.Intn(1000))
	lon := fmt.Sprintf("%03d%02d.%03d", rng.Intn(180), rng.Intn(60), rng.Intn(1000))
	ns := [2]string{"N", "S"}[rng.Intn(2)]
	ew := [2]string{"E", "W"}[rng.Intn(2)]
	talker := [2]string{"GPGGA", "GNGGA"}[rng.Intn(2)]

	return Sentence{
		Type: talker,
		Data: []string{
			fmt.Sprintf("%06d", rng.Intn(240000)),
			lat, ns, lon, ew,
			"1",
			fmt.Sprintf("%02d", rng.Intn(13)),
			fmt.Sprintf("%d.%d", rng.Intn(10), rng.Intn(10)),
			fmt.Sprintf("%d.%d", rng.Intn(1000), rng.Intn(10)),
			"M",
			"46.9",
			"M",
			"",
			"",
		},
	}
}

// TestFuzzDecoder_RandomBytes feeds random bytes to the decoder
// and verifies it doesn't crash or panic
func TestFuzzDecoder_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d, _, _ := newTestDecoder()

		length := rng.Intn(512) + 1
		data := make([]byte, length)
		rng.Read(data)

		for _, b := range data {
			d.Feed(b)
		}
	}
}

// TestFuzzDecoder_RandomSentences generates random valid fix-data
// sentences and verifies every one commits
func TestFuzzDecoder_RandomSentences(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	d, _, stats := newTestDecoder()
	for i := 0; i < rounds; i++ {
		s := buildRandomFixSentence(rng)
		commits := 0
		for _, b := range s.Bytes() {
			if d.Feed(b) {
				commits++
			}
		}
		if commits != 1 {
			t.Errorf("Round %d: sentence %q did not commit", i, s.String())
		}
	}
	if stats.PacketCount != uint64(rounds) {
		t.Errorf("PacketCount = %d, expected %d", stats.PacketCount, rounds)
	}
	if stats.Errors != 0 {
		t.Errorf("Errors = %d, expected 0", stats.Errors)
	}
}

// TestFuzzDecoder_CorruptedSentences flips one payload digit per sentence
// and verifies the checksum rejects it
func TestFuzzDecoder_CorruptedSentences(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d, _, stats := newTestDecoder()

		raw := buildRandomFixSentence(rng).Bytes()

		// Collect digit positions in the body and flip one to a
		// different digit, guaranteeing a parity mismatch
		var digits []int
		for j := 7; j < len(raw) && raw[j] != '*'; j++ {
			if raw[j] >= '0' && raw[j] <= '9' {
				digits = append(digits, j)
			}
		}
		if len(digits) == 0 {
			continue
		}
		idx := digits[rng.Intn(len(digits))]
		raw[idx] = '0' + byte((int(raw[idx]-'0')+1+rng.Intn(9))%10)

		commits := 0
		for _, b := range raw {
			if d.Feed(b) {
				commits++
			}
		}
		if commits != 0 {
			t.Errorf("Round %d: corrupted sentence %q committed", i, raw)
		}
		if stats.Errors != 1 {
			t.Errorf("Round %d: Errors = %d, expected 1", i, stats.Errors)
		}
	}
}

// TestFuzzDecoder_TruncatedSentences drops the tail of valid sentences at
// random points and verifies the decoder recovers on the next full one
func TestFuzzDecoder_TruncatedSentences(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d, sol, _ := newTestDecoder()

		raw := buildRandomFixSentence(rng).Bytes()
		cut := rng.Intn(len(raw)-1) + 1
		for _, b := range raw[:cut] {
			d.Feed(b)
		}

		// A known-good sentence must still decode cleanly afterwards
		commits := feedString(d, ggaSentence)
		if commits != 1 {
			t.Errorf("Round %d: decoder did not recover after truncation at %d", i, cut)
		}
		if sol.NumSat != 8 {
			t.Errorf("Round %d: NumSat = %d after recovery, expected 8", i, sol.NumSat)
		}
	}
}

// TestFuzzGrabFields_RandomTokens verifies the token parser never panics
// and never returns a non-zero value for oversized tokens
func TestFuzzGrabFields_RandomTokens(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	alphabet := []byte("0123456789.,-NSEW aZ")
	for i := 0; i < rounds; i++ {
		length := rng.Intn(32)
		token := make([]byte, length)
		for j := range token {
			token[j] = alphabet[rng.Intn(len(alphabet))]
		}
		mult := uint8(rng.Intn(4))

		got := GrabFields(string(token), mult)
		// A decimal point can stop the scan early, so only point-free
		// tokens are guaranteed to hit the length abort
		if length > 15 && bytes.IndexByte(token, '.') < 0 && got != 0 {
			t.Errorf("Round %d: GrabFields(%q, %d) = %d, expected 0 for oversized token", i, token, mult, got)
		}
	}
}

// TestFuzzCoordToDegrees_RandomTokens verifies the coordinate converter
// never panics on arbitrary field text
func TestFuzzCoordToDegrees_RandomTokens(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	alphabet := []byte("0123456789..NSEW-")
	for i := 0; i < rounds; i++ {
		length := rng.Intn(32)
		token := make([]byte, length)
		for j := range token {
			token[j] = alphabet[rng.Intn(len(alphabet))]
		}
		CoordToDegrees(string(token))
	}
}
