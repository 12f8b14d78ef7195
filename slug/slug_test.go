package slug

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorReader is a mock io.Reader that always returns an error
type errorReader struct{}

func (r *errorReader) Read([]byte) (n int, err error) {
	return 0, errors.New("mocked random number generation error")
}

func TestGenerate(t *testing.T) {
	t.Run("Basic Generation", func(t *testing.T) {
		s, err := Generate()
		require.NoError(t, err, "Generate() should not return an error")
		require.Len(t, s, Length, "Generated slug should have the correct length")
		for _, char := range s {
			assert.Contains(t, Alphabet, string(char), "Generated slug should only contain valid characters")
		}
		assert.True(t, Valid(s))
	})

	t.Run("Multiple Generations", func(t *testing.T) {
		generated := make(map[string]int)
		total := 100000
		for i := 0; i < total; i++ {
			s, err := Generate()
			require.NoError(t, err, "Generate() should not return an error")
			generated[s]++
		}

		duplicates := make(map[string]int)
		for s, count := range generated {
			if count > 1 {
				duplicates[s] = count
			}
		}

		t.Logf("Total slugs generated: %d", total)
		t.Logf("Unique slugs: %d", len(generated))

		// 62^7 possible slugs; a duplicate in 1e5 draws has probability ~1.4e-3.
		assert.LessOrEqual(t, len(duplicates), 1, "Unexpected number of duplicated slugs: %v", duplicates)
	})

	t.Run("Uses the whole alphabet", func(t *testing.T) {
		seen := make(map[rune]bool)
		for i := 0; i < 2000; i++ {
			s, err := Generate()
			require.NoError(t, err)
			for _, char := range s {
				seen[char] = true
			}
		}
		assert.Len(t, seen, len(Alphabet))
	})

	t.Run("Error Handling", func(t *testing.T) {
		// Mock the rand.Reader to return an error
		originalReader := rand.Reader
		rand.Reader = &errorReader{}
		defer func() { rand.Reader = originalReader }()

		_, err := Generate()
		assert.Error(t, err, "Generate() should return an error when random number generation fails")
		assert.Contains(t, err.Error(), "mocked random number generation error", "Error message should contain the mocked error")
	})
}

func TestValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"abc1234", true},
		{"ZZZZZZZ", true},
		{"abc123", false},
		{"abc12345", false},
		{"abc-123", false},
		{"", false},
		{"doesnotexist", false},
		{"héllo12", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.input))
		})
	}
}

// BenchmarkGenerate measures the performance of the Generate function.
func BenchmarkGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := Generate()
		if err != nil {
			b.Fatal(err)
		}
	}
}
