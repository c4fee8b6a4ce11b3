package store

import (
	"errors"
	"reflect"
	"testing"
)

func TestChunkRange(t *testing.T) {
	t.Parallel()

	type window struct{ start, end int }

	tests := []struct {
		name      string
		total     int
		chunkSize int
		want      []window
	}{
		{
			name:      "zero_total_no_calls",
			total:     0,
			chunkSize: 10,
			want:      nil,
		},
		{
			name:      "exact_multiple",
			total:     4,
			chunkSize: 2,
			want:      []window{{0, 2}, {2, 4}},
		},
		{
			name:      "remainder_window",
			total:     5,
			chunkSize: 2,
			want:      []window{{0, 2}, {2, 4}, {4, 5}},
		},
		{
			name:      "chunk_larger_than_total",
			total:     3,
			chunkSize: 10,
			want:      []window{{0, 3}},
		},
		{
			name:      "zero_chunk_defaults_to_total",
			total:     3,
			chunkSize: 0,
			want:      []window{{0, 3}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var got []window
			err := ChunkRange(tc.total, tc.chunkSize, func(start, end int) error {
				got = append(got, window{start, end})
				return nil
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChunkRange_StopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	err := ChunkRange(10, 2, func(start, end int) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
