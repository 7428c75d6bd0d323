package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		totalPages  int
		currentPage int
		want        Window
		wantOK      bool
	}{
		{
			name:       "first page of nine",
			totalPages: 9, currentPage: 1,
			want: Window{
				Left: []int{}, Right: []int{2, 3},
				RightHasMore: true, ShowLast: true,
			},
			wantOK: true,
		},
		{
			name:       "middle page of nine",
			totalPages: 9, currentPage: 5,
			want: Window{
				Left: []int{3, 4}, Right: []int{6, 7},
				LeftHasMore: true, RightHasMore: true,
				ShowFirst: true, ShowLast: true,
			},
			wantOK: true,
		},
		{
			name:       "last page of nine",
			totalPages: 9, currentPage: 9,
			want: Window{
				Left: []int{7, 8}, Right: []int{},
				LeftHasMore: true, ShowFirst: true,
			},
			wantOK: true,
		},
		{
			name:       "second page has no left gap",
			totalPages: 9, currentPage: 2,
			want: Window{
				Left: []int{1}, Right: []int{3, 4},
				RightHasMore: true, ShowLast: true,
			},
			wantOK: true,
		},
		{
			name:       "window adjacent to both ends",
			totalPages: 3, currentPage: 2,
			want: Window{
				Left: []int{1}, Right: []int{3},
			},
			wantOK: true,
		},
		{
			name:       "first page of two",
			totalPages: 2, currentPage: 1,
			want: Window{
				Left: []int{}, Right: []int{2},
			},
			wantOK: true,
		},
		{
			name:       "right window touches last page without gap",
			totalPages: 4, currentPage: 1,
			want: Window{
				Left: []int{}, Right: []int{2, 3},
				ShowLast: true,
			},
			wantOK: true,
		},
		{
			name:       "single page renders no controls",
			totalPages: 1, currentPage: 1,
			wantOK: false,
		},
		{
			name:       "page out of range renders no controls",
			totalPages: 3, currentPage: 5,
			wantOK: false,
		},
		{
			name:       "zero pages renders no controls",
			totalPages: 0, currentPage: 1,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compute(tt.totalPages, tt.currentPage)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	first, ok1 := Compute(9, 5)
	second, ok2 := Compute(9, 5)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}
