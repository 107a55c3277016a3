package services

import (
	"fmt"

	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// PartitionEvenly splits items into m contiguous slices. Every slice gets
// len(items)/m items and the first len(items)%m slices get one more.
func PartitionEvenly[T any](items []T, m int) ([][]T, error) {
	if m <= 0 {
		return nil, fmt.Errorf("%w: %d supervisors", apperrors.ErrDivision, m)
	}

	base, extra := len(items)/m, len(items)%m
	parts := make([][]T, m)
	start := 0
	for i := range parts {
		size := base
		if i < extra {
			size++
		}
		parts[i] = items[start : start+size : start+size]
		start += size
	}
	return parts, nil
}
