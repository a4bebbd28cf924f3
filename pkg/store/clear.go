package store

import "context"

// Clear deletes every snapshot in s and returns how many were removed.
func Clear(ctx context.Context, s Store) (int, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	for i, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}
