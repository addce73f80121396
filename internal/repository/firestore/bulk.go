package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// deleteCollection removes every document of col with a BulkWriter.
// Nested subcollections are not touched.
func (s *Store) deleteCollection(ctx context.Context, col *firestore.CollectionRef) error {
	refs, err := col.DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list %s: %w", col.Path, err)
	}
	return s.deleteRefs(ctx, refs)
}

func (s *Store) deleteRefs(ctx context.Context, refs []*firestore.DocumentRef) error {
	if len(refs) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return fmt.Errorf("queue delete %s: %w", ref.Path, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("delete %s: %w", refs[i].Path, err)
		}
	}
	s.logger.Debug("bulk delete", "documents", len(refs))
	return nil
}
