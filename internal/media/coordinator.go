// Package media coordinates multi-file upload-then-persist sequences as
// compensating transactions: every successful upload is recorded in an
// undo log, and any later failure unwinds the log before the error is
// surfaced. Rollback is best-effort; a failed delete is logged, never
// re-raised, so a blob-store outage during rollback can still leave
// orphans behind.
package media

import (
	"context"

	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

// Group is one media slot (thumbnail, images, ...) bound for a folder.
type Group struct {
	Folder string
	Files  []storage.File
}

type Coordinator struct {
	store storage.BlobStore
	log   *zap.SugaredLogger
}

func NewCoordinator(store storage.BlobStore, log *zap.SugaredLogger) *Coordinator {
	return &Coordinator{store: store, log: log}
}

// Tx is the compensating-transaction log for one logical operation.
type Tx struct {
	c        *Coordinator
	uploaded []string
}

func (c *Coordinator) Begin() *Tx {
	return &Tx{c: c}
}

// Track records an uploaded URL so Rollback can remove it.
func (t *Tx) Track(url string) {
	t.uploaded = append(t.uploaded, url)
}

// Rollback deletes every tracked URL in reverse upload order. Delete
// failures are logged and skipped.
func (t *Tx) Rollback(ctx context.Context) {
	for i := len(t.uploaded) - 1; i >= 0; i-- {
		url := t.uploaded[i]
		if _, err := t.c.store.Delete(ctx, url); err != nil {
			t.c.log.Errorw("rollback: deleting uploaded file failed", "url", url, "error", err)
		}
	}
	if len(t.uploaded) > 0 {
		t.c.log.Infow("rolled back uploaded files", "count", len(t.uploaded))
	}
	t.uploaded = nil
}

// Run executes one upload-then-persist transaction:
//
//  1. every file of every group is validated up front, before any network
//     call;
//  2. files are uploaded in group order, each returned URL entering the
//     undo log as soon as the upload succeeds;
//  3. only after all uploads succeed is persist invoked with the collected
//     URLs, keyed by folder in upload order.
//
// An upload or persist failure rolls back everything uploaded by this call
// and returns the original error (upload failures wrapped as upstream).
func (c *Coordinator) Run(
	ctx context.Context,
	groups []Group,
	persist func(ctx context.Context, urls map[string][]string) error,
) (map[string][]string, error) {
	for _, g := range groups {
		if err := storage.ValidateFiles(g.Files, g.Folder); err != nil {
			return nil, err
		}
	}

	tx := c.Begin()
	urls := make(map[string][]string, len(groups))
	for _, g := range groups {
		for _, f := range g.Files {
			url, err := c.store.Upload(ctx, f, g.Folder)
			if err != nil {
				tx.Rollback(ctx)
				return nil, apperrors.Upstream(err, "uploading %s to %s", f.Name, g.Folder)
			}
			tx.Track(url)
			urls[g.Folder] = append(urls[g.Folder], url)
		}
	}

	if persist != nil {
		if err := persist(ctx, urls); err != nil {
			tx.Rollback(ctx)
			return nil, err
		}
	}
	return urls, nil
}

// Delete removes a single blob, logging instead of failing when the store
// can not delete it. Used for best-effort cleanup outside a transaction,
// e.g. replacing an old avatar.
func (c *Coordinator) Delete(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if _, err := c.store.Delete(ctx, url); err != nil {
		c.log.Errorw("deleting file failed", "url", url, "error", err)
	}
}
