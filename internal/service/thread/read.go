package thread

import (
	"context"
	"fmt"
	"strconv"

	"github.com/heartmarshall/threads-backend/internal/cache"
	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/pkg/ctxutil"
)

// ListThreads returns a page of all threads, newest first by default.
// The page is served from the cache for up to the threads TTL.
func (s *Service) ListThreads(ctx context.Context, q domain.ListQuery) (domain.Page[ThreadView], error) {
	q, err := q.Normalize(domain.ThreadSortFields)
	if err != nil {
		return domain.Page[ThreadView]{}, err
	}

	page, err := cache.Wrap(ctx, s.cache, q.CacheKey("threads"), s.ttl.ThreadsTTL,
		func(ctx context.Context) (domain.Page[domain.Thread], error) {
			items, total, err := s.threads.List(ctx, domain.ThreadFilter{Query: q})
			return domain.Page[domain.Thread]{Items: items, Total: total}, err
		})
	if err != nil {
		return domain.Page[ThreadView]{}, fmt.Errorf("list threads: %w", err)
	}

	return s.viewPage(ctx, page)
}

// ListUserThreads returns a page of the threads authored by authorID.
func (s *Service) ListUserThreads(ctx context.Context, authorID int64, q domain.ListQuery) (domain.Page[ThreadView], error) {
	if authorID <= 0 {
		return domain.Page[ThreadView]{}, domain.NewValidationError("user_id", "must be positive")
	}
	q, err := q.Normalize(domain.ThreadSortFields)
	if err != nil {
		return domain.Page[ThreadView]{}, err
	}

	prefix := cache.Key("threads", "user", strconv.FormatInt(authorID, 10))
	page, err := cache.Wrap(ctx, s.cache, q.CacheKey(prefix), s.ttl.ThreadsTTL,
		func(ctx context.Context) (domain.Page[domain.Thread], error) {
			items, total, err := s.threads.List(ctx, domain.ThreadFilter{AuthorID: &authorID, Query: q})
			return domain.Page[domain.Thread]{Items: items, Total: total}, err
		})
	if err != nil {
		return domain.Page[ThreadView]{}, fmt.Errorf("list user threads: %w", err)
	}

	return s.viewPage(ctx, page)
}

// GetThread returns one thread with its counters.
func (s *Service) GetThread(ctx context.Context, id int64) (ThreadView, error) {
	t, err := s.cachedThread(ctx, id)
	if err != nil {
		return ThreadView{}, err
	}

	views, err := s.views(ctx, []domain.Thread{t})
	if err != nil {
		return ThreadView{}, err
	}
	return views[0], nil
}

func (s *Service) cachedThread(ctx context.Context, id int64) (domain.Thread, error) {
	if id <= 0 {
		return domain.Thread{}, domain.NewValidationError("id", "must be positive")
	}

	key := cache.Key("threadDetails", strconv.FormatInt(id, 10))
	t, err := cache.Wrap(ctx, s.cache, key, s.ttl.ThreadsTTL, func(ctx context.Context) (domain.Thread, error) {
		return s.threads.GetByID(ctx, id)
	})
	if err != nil {
		return domain.Thread{}, fmt.Errorf("get thread: %w", err)
	}
	return t, nil
}

// ListReplies returns a page of replies of threadID.
// Returns domain.ErrNotFound if the thread does not exist.
func (s *Service) ListReplies(ctx context.Context, threadID int64, q domain.ListQuery) (domain.Page[domain.ThreadReply], error) {
	if _, err := s.cachedThread(ctx, threadID); err != nil {
		return domain.Page[domain.ThreadReply]{}, err
	}
	q, err := q.Normalize(domain.ReplySortFields)
	if err != nil {
		return domain.Page[domain.ThreadReply]{}, err
	}

	prefix := cache.Key("replies", strconv.FormatInt(threadID, 10))
	page, err := cache.Wrap(ctx, s.cache, q.CacheKey(prefix), s.ttl.RepliesTTL,
		func(ctx context.Context) (domain.Page[domain.ThreadReply], error) {
			items, total, err := s.replies.List(ctx, threadID, q)
			return domain.Page[domain.ThreadReply]{Items: items, Total: total}, err
		})
	if err != nil {
		return domain.Page[domain.ThreadReply]{}, fmt.Errorf("list replies: %w", err)
	}

	return page, nil
}

func (s *Service) viewPage(ctx context.Context, page domain.Page[domain.Thread]) (domain.Page[ThreadView], error) {
	views, err := s.views(ctx, page.Items)
	if err != nil {
		return domain.Page[ThreadView]{}, err
	}
	return domain.Page[ThreadView]{Items: views, Total: page.Total}, nil
}

// views decorates threads with the flags of the viewer in ctx, if any.
func (s *Service) views(ctx context.Context, threads []domain.Thread) ([]ThreadView, error) {
	views := make([]ThreadView, len(threads))
	for i, t := range threads {
		views[i] = ThreadView{Thread: t}
	}

	viewer, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok || len(threads) == 0 {
		return views, nil
	}

	ids := make([]int64, len(threads))
	for i, t := range threads {
		ids[i] = t.ID
	}
	liked, err := s.likes.LikedThreads(ctx, viewer, ids)
	if err != nil {
		return nil, fmt.Errorf("load viewer likes: %w", err)
	}

	for i := range views {
		own := views[i].Author.ID == viewer
		views[i].Liked = liked[views[i].ID]
		views[i].CanEdit = own
		views[i].CanDelete = own
	}
	return views, nil
}
