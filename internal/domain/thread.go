package domain

import (
	"regexp"
	"slices"
	"time"
)

// ThreadSortFields are the columns a thread listing may be sorted by.
var ThreadSortFields = []string{"created_at", "updated_at", "title"}

// ReplySortFields are the columns a reply listing may be sorted by.
var ReplySortFields = []string{"created_at"}

// NotificationSortFields are the columns a notification listing may be sorted by.
var NotificationSortFields = []string{"created_at", "read"}

// Thread is a top-level post with its aggregate counters.
// It is viewer-independent and therefore safe to share through the cache.
type Thread struct {
	ID         int64
	Title      string
	Content    string
	Image      *string
	Author     UserSummary
	LikeCount  int
	ReplyCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ThreadReply is a reply to a thread.
type ThreadReply struct {
	ID        int64
	ThreadID  int64
	Content   string
	Author    UserSummary
	CreatedAt time.Time
}

// ThreadFilter narrows a thread listing.
type ThreadFilter struct {
	AuthorID *int64
	Query    ListQuery
}

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the distinct usernames @-mentioned in content,
// in order of first appearance.
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}
