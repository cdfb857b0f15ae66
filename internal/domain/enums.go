package domain

// Kind is the closed set of notification kinds.
type Kind string

const (
	KindMention Kind = "MENTION"
	KindFollow  Kind = "FOLLOW"
	KindLike    Kind = "LIKE"
	KindReply   Kind = "REPLY"
)

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindMention, KindFollow, KindLike, KindReply:
		return true
	}
	return false
}

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) String() string { return string(o) }

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}
