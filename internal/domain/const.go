package domain

const (
	// ReplyMarker prefixes a found event's message when the finder wrote a
	// reply instead of only marking the bottle as found
	ReplyMarker = "[reply] "

	// SentinelFoundNoReply is the system-generated message written when a
	// finder marks a bottle found without replying. It is not user content.
	SentinelFoundNoReply = "bottle found, no reply"

	// OriginalCreatorLabel is the actor name used for the first journey step
	// when the bottle never recorded a creator name
	OriginalCreatorLabel = "Original Creator"
)
