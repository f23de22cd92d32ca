package domain

type LinkTarget string

const (
	TargetSelf  LinkTarget = "_self"
	TargetBlank LinkTarget = "_blank"
)

// ValidLinkTargets is the canonical set of accepted link target strings.
var ValidLinkTargets = map[string]bool{
	"_self": true, "_blank": true,
}

type EventSource string

const (
	SourceStore EventSource = "store"
	SourceICS   EventSource = "ics"
)
