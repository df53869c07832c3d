package fortress

import "github.com/google/uuid"

// NoticeKind identifies what a Notice reports.
type NoticeKind uint8

const (
	NoticeTip NoticeKind = iota
	NoticePhase
	NoticeCommit
	NoticeDiscard
	NoticeLaunch
	NoticeTurn
	NoticeGameOver
	NoticeSaved
)

var noticeNames = [...]string{"tip", "phase", "commit", "discard", "launch", "turn", "gameOver", "saved"}

func (k NoticeKind) String() string {
	if int(k) < len(noticeNames) {
		return noticeNames[k]
	}
	return "unknown"
}

// EventSink receives game notices. Set one on a Game with SetEventSink to
// forward notices into an ECS or a UI layer.
type EventSink interface {
	Emit(n Notice)
}

// Notice carries one observable game event. Only the fields relevant to
// Kind are set.
type Notice struct {
	Kind   NoticeKind
	Phase  Phase
	Player int
	Text   string

	// Commit and discard fields.
	Piece     uuid.UUID
	PieceKind PieceKind
	Outcome   DropOutcome

	// Launch fields.
	Impulse Vec2
}
