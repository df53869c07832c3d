package fortress

import "github.com/jakecoffman/cp"

// CollisionTag is the category attached to every collision shape. Collision
// rules dispatch on the tag pair, never on object identity.
type CollisionTag uint8

const (
	TagGround       CollisionTag = 0
	TagPlayer1Piece CollisionTag = 1
	TagPlayer2Piece CollisionTag = 2
	TagSpecialPiece CollisionTag = 3 // Go pieces of either player
	TagProjectile   CollisionTag = 4
)

var tagNames = [...]string{"ground", "player1", "player2", "special", "projectile"}

// String returns the tag name.
func (t CollisionTag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// TagForOwner returns the piece tag of a player.
func TagForOwner(player int) CollisionTag {
	if player == 2 {
		return TagPlayer2Piece
	}
	return TagPlayer1Piece
}

// pieceTag is the tag a piece of kind k owned by player carries. Go pieces
// are special regardless of owner.
func pieceTag(k PieceKind, player int) CollisionTag {
	if k == KindGo {
		return TagSpecialPiece
	}
	return TagForOwner(player)
}

func (t CollisionTag) cp() cp.CollisionType { return cp.CollisionType(t) }

// tagPair is an unordered tag pair, stored with the lower tag first.
type tagPair struct {
	lo, hi CollisionTag
}

func pairOf(a, b CollisionTag) tagPair {
	if a > b {
		a, b = b, a
	}
	return tagPair{lo: a, hi: b}
}
