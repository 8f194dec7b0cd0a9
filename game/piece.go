package game

// Side identifies the owner of a piece: the attacker drives the king and
// rook toward checkmate, the defender plays the lone king for a draw.
type Side int

const (
	Attacker Side = iota
	Defender
)

func (s Side) String() string {
	if s == Attacker {
		return "attacker"
	}
	return "defender"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Attacker {
		return Defender
	}
	return Attacker
}

// Label returns the one-letter side tag used on board renders and in
// scenario files.
func (s Side) Label() string {
	if s == Attacker {
		return "A"
	}
	return "D"
}

// Piece is a king or rook at a position. Pieces are immutable: Move returns
// a new piece. The raw candidate destination set (ignoring occupancy and
// check) is derived once and memoized; Release drops the memo when the piece
// leaves the live game path.
type Piece interface {
	Owner() Side
	Pos() Position
	// AttackingPositions returns the squares the piece could move to
	// ignoring occupancy and check. The slice is memoized; callers must not
	// mutate it.
	AttackingPositions() []Position
	// Move produces a new piece of the same kind and owner at the given
	// position.
	Move(to Position) Piece
	// EqualTo reports structural equality on (kind, position). Owner is
	// deliberately not compared: it is used to detect whether a successor
	// state still holds this exact piece.
	EqualTo(other Piece) bool
	// Release drops the memoized attack set.
	Release()
	String() string
}

// kingSteps are the eight one-square king offsets, in a fixed order so move
// generation stays deterministic.
var kingSteps = [8][2]int{
	{-1, -1}, {-1, 1}, {1, 1}, {1, -1},
	{0, -1}, {-1, 0}, {0, 1}, {1, 0},
}

// King is a king piece.
type King struct {
	owner   Side
	pos     Position
	attacks []Position
}

// NewKing creates a king and derives its attack set.
func NewKing(owner Side, pos Position) *King {
	k := &King{owner: owner, pos: pos}
	k.attacks = kingAttacks(pos)
	return k
}

func kingAttacks(pos Position) []Position {
	attacks := make([]Position, 0, 8)
	for _, step := range kingSteps {
		f, r := pos.File+step[0], pos.Rank+step[1]
		if ValidCoords(f, r) {
			attacks = append(attacks, Position{File: f, Rank: r})
		}
	}
	return attacks
}

func (k *King) Owner() Side   { return k.owner }
func (k *King) Pos() Position { return k.pos }

func (k *King) AttackingPositions() []Position {
	if k.attacks == nil {
		k.attacks = kingAttacks(k.pos)
	}
	return k.attacks
}

func (k *King) Move(to Position) Piece {
	return NewKing(k.owner, to)
}

func (k *King) EqualTo(other Piece) bool {
	o, ok := other.(*King)
	return ok && o.pos == k.pos
}

func (k *King) Release() { k.attacks = nil }

// Between reports whether the king's square lies strictly between p1 and p2
// on a shared file or rank. The attacker uses this to detect its own king
// screening the rook's line from the defender's king.
func (k *King) Between(p1, p2 Position) bool {
	if k.pos.File == p1.File && k.pos.File == p2.File {
		if (p1.Rank < k.pos.Rank && k.pos.Rank < p2.Rank) ||
			(p1.Rank > k.pos.Rank && k.pos.Rank > p2.Rank) {
			return true
		}
	}
	if k.pos.Rank == p1.Rank && k.pos.Rank == p2.Rank {
		if (p1.File < k.pos.File && k.pos.File < p2.File) ||
			(p1.File > k.pos.File && k.pos.File > p2.File) {
			return true
		}
	}
	return false
}

func (k *King) String() string {
	return "K" + k.owner.Label()
}

// Rook is a rook piece.
type Rook struct {
	owner   Side
	pos     Position
	attacks []Position
}

// NewRook creates a rook and derives its attack set.
func NewRook(owner Side, pos Position) *Rook {
	r := &Rook{owner: owner, pos: pos}
	r.attacks = rookAttacks(pos)
	return r
}

func rookAttacks(pos Position) []Position {
	attacks := make([]Position, 0, 14)
	for f := 1; f <= 8; f++ {
		if f != pos.File {
			attacks = append(attacks, Position{File: f, Rank: pos.Rank})
		}
	}
	for r := 1; r <= 8; r++ {
		if r != pos.Rank {
			attacks = append(attacks, Position{File: pos.File, Rank: r})
		}
	}
	return attacks
}

func (r *Rook) Owner() Side   { return r.owner }
func (r *Rook) Pos() Position { return r.pos }

func (r *Rook) AttackingPositions() []Position {
	if r.attacks == nil {
		r.attacks = rookAttacks(r.pos)
	}
	return r.attacks
}

func (r *Rook) Move(to Position) Piece {
	return NewRook(r.owner, to)
}

func (r *Rook) EqualTo(other Piece) bool {
	o, ok := other.(*Rook)
	return ok && o.pos == r.pos
}

func (r *Rook) Release() { r.attacks = nil }

func (r *Rook) String() string {
	return "R" + r.owner.Label()
}
