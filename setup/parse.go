package setup

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"krk/game"
)

// movePattern matches a move request like K(4,2) or R(a,1).
var movePattern = regexp.MustCompile(`^([KkRr])\(([0-9a-zA-Z]),([1-8])\)$`)

// scenarioToken matches one piece placement like x.K(2,4).
var scenarioToken = regexp.MustCompile(`^([XxYyAaDd])\.([KkRr])\(([0-9a-zA-Z]),([1-8])\)$`)

// ParseMove parses a move string of the form K(file,rank) or R(file,rank)
// for the given side. Files accept a digit 1-8 or a letter a-g (a maps to
// 1); ranks are a single digit 1-8. Only the attacker may move a rook.
func ParseMove(input string, side game.Side) (game.Piece, error) {
	m := movePattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return nil, fmt.Errorf("cannot parse move %q: expected K(file,rank) or R(file,rank)", input)
	}
	pos, err := parseCoordinates(m[2], m[3])
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(m[1], "R") {
		if side != game.Attacker {
			return nil, fmt.Errorf("only the attacker may move a rook")
		}
		return game.NewRook(side, pos), nil
	}
	return game.NewKing(side, pos), nil
}

// ParsePosition parses a bare ordered pair like (3,5).
func ParsePosition(input string) (game.Position, error) {
	trimmed := strings.TrimSpace(input)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")
	fileStr, rankStr, found := strings.Cut(trimmed, ",")
	if !found {
		return game.Position{}, fmt.Errorf("cannot parse position %q: expected (file,rank)", input)
	}
	return parseCoordinates(strings.TrimSpace(fileStr), strings.TrimSpace(rankStr))
}

// parseCoordinates validates a (file, rank) string pair. The file may be
// given in algebraic letter form, a-g mapping to 1-7.
func parseCoordinates(fileStr, rankStr string) (game.Position, error) {
	if len(fileStr) != 1 {
		return game.Position{}, fmt.Errorf("the file must be an integer (1-8) or a letter (a-g)")
	}
	var file int
	switch c := fileStr[0]; {
	case c >= 'a' && c <= 'g':
		file = int(c-'a') + 1
	case c >= 'A' && c <= 'G':
		file = int(c-'A') + 1
	case c >= '1' && c <= '8':
		file = int(c - '0')
	default:
		return game.Position{}, fmt.Errorf("the file must be an integer (1-8) or a letter (a-g)")
	}

	if len(rankStr) != 1 || rankStr[0] < '1' || rankStr[0] > '8' {
		return game.Position{}, fmt.Errorf("the rank must be an integer (1-8)")
	}
	rank := int(rankStr[0] - '0')

	if !game.ValidCoords(file, rank) {
		return game.Position{}, fmt.Errorf("position (%d,%d) is off the board", file, rank)
	}
	return game.Position{File: file, Rank: rank}, nil
}

// Scenario is one named initial placement read from a scenario file.
type Scenario struct {
	Name         string
	KingAttacker game.Position
	RookAttacker game.Position
	KingDefender game.Position
}

// Root builds the scenario's root state with the given ply budget.
func (sc Scenario) Root(maxPly int) *game.GameState {
	return game.NewGameState(
		game.NewKing(game.Attacker, sc.KingAttacker),
		game.NewRook(game.Attacker, sc.RookAttacker),
		game.NewKing(game.Defender, sc.KingDefender),
		maxPly,
	)
}

// ParseScenario parses one scenario line of the form
//
//	name: x.K(2,4) x.R(1,1) y.K(8,8)
//
// The three piece tokens may appear in any order but exactly one attacker
// king, one attacker rook, and one defender king must be present. Attacker
// tokens use side letter x or a, defender tokens y or d.
func ParseScenario(line string) (Scenario, error) {
	name, rest, found := strings.Cut(line, ":")
	if !found {
		return Scenario{}, fmt.Errorf("scenario line %q has no name separator", line)
	}
	sc := Scenario{Name: strings.TrimSpace(name)}
	if sc.Name == "" {
		return Scenario{}, fmt.Errorf("scenario line %q has an empty name", line)
	}

	var haveKA, haveRA, haveKD bool
	for _, token := range strings.Fields(rest) {
		m := scenarioToken.FindStringSubmatch(token)
		if m == nil {
			return Scenario{}, fmt.Errorf("incorrect syntax for piece token %q: example of correct syntax: x.K(2,4)", token)
		}
		pos, err := parseCoordinates(m[3], m[4])
		if err != nil {
			return Scenario{}, fmt.Errorf("piece token %q: %w", token, err)
		}

		attacker := strings.ContainsAny(m[1], "XxAa")
		rook := strings.EqualFold(m[2], "R")
		switch {
		case attacker && rook:
			if haveRA {
				return Scenario{}, fmt.Errorf("scenario %q places the attacker rook twice", sc.Name)
			}
			sc.RookAttacker, haveRA = pos, true
		case attacker:
			if haveKA {
				return Scenario{}, fmt.Errorf("scenario %q places the attacker king twice", sc.Name)
			}
			sc.KingAttacker, haveKA = pos, true
		case rook:
			return Scenario{}, fmt.Errorf("scenario %q: the defender can only be assigned a king", sc.Name)
		default:
			if haveKD {
				return Scenario{}, fmt.Errorf("scenario %q places the defender king twice", sc.Name)
			}
			sc.KingDefender, haveKD = pos, true
		}
	}
	if !haveKA || !haveRA || !haveKD {
		return Scenario{}, fmt.Errorf("scenario %q must place an attacker king, an attacker rook, and a defender king", sc.Name)
	}
	return sc, nil
}

// LoadScenarios reads scenario lines from r, skipping blank lines and lines
// starting with '#'.
func LoadScenarios(r io.Reader) ([]Scenario, error) {
	var scenarios []Scenario
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sc, err := ParseScenario(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		scenarios = append(scenarios, sc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scenarios: %w", err)
	}
	return scenarios, nil
}
