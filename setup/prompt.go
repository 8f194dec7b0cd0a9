package setup

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"krk/game"
)

// Prompter reads line-oriented answers from an interactive stream,
// re-asking until an answer parses.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask prints the prompt and returns the next trimmed input line. It errors
// only when the input stream ends.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// AskUntil repeats the prompt until parse accepts the answer, echoing each
// rejection. Only stream errors abort the loop.
func (p *Prompter) AskUntil(prompt string, parse func(string) error) error {
	for {
		answer, err := p.Ask(prompt)
		if err != nil {
			return err
		}
		if err := parse(answer); err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return nil
	}
}

// AskPosition prompts for an ordered pair like (3,5) until one parses.
func (p *Prompter) AskPosition(prompt string) (game.Position, error) {
	var pos game.Position
	err := p.AskUntil(prompt, func(answer string) error {
		parsed, err := ParsePosition(answer)
		if err != nil {
			return err
		}
		pos = parsed
		return nil
	})
	return pos, err
}

// AskYesNo prompts until the answer starts with y or n.
func (p *Prompter) AskYesNo(prompt string) (bool, error) {
	var yes bool
	err := p.AskUntil(prompt, func(answer string) error {
		switch {
		case strings.HasPrefix(strings.ToLower(answer), "y"):
			yes = true
		case strings.HasPrefix(strings.ToLower(answer), "n"):
			yes = false
		default:
			return fmt.Errorf("please answer yes or no")
		}
		return nil
	})
	return yes, err
}

// ConsoleMoveSource prompts a human player for moves. It satisfies
// agent.MoveSource; the validity of the move against the position is the
// agent's job, this only guarantees the string parses for the side.
type ConsoleMoveSource struct {
	side     game.Side
	prompter *Prompter
}

func NewConsoleMoveSource(side game.Side, prompter *Prompter) *ConsoleMoveSource {
	return &ConsoleMoveSource{side: side, prompter: prompter}
}

func (c *ConsoleMoveSource) NextMove(state *game.GameState) (game.Piece, error) {
	prompt := fmt.Sprintf("Enter a move for the %s, e.g. K(4,2)", c.side)
	if c.side == game.Attacker {
		prompt += " or R(a,1)"
	}
	prompt += ": "

	var move game.Piece
	err := c.prompter.AskUntil(prompt, func(answer string) error {
		parsed, err := ParseMove(answer, c.side)
		if err != nil {
			return err
		}
		move = parsed
		return nil
	})
	return move, err
}
