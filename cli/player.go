package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMove reads moves in YNN notation. `undo` takes back the player's
// last move and `quit` abandons the game. A capture typed without a
// throw prompts for one when the rules require it.
func (c *cliPlayer) GetMove(p *yote.Position) (yote.Move, error) {
	for {
		line, err := c.readLine(fmt.Sprintf("%s> ", p.ToMove()))
		if err != nil {
			return yote.Move{}, err
		}
		switch line {
		case "":
			continue
		case "undo":
			return yote.Move{}, ErrUndo
		case "quit":
			return yote.Move{}, ErrQuit
		}
		m, err := ynn.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error:", err)
			continue
		}
		if m.Type == yote.Capture && !m.HasThrow &&
			p.At(m.Captured) == p.ToMove().Flip() && p.OnBoard(p.ToMove().Flip()) > 1 {
			if m, err = c.readThrow(m); err != nil {
				return yote.Move{}, err
			}
		}
		return m, nil
	}
}

func (c *cliPlayer) readThrow(m yote.Move) (yote.Move, error) {
	for {
		line, err := c.readLine("throw> ")
		if err != nil {
			return yote.Move{}, err
		}
		sq, err := ynn.ParseSquare(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error:", err)
			continue
		}
		return yote.CaptureThrow(m.From, m.To, m.Captured, sq), nil
	}
}
