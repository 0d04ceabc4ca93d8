package console

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/chessmatch/internal/model"
)

var errNoInput = errors.New("no more input")

// readLine returns the next trimmed line, or errNoInput at end of input.
func readLine(in *bufio.Scanner) (string, error) {
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", errNoInput
	}
	return strings.TrimSpace(in.Text()), nil
}

// ParseSquareInput reads a square the way a player types it, e.g. "E2" or " e2".
func ParseSquareInput(s string) (model.Square, error) {
	sq, err := model.ParseSquare(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return model.Square{}, fmt.Errorf("error reading square: %w", err)
	}
	return sq, nil
}

// IsPromotionChoice reports whether s is one of B, N, R or Q in either case.
func IsPromotionChoice(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "N", "R", "Q":
		return true
	}
	return false
}
